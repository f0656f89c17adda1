package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCompression string

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVarP(&convertCompression, "compression", "c", "gzip", "Target compression (gzip, zlib, none)")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Rewrite a file with different compression",
		Long: `The convert command decodes a file and writes it again with the
requested compression. The tags themselves are unchanged.

Example:
  nbtctl convert level.dat level.nbt --compression none
  nbtctl convert raw.nbt player.dat`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	in, out := args[0], args[1]

	doc, err := openDocument(in, false)
	if err != nil {
		return err
	}
	from := doc.Scheme()
	to, err := parseCompression(convertCompression, from)
	if err != nil {
		return err
	}
	if err := doc.SaveAs(cmdContext(), out, to); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"input":   in,
			"output":  out,
			"from":    from.String(),
			"to":      to.String(),
			"success": true,
		})
	}
	printSuccess("Converted %s (%s) to %s (%s)\n", in, from, out, to)
	return nil
}
