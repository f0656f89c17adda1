package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt/printer"
)

var (
	treeDepth    int
	treeFormat   string
	treeNoTypes  bool
	treeMaxItems int
	treeCompact  bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().StringVar(&treeFormat, "format", "text", "Output format (text, json, yaml, snbt)")
	cmd.Flags().BoolVar(&treeNoTypes, "no-types", false, "Hide tag kinds")
	cmd.Flags().IntVar(&treeMaxItems, "max-items", printer.DefaultMaxArrayItems, "Array elements shown per line (0 = all)")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file> [path]",
		Short: "Display tree structure",
		Long: `The tree command displays the tags of a file as an indented outline.
Paths use "/" between segments; list elements are addressed by index.

Example:
  nbtctl tree level.dat
  nbtctl tree level.dat Data/Player --depth 2
  nbtctl tree steve.dat Inventory --format yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	var path string
	if len(args) > 1 {
		path = args[1]
	}

	doc, err := openDocument(args[0], false)
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.MaxArrayItems = treeMaxItems
	opts.ShowTypes = !treeNoTypes
	opts.Format, err = printer.ParseFormat(treeFormat)
	if err != nil {
		return err
	}
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if treeCompact {
		opts.IndentSize = 1
	}

	if err := printer.New(doc.Tree(), os.Stdout, opts).PrintTree(path); err != nil {
		return fmt.Errorf("failed to display tree: %w", err)
	}
	return nil
}
