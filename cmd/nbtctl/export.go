package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt/printer"
)

var (
	exportFormat string
	exportOutput string
	exportTyped  bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml, snbt, text)")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&exportTyped, "typed", false, "Keep tag kinds in JSON and YAML output")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file> [path]",
		Short: "Export tags as JSON, YAML, or SNBT",
		Long: `The export command writes a file, or the subtree at path, in a text
format. Plain JSON and YAML lose tag kinds; use --typed to keep them.

Example:
  nbtctl export level.dat
  nbtctl export level.dat Data --format yaml -o level.yaml
  nbtctl export steve.dat Inventory --format snbt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	var path string
	if len(args) > 1 {
		path = args[1]
	}
	format, err := printer.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	doc, err := openDocument(args[0], false)
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.Format = format
	opts.ShowTypes = exportTyped || format == printer.FormatText
	opts.MaxArrayItems = 0

	var writer *os.File
	if exportOutput == "" {
		writer = os.Stdout
	} else {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	if err := printer.New(doc.Tree(), writer, opts).PrintTree(path); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if exportOutput != "" {
		if err := writer.Sync(); err != nil {
			return err
		}
		printSuccess("Exported %s to %s (%s)\n", displayPath(path), exportOutput, format)
	}
	return nil
}
