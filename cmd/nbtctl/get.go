package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt/printer"
)

var getShowType bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show the tag kind")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Get a single tag value",
		Long: `The get command prints the value at a path. Containers are printed
as a subtree.

Example:
  nbtctl get level.dat Data/LevelName
  nbtctl get steve.dat Pos/1 --type
  nbtctl get steve.dat Inventory --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path := args[1]

	doc, err := openDocument(args[0], false)
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.ShowTypes = getShowType
	p := printer.New(doc.Tree(), os.Stdout, opts)

	if jsonOut {
		opts.Format = printer.FormatJSON
		opts.ShowTypes = true
		p = printer.New(doc.Tree(), os.Stdout, opts)
	}

	if getShowType && !jsonOut {
		id, err := findNode(doc, path)
		if err != nil {
			return err
		}
		return p.PrintNode(id)
	}
	if err := p.PrintValue(path); err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	return nil
}
