package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setFlags editFlags

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVarP(&setFlags.output, "output", "o", "", "Write to this file instead of in place")
	cmd.Flags().BoolVar(&setFlags.backup, "backup", true, "Create backup")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Set a tag value",
		Long: `The set command parses a value for the tag's kind and stores it.
Numbers are range checked; arrays take comma or space separated elements.

Example:
  nbtctl set steve.dat health 20
  nbtctl set steve.dat Pos/1 64.5
  nbtctl set level.dat Data/LevelName "New World" --backup=false
  nbtctl set level.dat Data/DataVersion 3465 -o edited.dat`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	file, path, value := args[0], args[1], args[2]

	doc, err := openDocument(file, setFlags.backup)
	if err != nil {
		return err
	}
	id, err := findNode(doc, path)
	if err != nil {
		return err
	}
	kind, err := doc.Tree().Kind(id)
	if err != nil {
		return err
	}
	if kind.IsContainer() {
		return fmt.Errorf("%s is a %s; set only changes leaf values", displayPath(path), kind.Name())
	}
	if err := doc.SetValue(id, value); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	printVerbose("New value: %s\n", value)

	saved, err := saveDocument(doc, setFlags)
	if err != nil {
		return err
	}
	return reportEdit("Set", file, path, saved, setFlags.backup)
}
