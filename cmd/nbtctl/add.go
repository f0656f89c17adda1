package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

var (
	addKey   string
	addValue string
	addFlags editFlags
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVar(&addKey, "key", "", "Key for the new entry (compound parents only)")
	cmd.Flags().StringVar(&addValue, "value", "", "Initial value (default is the kind's zero value)")
	cmd.Flags().StringVarP(&addFlags.output, "output", "o", "", "Write to this file instead of in place")
	cmd.Flags().BoolVar(&addFlags.backup, "backup", true, "Create backup")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file> <parent-path> <kind>",
		Short: "Add a tag to a compound or list",
		Long: `The add command appends a new tag under a compound or list. Compound
parents need --key; list parents take the new tag at the end and must hold
the same kind, unless the list is empty.

Kinds: Byte, Short, Int, Long, Float, Double, String, ByteArray, IntArray,
LongArray, List, Compound.

Example:
  nbtctl add steve.dat "" Int --key XpLevel --value 30
  nbtctl add steve.dat Pos Double --value 12.5
  nbtctl add level.dat Data Compound --key CustomData`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
	return cmd
}

func runAdd(args []string) error {
	file, parentPath := args[0], args[1]
	kind, err := nbt.ParseKind(args[2])
	if err != nil {
		return err
	}

	doc, err := openDocument(file, addFlags.backup)
	if err != nil {
		return err
	}
	parent, err := findNode(doc, parentPath)
	if err != nil {
		return err
	}

	var added string
	err = doc.Edit(func(t *tree.Tree) error {
		id, err := t.InsertChild(parent, kind, addKey)
		if err != nil {
			return err
		}
		if addValue != "" {
			if err := t.SetValue(id, addValue); err != nil {
				return err
			}
		}
		added, err = t.Path(id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", kind.Name(), err)
	}
	printVerbose("Added %s at %s\n", kind.Name(), added)

	saved, err := saveDocument(doc, addFlags)
	if err != nil {
		return err
	}
	return reportEdit("Added", file, added, saved, addFlags.backup)
}
