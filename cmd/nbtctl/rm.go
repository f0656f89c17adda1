package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmFlags editFlags

func init() {
	cmd := newRmCmd()
	cmd.Flags().StringVarP(&rmFlags.output, "output", "o", "", "Write to this file instead of in place")
	cmd.Flags().BoolVar(&rmFlags.backup, "backup", true, "Create backup")
	rootCmd.AddCommand(cmd)
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <file> <path>",
		Aliases: []string{"delete"},
		Short:   "Remove a tag and its children",
		Long: `The rm command removes a tag from its compound or list. Removing the
last element of a list keeps the list's element kind.

Example:
  nbtctl rm steve.dat Inventory/0
  nbtctl rm level.dat Data/WanderingTraderId`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(args)
		},
	}
	return cmd
}

func runRm(args []string) error {
	file, path := args[0], args[1]

	doc, err := openDocument(file, rmFlags.backup)
	if err != nil {
		return err
	}
	id, err := findNode(doc, path)
	if err != nil {
		return err
	}
	if err := doc.Remove(id); err != nil {
		return fmt.Errorf("failed to remove: %w", err)
	}

	saved, err := saveDocument(doc, rmFlags)
	if err != nil {
		return err
	}
	return reportEdit("Removed", file, path, saved, rmFlags.backup)
}
