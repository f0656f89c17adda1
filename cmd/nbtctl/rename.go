package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameFlags editFlags

func init() {
	cmd := newRenameCmd()
	cmd.Flags().StringVarP(&renameFlags.output, "output", "o", "", "Write to this file instead of in place")
	cmd.Flags().BoolVar(&renameFlags.backup, "backup", true, "Create backup")
	rootCmd.AddCommand(cmd)
}

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <file> <path> <new-name>",
		Short: "Rename a compound entry",
		Long: `The rename command changes the key of a compound entry in place.
Renaming the root changes the root tag's name.

Example:
  nbtctl rename steve.dat health Health
  nbtctl rename level.dat "" Level`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(args)
		},
	}
	return cmd
}

func runRename(args []string) error {
	file, path, name := args[0], args[1], args[2]

	doc, err := openDocument(file, renameFlags.backup)
	if err != nil {
		return err
	}
	id, err := findNode(doc, path)
	if err != nil {
		return err
	}
	if id == doc.Tree().Root() {
		err = doc.SetName(name)
	} else {
		err = doc.Rename(id, name)
	}
	if err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}

	saved, err := saveDocument(doc, renameFlags)
	if err != nil {
		return err
	}
	return reportEdit("Renamed", file, path, saved, renameFlags.backup)
}
