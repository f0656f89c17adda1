package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Display file information",
		Long: `The info command shows the size, compression, root name, and tag
statistics of an NBT file.

Example:
  nbtctl info level.dat
  nbtctl info playerdata/steve.dat --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type fileInfo struct {
	File        string         `json:"file"`
	Size        int64          `json:"size"`
	Compression string         `json:"compression"`
	RootName    string         `json:"root_name"`
	Tags        int            `json:"tags"`
	MaxDepth    int            `json:"max_depth"`
	Kinds       map[string]int `json:"kinds"`
}

func runInfo(args []string) error {
	path := args[0]

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	doc, err := openDocument(path, false)
	if err != nil {
		return err
	}

	t := doc.Tree()
	info := fileInfo{
		File:        path,
		Size:        st.Size(),
		Compression: doc.Scheme().String(),
		RootName:    doc.Name(),
		Tags:        t.Len(),
		Kinds:       make(map[string]int),
	}
	depth := map[tree.NodeID]int{t.Root(): 0}
	err = t.Walk(t.Root(), func(id tree.NodeID) error {
		meta, err := t.Stat(id)
		if err != nil {
			return err
		}
		info.Kinds[meta.Kind.Name()]++
		if meta.Parent != tree.None {
			depth[id] = depth[meta.Parent] + 1
			info.MaxDepth = max(info.MaxDepth, depth[id])
		}
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nFile Information:\n")
	printInfo("  File:        %s\n", info.File)
	printInfo("  Size:        %s (%s bytes)\n", humanize.Bytes(uint64(info.Size)), humanize.Comma(info.Size))
	printInfo("  Compression: %s\n", info.Compression)
	printInfo("  Root name:   %q\n", info.RootName)
	printInfo("  Tags:        %s\n", humanize.Comma(int64(info.Tags)))
	printInfo("  Max depth:   %d\n", info.MaxDepth)
	printInfo("\nTags by kind:\n")
	for k := nbt.KindByte; k <= nbt.KindLongArray; k++ {
		if n := info.Kinds[k.Name()]; n > 0 {
			printInfo("  %-10s %d\n", k.Name(), n)
		}
	}
	return nil
}
