package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/nbt/printer"
)

func init() {
	rootCmd.AddCommand(newHexdumpCmd())
}

func newHexdumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexdump <file> [path]",
		Short: "Hex dump a file or a single tag",
		Long: `The hexdump command prints the uncompressed bytes of a file. With a
path, arrays show their element bytes and other tags show their encoding as
a named tag.

Example:
  nbtctl hexdump steve.dat
  nbtctl hexdump level.dat Data/DataPacks
  nbtctl hexdump chunk.nbt Heightmaps/WORLD_SURFACE`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHexdump(args)
		},
	}
	return cmd
}

func runHexdump(args []string) error {
	file := args[0]

	if len(args) == 1 {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		raw, scheme, err := compress.Decompress(data)
		if err != nil {
			return fmt.Errorf("failed to decompress: %w", err)
		}
		printVerbose("Compression: %s, %d bytes uncompressed\n", scheme, len(raw))
		return printer.HexDump(os.Stdout, raw)
	}

	doc, err := openDocument(file, false)
	if err != nil {
		return err
	}
	id, err := findNode(doc, args[1])
	if err != nil {
		return err
	}
	v, err := doc.Tree().Value(id)
	if err != nil {
		return err
	}
	raw, ok := nbt.RawBytes(v)
	if !ok {
		label, err := doc.Tree().Label(id)
		if err != nil {
			return err
		}
		if raw, err = nbt.MarshalNamed(label, v); err != nil {
			return err
		}
	}
	return printer.HexDump(os.Stdout, raw)
}
