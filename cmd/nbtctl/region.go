package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/nbt/printer"
	"github.com/joshuapare/nbtkit/nbt/region"
	"github.com/joshuapare/nbtkit/nbt/tree"
	"github.com/joshuapare/nbtkit/pkg/document"
)

var (
	regionVerify      bool
	regionWorkers     int
	regionOutput      string
	regionCompression string
	regionBackup      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Work with region (.mca/.mcr) files",
		Long: `The region commands list, extract, and remove the chunks stored in a
region file. Chunk coordinates are local to the region (0 through 31);
world chunk coordinates wrap into that range.`,
	}

	ls := newRegionLsCmd()
	ls.Flags().BoolVar(&regionVerify, "verify", false, "Decode every chunk and report failures")
	ls.Flags().IntVar(&regionWorkers, "workers", runtime.GOMAXPROCS(0), "Chunks decoded in parallel with --verify")

	extract := newRegionExtractCmd()
	extract.Flags().StringVarP(&regionOutput, "output", "o", "", "Write the chunk as an NBT file instead of printing it")
	extract.Flags().StringVarP(&regionCompression, "compression", "c", "gzip", "Compression for --output (gzip, zlib, none)")

	rm := newRegionRmCmd()
	rm.Flags().BoolVar(&regionBackup, "backup", true, "Create backup")

	cmd.AddCommand(ls, extract, rm)
	rootCmd.AddCommand(cmd)
}

func newRegionLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <region-file>",
		Short: "List chunks in a region file",
		Long: `The ls command lists every occupied chunk slot with its location in
the file and last modification time.

Example:
  nbtctl region ls r.0.0.mca
  nbtctl region ls r.0.0.mca --verify --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegionLs(args)
		},
	}
}

func newRegionExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <region-file> <x> <z>",
		Short: "Print or save one chunk",
		Long: `The extract command decodes one chunk. Without --output it prints the
chunk's tree; with --output it writes a standalone NBT file.

Example:
  nbtctl region extract r.0.0.mca 4 17
  nbtctl region extract r.0.0.mca 4 17 -o chunk.nbt --compression none`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegionExtract(args)
		},
	}
}

func newRegionRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <region-file> <x> <z>",
		Short: "Remove one chunk",
		Long: `The rm command clears a chunk slot and rewrites the region file with
the remaining chunks packed from the start.

Example:
  nbtctl region rm r.0.0.mca 4 17`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegionRm(args)
		},
	}
}

type chunkEntry struct {
	X        int       `json:"x"`
	Z        int       `json:"z"`
	Offset   int64     `json:"offset"`
	Sectors  int       `json:"sectors"`
	Modified time.Time `json:"modified"`
	Tags     int       `json:"tags,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func openRegion(path string) (*region.File, error) {
	printVerbose("Opening region: %s\n", path)
	opts := region.DefaultOptions()
	opts.Logger = cliLogger()
	f, err := region.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open region: %w", err)
	}
	return f, nil
}

// parseChunkCoords reads the <x> <z> arguments. World chunk coordinates
// are accepted and wrap into the region.
func parseChunkCoords(args []string) (int, int, error) {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate %q", args[0])
	}
	z, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid z coordinate %q", args[1])
	}
	return x, z, nil
}

func runRegionLs(args []string) error {
	f, err := openRegion(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	infos := f.Chunks()
	entries := make([]chunkEntry, len(infos))
	for i, c := range infos {
		entries[i] = chunkEntry{
			X:        c.X,
			Z:        c.Z,
			Offset:   int64(c.SectorOffset) * region.SectorSize,
			Sectors:  int(c.SectorCount),
			Modified: c.Modified,
		}
	}

	failed := 0
	if regionVerify {
		failed = verifyChunks(f, entries)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":   args[0],
			"chunks": entries,
			"failed": failed,
		})
	}

	printInfo("%-4s %-4s %-10s %-8s %s\n", "X", "Z", "OFFSET", "SIZE", "MODIFIED")
	for _, e := range entries {
		printInfo("%-4d %-4d %-10d %-8s %s", e.X, e.Z, e.Offset,
			humanize.IBytes(uint64(e.Sectors)*region.SectorSize), humanize.Time(e.Modified))
		switch {
		case e.Error != "":
			printInfo("  FAILED: %s", e.Error)
		case regionVerify:
			printInfo("  %d tags", e.Tags)
		}
		printInfo("\n")
	}
	printInfo("\n%d chunk(s)", len(entries))
	if regionVerify {
		printInfo(", %d failed", failed)
	}
	printInfo("\n")
	if failed > 0 {
		return fmt.Errorf("%d chunk(s) failed to decode", failed)
	}
	return nil
}

// verifyChunks decodes every chunk, filling in tag counts or errors. It
// returns the number of failures.
func verifyChunks(f *region.File, entries []chunkEntry) int {
	chunks, err := f.ReadAll(cmdContext(), regionWorkers)
	if err == nil {
		for i, c := range chunks {
			entries[i].Tags = tree.FromTag(c.Name, c.Root).Len()
		}
		return 0
	}

	// Fall back to one chunk at a time to say which ones are bad.
	printVerbose("Parallel decode failed (%v), checking chunks individually\n", err)
	failed := 0
	for i := range entries {
		c, err := f.Chunk(entries[i].X, entries[i].Z)
		if err != nil {
			entries[i].Error = err.Error()
			failed++
			continue
		}
		entries[i].Tags = tree.FromTag(c.Name, c.Root).Len()
	}
	return failed
}

func runRegionExtract(args []string) error {
	if err := checkArgs(args, 3, "nbtctl region extract <region-file> <x> <z>"); err != nil {
		return err
	}
	x, z, err := parseChunkCoords(args[1:])
	if err != nil {
		return err
	}
	f, err := openRegion(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := f.Chunk(x, z)
	if err != nil {
		return fmt.Errorf("failed to read chunk (%d, %d): %w", x, z, err)
	}

	if regionOutput == "" {
		opts := printer.DefaultOptions()
		if jsonOut {
			opts.Format = printer.FormatJSON
		}
		return printer.New(tree.FromTag(c.Name, c.Root), os.Stdout, opts).PrintTree("")
	}

	scheme, err := compress.ParseScheme(regionCompression)
	if err != nil {
		return err
	}
	raw, err := nbt.Marshal(c.Name, c.Root)
	if err != nil {
		return err
	}
	docOpts := document.DefaultOptions()
	docOpts.Logger = cliLogger()
	doc, err := document.Load(raw, docOpts)
	if err != nil {
		return err
	}
	if err := doc.SaveAs(cmdContext(), regionOutput, scheme); err != nil {
		return fmt.Errorf("failed to write %s: %w", regionOutput, err)
	}
	printSuccess("Extracted chunk (%d, %d) to %s (%s)\n", x, z, regionOutput, scheme)
	return nil
}

func runRegionRm(args []string) error {
	if err := checkArgs(args, 3, "nbtctl region rm <region-file> <x> <z>"); err != nil {
		return err
	}
	path := args[0]
	x, z, err := parseChunkCoords(args[1:])
	if err != nil {
		return err
	}
	f, err := openRegion(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !f.Has(x, z) {
		return fmt.Errorf("chunk (%d, %d) is not present", x, z)
	}
	if regionBackup {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	w := region.NewWriter(compress.Zlib)
	if err := w.CopyFrom(f); err != nil {
		return err
	}
	w.Delete(x, z)
	if err := w.WriteFile(cmdContext(), path, false); err != nil {
		return fmt.Errorf("failed to write region: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":      path,
			"x":         x,
			"z":         z,
			"remaining": w.Len(),
			"success":   true,
		})
	}
	printSuccess("Removed chunk (%d, %d), %d remaining\n", x, z, w.Len())
	if regionBackup {
		printInfo("Backup created: %s.bak\n", path)
	}
	return nil
}
