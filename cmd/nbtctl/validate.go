package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/pkg/types"
)

var validateLimits string

func init() {
	cmd := newValidateCmd()
	cmd.Flags().StringVar(&validateLimits, "limits", "default", "Limits preset to use (default, strict, relaxed)")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a file decodes cleanly",
		Long: `The validate command decodes a file under a limits preset and reports
the first problem found. A file is canonical when encoding it again gives
back the same bytes.

Limits presets:
  default - Depth 512, 64M elements per array, 512 MiB decoded
  strict  - Depth 64, 1M elements per array, 16 MiB decoded
  relaxed - Depth 4096, no size limit

Example:
  nbtctl validate level.dat
  nbtctl validate upload.dat --limits strict --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

type validateResult struct {
	File        string `json:"file"`
	Limits      string `json:"limits"`
	Compression string `json:"compression,omitempty"`
	Valid       bool   `json:"valid"`
	Canonical   bool   `json:"canonical"`
	ErrorKind   string `json:"error_kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

func runValidate(args []string) error {
	path := args[0]

	var limits types.Limits
	switch validateLimits {
	case "default":
		limits = types.DefaultLimits()
	case "strict":
		limits = types.StrictLimits()
	case "relaxed":
		limits = types.RelaxedLimits()
	default:
		return fmt.Errorf("unknown limits preset: %s (must be default, strict, or relaxed)", validateLimits)
	}

	printVerbose("Validating file: %s\n", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	result := validateResult{File: path, Limits: validateLimits}
	err = validateData(data, limits, &result)
	if err != nil {
		result.Error = err.Error()
		result.ErrorKind = types.KindOf(err).String()
	}

	if jsonOut {
		if perr := printJSON(result); perr != nil {
			return perr
		}
		return err
	}

	ok, bad := color.GreenString("✓"), color.RedString("✗")
	printInfo("\nValidating %s (%s limits)...\n\n", path, validateLimits)
	if result.Compression != "" {
		printInfo("  %s Compression: %s\n", ok, result.Compression)
	}
	if err != nil {
		printInfo("  %s %s: %v\n", bad, result.ErrorKind, err)
		printInfo("\nResult: %s INVALID\n", bad)
		return err
	}
	printInfo("  %s Decoded\n", ok)
	if result.Canonical {
		printInfo("  %s Canonical encoding\n", ok)
	} else {
		printInfo("  - Not canonical (re-encoding changes the bytes)\n")
	}
	printInfo("\nResult: %s VALID\n", ok)
	return nil
}

// validateData fills in result and returns the first decode failure.
func validateData(data []byte, limits types.Limits, result *validateResult) error {
	if limit := limits.Normalize().MaxInputSize; limit > 0 && int64(len(data)) > limit {
		return types.New(types.ErrKindMalformedLength,
			fmt.Sprintf("file is %d bytes, limit is %d", len(data), limit))
	}
	raw, scheme, err := compress.Decompress(data)
	if err != nil {
		return err
	}
	result.Compression = scheme.String()

	dec := nbt.NewDecoderWithLimits(bytes.NewReader(raw), limits)
	name, root, err := dec.Decode()
	if err != nil {
		return err
	}
	if rest := int64(len(raw)) - dec.Offset(); rest > 0 {
		printVerbose("%d trailing bytes after the root tag\n", rest)
	}
	again, err := nbt.Marshal(name, root)
	if err != nil {
		return err
	}
	result.Valid = true
	result.Canonical = bytes.Equal(again, raw)
	return nil
}
