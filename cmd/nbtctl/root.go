package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/cmd/nbtctl/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	debug   bool
	logDir  string
)

// closeLog flushes the log file opened by --debug.
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "nbtctl",
	Short: "Inspect and edit NBT files",
	Long: `nbtctl inspects, edits, and converts Named Binary Tag files such as
level.dat and player data, and lists or extracts chunks from region files.
Compression (gzip, zlib, or none) is detected from the file contents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		closeFn, err := logger.Init(logger.Options{Enabled: debug, LogDir: logDir})
		if err != nil {
			return fmt.Errorf("failed to start logging: %w", err)
		}
		closeLog = closeFn
		logger.Debug("command started", "command", cmd.CommandPath(), "args", args)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write a debug log")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Directory for debug logs (default ~/.nbtctl/logs)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// cmdContext is the context commands pass to blocking library calls.
func cmdContext() context.Context {
	if rootCmd.Context() != nil {
		return rootCmd.Context()
	}
	return context.Background()
}

// cliLogger returns the logger handed to library options.
func cliLogger() *slog.Logger { return logger.L }

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printSuccess prints a green check line if not in quiet mode
func printSuccess(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, "%s %s", color.GreenString("✓"), fmt.Sprintf(format, args...))
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("Error: ")+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// checkArgs validates that the correct number of arguments were provided
func checkArgs(args []string, expected int, usage string) error {
	if len(args) != expected {
		return fmt.Errorf("expected %d argument(s), got %d\nUsage: %s", expected, len(args), usage)
	}
	return nil
}
