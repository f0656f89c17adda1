package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/nbtkit/nbt/printer"
	"github.com/joshuapare/nbtkit/nbt/search"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

var (
	searchMode          string
	searchCaseSensitive bool
	searchLimit         int
	searchTree          bool
)

func init() {
	cmd := newSearchCmd()
	cmd.Flags().StringVar(&searchMode, "mode", "both", "Match against names, values, or both")
	cmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Case-sensitive matching")
	cmd.Flags().IntVar(&searchLimit, "limit", 0, "Stop after this many matches (0 = no limit)")
	cmd.Flags().BoolVar(&searchTree, "tree", false, "Show matches in place, with their parents")
	rootCmd.AddCommand(cmd)
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Search tag names and values",
		Long: `The search command lists every tag whose name or value contains the
query, in document order.

Example:
  nbtctl search steve.dat diamond
  nbtctl search level.dat Version --mode names
  nbtctl search level.dat minecraft: --mode values --limit 10 --json
  nbtctl search steve.dat diamond --tree`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args)
		},
	}
	return cmd
}

type searchResult struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Value   string `json:"value,omitempty"`
	InName  bool   `json:"in_name"`
	InValue bool   `json:"in_value"`
}

func runSearch(args []string) error {
	query := args[1]
	mode, err := search.ParseMode(searchMode)
	if err != nil {
		return err
	}

	doc, err := openDocument(args[0], false)
	if err != nil {
		return err
	}

	opts := search.Options{
		Mode:          mode,
		CaseSensitive: searchCaseSensitive,
		Limit:         searchLimit,
	}
	if searchTree && !jsonOut {
		return printFiltered(doc.Tree(), query, opts)
	}

	matches, err := search.Find(doc.Tree(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOut {
		results := make([]searchResult, 0, len(matches))
		for _, m := range matches {
			results = append(results, searchResult{
				Path:    m.Path,
				Kind:    m.Kind.Name(),
				Value:   m.Value,
				InName:  m.InName,
				InValue: m.InValue,
			})
		}
		return printJSON(map[string]any{
			"query":   query,
			"mode":    mode.String(),
			"matches": results,
		})
	}

	pathColor := color.New(color.FgCyan).SprintFunc()
	for _, m := range matches {
		if m.Value != "" {
			printInfo("%s [%s] = %s\n", pathColor(m.Path), m.Kind.Name(), m.Value)
		} else {
			printInfo("%s [%s]\n", pathColor(m.Path), m.Kind.Name())
		}
	}
	printInfo("\n%d match(es)\n", len(matches))
	return nil
}

// printFiltered prints the outline of t narrowed to the matches of query and
// their ancestors.
func printFiltered(t *tree.Tree, query string, opts search.Options) error {
	keep, err := search.Filter(t, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(keep) == 0 {
		printInfo("0 match(es)\n")
		return nil
	}

	depth := map[tree.NodeID]int{}
	return t.Walk(t.Root(), func(id tree.NodeID) error {
		if !keep[id] {
			return tree.SkipChildren
		}
		meta, err := t.Stat(id)
		if err != nil {
			return err
		}
		if meta.Parent != tree.None {
			depth[id] = depth[meta.Parent] + 1
		}
		label := meta.Label
		if id == t.Root() && label == "" {
			label = printer.RootLabel
		}
		line := fmt.Sprintf("%s%s [%s]", strings.Repeat("  ", depth[id]), label, meta.Kind.Name())
		if !meta.Kind.IsContainer() {
			v, err := t.Value(id)
			if err != nil {
				return err
			}
			line += " = " + tree.FormatValue(v)
		}
		printInfo("%s\n", line)
		return nil
	})
}
