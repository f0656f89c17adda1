// Package search finds tags in a tree by name, by value, or both.
package search

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

// Mode selects what a query is matched against.
type Mode int

const (
	ModeBoth Mode = iota
	ModeNames
	ModeValues
)

func (m Mode) String() string {
	switch m {
	case ModeNames:
		return "names"
	case ModeValues:
		return "values"
	default:
		return "both"
	}
}

// ParseMode accepts "names", "values", or "both".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "all":
		return ModeBoth, nil
	case "names", "name", "keys":
		return ModeNames, nil
	case "values", "value":
		return ModeValues, nil
	default:
		return ModeBoth, fmt.Errorf("unknown search mode %q", s)
	}
}

// Options controls a search.
type Options struct {
	Mode Mode

	// CaseSensitive disables Unicode case folding.
	CaseSensitive bool

	// Limit stops the search after this many matches (0 = no limit).
	Limit int
}

// Match is one node that satisfied the query.
type Match struct {
	ID      tree.NodeID
	Path    string
	Kind    nbt.Kind
	Label   string
	Value   string // formatted leaf value, empty for containers
	InName  bool
	InValue bool
}

// Find walks t from the root and returns every node whose label or leaf
// value contains query, in document order. The root itself is never
// matched. An empty query matches nothing.
func Find(t *tree.Tree, query string, opts Options) ([]Match, error) {
	if query == "" {
		return nil, nil
	}
	fold := func(s string) string { return s }
	if !opts.CaseSensitive {
		c := cases.Fold()
		fold = c.String
	}
	needle := fold(query)

	var out []Match
	err := t.Walk(t.Root(), func(id tree.NodeID) error {
		if id == t.Root() {
			return nil
		}
		meta, err := t.Stat(id)
		if err != nil {
			return err
		}
		m := Match{ID: id, Kind: meta.Kind, Label: meta.Label}

		if opts.Mode != ModeValues {
			m.InName = strings.Contains(fold(meta.Label), needle)
		}
		if opts.Mode != ModeNames && !meta.Kind.IsContainer() {
			v, err := t.Value(id)
			if err != nil {
				return err
			}
			m.Value = tree.FormatValue(v)
			m.InValue = strings.Contains(fold(m.Value), needle)
		}
		if !m.InName && !m.InValue {
			return nil
		}
		if m.Path, err = t.Path(id); err != nil {
			return err
		}
		out = append(out, m)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			return errLimit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return nil, err
	}
	return out, nil
}

// Filter returns the set of nodes to keep visible when narrowing a tree view
// to query: every match plus all of its ancestors.
func Filter(t *tree.Tree, query string, opts Options) (map[tree.NodeID]bool, error) {
	opts.Limit = 0
	matches, err := Find(t, query, opts)
	if err != nil {
		return nil, err
	}
	keep := make(map[tree.NodeID]bool, len(matches)*2)
	for _, m := range matches {
		for id := m.ID; id != tree.None && !keep[id]; {
			keep[id] = true
			parent, err := t.Parent(id)
			if err != nil {
				return nil, err
			}
			id = parent
		}
	}
	return keep, nil
}

var errLimit = errors.New("search: limit reached")
