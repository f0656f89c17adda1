// Package printer renders NBT trees for people and for other tools.
//
// Text output is an indented outline of labels, kinds, and values. JSON and
// YAML map compounds to ordered objects and lists and arrays to sequences.
// SNBT is the stringified form used in game commands; it is output only.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/nbtkit/nbt/tree"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxArrayItems = 16
)

// RootLabel is shown for a root tag with an empty name.
const RootLabel = "(root)"

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an indented human-readable outline.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"

	// FormatSNBT outputs stringified NBT.
	FormatSNBT Format = "snbt"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatSNBT:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format.
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text, JSON, YAML).
	// Default: 2
	IndentSize int

	// MaxDepth limits how many levels text output prints (0 = unlimited).
	// Containers at the cut-off still show their summary. Structured
	// formats always print the whole subtree.
	// Default: 0
	MaxDepth int

	// MaxArrayItems limits how many array elements text output shows.
	// Set to 0 for no limit.
	// Default: 16
	MaxArrayItems int

	// ShowTypes includes tag kind names in text output and wraps every
	// JSON/YAML value as {type, value}.
	// Default: true
	ShowTypes bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		MaxArrayItems: DefaultMaxArrayItems,
		ShowTypes:     true,
	}
}

// Printer writes parts of a tree to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
	tree   *tree.Tree
}

// New creates a Printer over t.
//
// Example:
//
//	doc, _ := document.Open(ctx, "level.dat", document.DefaultOptions())
//	p := printer.New(doc.Tree(), os.Stdout, printer.DefaultOptions())
//	p.PrintTree("Data/Player")
func New(t *tree.Tree, w io.Writer, opts Options) *Printer {
	return &Printer{tree: t, writer: w, opts: opts}
}

// PrintTree prints the subtree at path ("" for the whole document).
func (p *Printer) PrintTree(path string) error {
	id, err := p.tree.Find(path)
	if err != nil {
		return err
	}
	return p.PrintNode(id)
}

// PrintNode prints the subtree rooted at id.
func (p *Printer) PrintNode(id tree.NodeID) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(id)
	case FormatYAML:
		return p.printYAML(id)
	case FormatSNBT:
		return p.printSNBT(id)
	default:
		return p.printTreeText(id, 0)
	}
}

// PrintValue prints only the value at path: the bare text of a leaf, or the
// formatted subtree of a container.
func (p *Printer) PrintValue(path string) error {
	id, err := p.tree.Find(path)
	if err != nil {
		return err
	}
	kind, err := p.tree.Kind(id)
	if err != nil {
		return err
	}
	if p.opts.Format != FormatText || kind.IsContainer() {
		return p.PrintNode(id)
	}
	v, err := p.tree.Value(id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.writer, tree.FormatValue(v))
	return err
}

// label is the display name of id, with RootLabel for an unnamed root.
func (p *Printer) label(id tree.NodeID) string {
	l, _ := p.tree.Label(id)
	if l == "" && id == p.tree.Root() {
		return RootLabel
	}
	return l
}

// depthAllowed reports whether children at depth may be printed.
func (p *Printer) depthAllowed(depth int) bool {
	return p.opts.MaxDepth <= 0 || depth < p.opts.MaxDepth
}
