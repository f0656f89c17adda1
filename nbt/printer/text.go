package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

// printTreeText prints id and its descendants as an indented outline:
//
//	Pos [List] (3 items of Double)
//	  0 [Double] = 1
func (p *Printer) printTreeText(id tree.NodeID, depth int) error {
	meta, err := p.tree.Stat(id)
	if err != nil {
		return err
	}

	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	fmt.Fprintf(p.writer, "%s%s", indent, p.label(id))
	if p.opts.ShowTypes {
		fmt.Fprintf(p.writer, " [%s]", meta.Kind.Name())
	}

	if !meta.Kind.IsContainer() {
		v, err := p.tree.Value(id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.writer, " = %s\n", p.leafText(v))
		return err
	}

	summary, err := p.tree.Summary(id)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.writer, " (%s)\n", summary); err != nil {
		return err
	}
	if !p.depthAllowed(depth + 1) {
		return nil
	}

	children, err := p.tree.Children(id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := p.printTreeText(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// leafText formats a leaf, quoting strings and eliding long arrays.
func (p *Printer) leafText(v nbt.Tag) string {
	switch x := v.(type) {
	case nbt.String:
		return fmt.Sprintf("%q", string(x))
	case nbt.ByteArray:
		items := make([]string, len(x))
		for i, b := range x {
			items[i] = fmt.Sprint(int8(b))
		}
		return p.elide(items)
	case nbt.IntArray:
		items := make([]string, len(x))
		for i, n := range x {
			items[i] = fmt.Sprint(n)
		}
		return p.elide(items)
	case nbt.LongArray:
		items := make([]string, len(x))
		for i, n := range x {
			items[i] = fmt.Sprint(n)
		}
		return p.elide(items)
	default:
		return tree.FormatValue(v)
	}
}

func (p *Printer) elide(items []string) string {
	limit := p.opts.MaxArrayItems
	if limit <= 0 || len(items) <= limit {
		return "[" + strings.Join(items, ", ") + "]"
	}
	return fmt.Sprintf("[%s, ... (%d total)]", strings.Join(items[:limit], ", "), len(items))
}
