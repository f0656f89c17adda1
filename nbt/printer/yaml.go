package printer

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

func (p *Printer) printYAML(id tree.NodeID) error {
	v, err := p.tree.Value(id)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(p.writer)
	indent := p.opts.IndentSize
	if indent < 2 {
		indent = DefaultIndentSize
	}
	enc.SetIndent(indent)
	if err := enc.Encode(p.yamlNode(v)); err != nil {
		return err
	}
	return enc.Close()
}

// yamlNode builds a node tree directly so compound order survives and every
// scalar keeps an unambiguous YAML type.
func (p *Printer) yamlNode(t nbt.Tag) *yaml.Node {
	n := yamlValue(t, p.yamlNode)
	if !p.opts.ShowTypes {
		return n
	}
	typed := &yaml.Node{Kind: yaml.MappingNode}
	typed.Content = append(typed.Content, yamlStr("type"), yamlStr(t.Kind().Name()))
	if l, ok := t.(*nbt.List); ok {
		typed.Content = append(typed.Content, yamlStr("elem"), yamlStr(l.Elem().Name()))
	}
	typed.Content = append(typed.Content, yamlStr("value"), n)
	return typed
}

func yamlValue(t nbt.Tag, child func(nbt.Tag) *yaml.Node) *yaml.Node {
	switch x := t.(type) {
	case nbt.Byte:
		return yamlInt(int64(x))
	case nbt.Short:
		return yamlInt(int64(x))
	case nbt.Int:
		return yamlInt(int64(x))
	case nbt.Long:
		return yamlInt(int64(x))
	case nbt.Float:
		return yamlFloat(float64(x), 32)
	case nbt.Double:
		return yamlFloat(float64(x), 64)
	case nbt.String:
		return yamlStr(string(x))
	case nbt.ByteArray:
		seq := yamlFlowSeq(len(x))
		for _, b := range x {
			seq.Content = append(seq.Content, yamlInt(int64(int8(b))))
		}
		return seq
	case nbt.IntArray:
		seq := yamlFlowSeq(len(x))
		for _, v := range x {
			seq.Content = append(seq.Content, yamlInt(int64(v)))
		}
		return seq
	case nbt.LongArray:
		seq := yamlFlowSeq(len(x))
		for _, v := range x {
			seq.Content = append(seq.Content, yamlInt(v))
		}
		return seq
	case *nbt.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, x.Len())}
		for _, it := range x.All() {
			seq.Content = append(seq.Content, child(it))
		}
		if x.Len() == 0 {
			seq.Style = yaml.FlowStyle
		}
		return seq
	case *nbt.Compound:
		m := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*x.Len())}
		for k, it := range x.All() {
			m.Content = append(m.Content, yamlStr(k), child(it))
		}
		if x.Len() == 0 {
			m.Style = yaml.FlowStyle
		}
		return m
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlStr(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlInt(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func yamlFloat(f float64, bits int) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(f, 'g', -1, bits)
		// Keep integral values from reading back as ints.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}

func yamlFlowSeq(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: make([]*yaml.Node, 0, n)}
}
