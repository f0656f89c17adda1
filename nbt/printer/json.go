package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

// jsonObject is a compound rendered with its keys in document order.
type jsonObject []jsonEntry

type jsonEntry struct {
	Key   string
	Value any
}

func (o jsonObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// jsonTyped is a value annotated with its tag kind.
type jsonTyped struct {
	Type  string `json:"type"`
	Elem  string `json:"elem,omitempty"`
	Value any    `json:"value"`
}

func (p *Printer) printJSON(id tree.NodeID) error {
	v, err := p.tree.Value(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p.plain(v), "", strings.Repeat(" ", p.opts.IndentSize))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// plain converts a tag into values encoding/json and the YAML builder
// understand. With ShowTypes every value is wrapped in jsonTyped.
func (p *Printer) plain(t nbt.Tag) any {
	v := plainValue(t, p.plain)
	if !p.opts.ShowTypes {
		return v
	}
	typed := jsonTyped{Type: t.Kind().Name(), Value: v}
	if l, ok := t.(*nbt.List); ok {
		typed.Elem = l.Elem().Name()
	}
	return typed
}

func plainValue(t nbt.Tag, child func(nbt.Tag) any) any {
	switch x := t.(type) {
	case nbt.Byte:
		return int8(x)
	case nbt.Short:
		return int16(x)
	case nbt.Int:
		return int32(x)
	case nbt.Long:
		return int64(x)
	case nbt.Float:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return jsonFloat(f)
		}
		return float32(x)
	case nbt.Double:
		return jsonFloat(float64(x))
	case nbt.String:
		return string(x)
	case nbt.ByteArray:
		out := make([]int8, len(x))
		for i, b := range x {
			out[i] = int8(b)
		}
		return out
	case nbt.IntArray:
		return []int32(x)
	case nbt.LongArray:
		return []int64(x)
	case *nbt.List:
		out := make([]any, 0, x.Len())
		for _, it := range x.All() {
			out = append(out, child(it))
		}
		return out
	case *nbt.Compound:
		out := make(jsonObject, 0, x.Len())
		for k, it := range x.All() {
			out = append(out, jsonEntry{Key: k, Value: child(it)})
		}
		return out
	default:
		return nil
	}
}

// jsonFloat passes finite values through and spells out the rest, which
// JSON cannot represent as numbers.
func jsonFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}
