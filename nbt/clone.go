package nbt

import (
	"math"
	"slices"

	"github.com/joshuapare/nbtkit/internal/buf"
)

// Clone returns a deep copy of t. Leaf values are immutable and returned
// as is; arrays, lists, and compounds are copied recursively.
func Clone(t Tag) Tag {
	switch v := t.(type) {
	case ByteArray:
		return slices.Clone(v)
	case IntArray:
		return slices.Clone(v)
	case LongArray:
		return slices.Clone(v)
	case *List:
		return v.Clone()
	case *Compound:
		return v.Clone()
	default:
		return t
	}
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	out := &List{elem: l.elem, items: make([]Tag, len(l.items))}
	for i, it := range l.items {
		out.items[i] = Clone(it)
	}
	return out
}

// Clone returns a deep copy of the compound, preserving order.
func (c *Compound) Clone() *Compound {
	out := &Compound{
		entries: make([]Entry, len(c.entries)),
		index:   make(map[string]int, len(c.entries)),
	}
	for i, e := range c.entries {
		out.entries[i] = Entry{Name: e.Name, Tag: Clone(e.Tag)}
		out.index[e.Name] = i
	}
	return out
}

// Equal reports whether a and b are structurally equal: same kinds, same
// values, same compound order, and same list element kinds. Floats are
// compared by bit pattern so NaN payloads and negative zero count.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Float:
		return math.Float32bits(float32(av)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(av)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return slices.Equal(av, b.(ByteArray))
	case IntArray:
		return slices.Equal(av, b.(IntArray))
	case LongArray:
		return slices.Equal(av, b.(LongArray))
	case *List:
		bv := b.(*List)
		if av.elem != bv.elem || len(av.items) != len(bv.items) {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		bv := b.(*Compound)
		if len(av.entries) != len(bv.entries) {
			return false
		}
		for i := range av.entries {
			if av.entries[i].Name != bv.entries[i].Name || !Equal(av.entries[i].Tag, bv.entries[i].Tag) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// RawBytes returns the exact big-endian element bytes of an array tag as
// they appear on disk, for hex views. ok is false for other kinds.
func RawBytes(t Tag) (raw []byte, ok bool) {
	switch v := t.(type) {
	case ByteArray:
		return slices.Clone([]byte(v)), true
	case IntArray:
		return buf.AppendI32s(make([]byte, 0, len(v)*4), v), true
	case LongArray:
		return buf.AppendI64s(make([]byte, 0, len(v)*8), v), true
	default:
		return nil, false
	}
}
