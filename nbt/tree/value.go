package tree

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joshuapare/nbtkit/internal/mutf8"
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// ParseValue converts text into a tag of kind k.
//
// Integers are base 10 and must fit the kind's width. Floats accept the
// usual decimal and exponent forms plus "NaN" and "Inf". Strings are taken
// verbatim. Arrays take their elements separated by commas or whitespace,
// optionally wrapped in brackets. Containers cannot be parsed.
func ParseValue(k nbt.Kind, raw string) (nbt.Tag, error) {
	s := strings.TrimSpace(raw)
	switch k {
	case nbt.KindByte:
		v, err := parseInt(s, 8, k)
		return nbt.Byte(v), err
	case nbt.KindShort:
		v, err := parseInt(s, 16, k)
		return nbt.Short(v), err
	case nbt.KindInt:
		v, err := parseInt(s, 32, k)
		return nbt.Int(v), err
	case nbt.KindLong:
		v, err := parseInt(s, 64, k)
		return nbt.Long(v), err
	case nbt.KindFloat:
		v, err := parseFloat(s, 32, k)
		return nbt.Float(v), err
	case nbt.KindDouble:
		v, err := parseFloat(s, 64, k)
		return nbt.Double(v), err
	case nbt.KindString:
		if n := mutf8.EncodedLen(raw); n > types.MaxStringBytes {
			return nil, types.New(types.ErrKindInvalidValue,
				fmt.Sprintf("string of %d encoded bytes exceeds %d", n, types.MaxStringBytes))
		}
		return nbt.String(raw), nil
	case nbt.KindByteArray:
		fields := arrayFields(s)
		out := make(nbt.ByteArray, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 16)
			if err != nil || v < math.MinInt8 || v > math.MaxUint8 {
				return nil, invalid(k, f, "element out of byte range")
			}
			out[i] = byte(v)
		}
		return out, nil
	case nbt.KindIntArray:
		fields := arrayFields(s)
		out := make(nbt.IntArray, len(fields))
		for i, f := range fields {
			v, err := parseInt(f, 32, k)
			if err != nil {
				return nil, err
			}
			out[i] = int32(v)
		}
		return out, nil
	case nbt.KindLongArray:
		fields := arrayFields(s)
		out := make(nbt.LongArray, len(fields))
		for i, f := range fields {
			v, err := parseInt(f, 64, k)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, types.New(types.ErrKindKindMismatch, fmt.Sprintf("%s has no text form", k))
	}
}

func parseInt(s string, bits int, k nbt.Kind) (int64, error) {
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, invalid(k, s, "out of range")
		}
		return 0, invalid(k, s, "not an integer")
	}
	return v, nil
}

func parseFloat(s string, bits int, k nbt.Kind) (float64, error) {
	v, err := strconv.ParseFloat(s, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, invalid(k, s, "out of range")
		}
		return 0, invalid(k, s, "not a number")
	}
	return v, nil
}

func arrayFields(s string) []string {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func invalid(k nbt.Kind, s, why string) error {
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return types.New(types.ErrKindInvalidValue, fmt.Sprintf("%q is not a valid %s: %s", s, k, why))
}

// FormatValue renders a leaf value the way ParseValue reads it back.
func FormatValue(v nbt.Tag) string {
	switch x := v.(type) {
	case nbt.Byte:
		return strconv.FormatInt(int64(x), 10)
	case nbt.Short:
		return strconv.FormatInt(int64(x), 10)
	case nbt.Int:
		return strconv.FormatInt(int64(x), 10)
	case nbt.Long:
		return strconv.FormatInt(int64(x), 10)
	case nbt.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case nbt.Double:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case nbt.String:
		return string(x)
	case nbt.ByteArray:
		parts := make([]string, len(x))
		for i, b := range x {
			parts[i] = strconv.Itoa(int(int8(b)))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case nbt.IntArray:
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = strconv.FormatInt(int64(n), 10)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case nbt.LongArray:
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *nbt.List:
		return fmt.Sprintf("%d items", x.Len())
	case *nbt.Compound:
		return fmt.Sprintf("%d entries", x.Len())
	default:
		return ""
	}
}

// Summary returns the one-line display value of id: the formatted value of
// a leaf, the element count of an array, or the child count of a container.
func (t *Tree) Summary(id NodeID) (string, error) {
	n, err := t.get(id)
	if err != nil {
		return "", err
	}
	return t.summary(n), nil
}

// MustSummary is Summary for handles known to be valid.
func (t *Tree) MustSummary(id NodeID) string {
	s, err := t.Summary(id)
	if err != nil {
		panic(err)
	}
	return s
}

func (t *Tree) summary(n *node) string {
	switch n.kind {
	case nbt.KindCompound:
		return plural(len(n.children), "entry", "entries")
	case nbt.KindList:
		if len(n.children) == 0 && n.elem == nbt.KindEnd {
			return "0 items"
		}
		return plural(len(n.children), "item", "items") + " of " + n.elem.Name()
	case nbt.KindByteArray:
		return plural(len(n.value.(nbt.ByteArray)), "byte", "bytes")
	case nbt.KindIntArray:
		return plural(len(n.value.(nbt.IntArray)), "int", "ints")
	case nbt.KindLongArray:
		return plural(len(n.value.(nbt.LongArray)), "long", "longs")
	default:
		return FormatValue(n.value)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
