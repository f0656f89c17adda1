package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// maxEncodeDepth stops runaway recursion on a tag graph that contains a
// cycle, which can only be built by mistake.
const maxEncodeDepth = types.RelaxedMaxDepth

// Encode writes name and root as a complete document to w. Nothing is
// written to w if encoding fails.
func Encode(w io.Writer, name string, root *Compound) error {
	if root == nil {
		return types.New(types.ErrKindInvariant, "encode: nil root")
	}
	return EncodeNamed(w, name, root)
}

// EncodeNamed writes one named tag of any kind to w.
func EncodeNamed(w io.Writer, name string, t Tag) error {
	data, err := MarshalNamed(name, t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal encodes a document into a new byte slice.
func Marshal(name string, root *Compound) ([]byte, error) {
	if root == nil {
		return nil, types.New(types.ErrKindInvariant, "encode: nil root")
	}
	return MarshalNamed(name, root)
}

// MarshalNamed encodes one named tag into a new byte slice.
func MarshalNamed(name string, t Tag) ([]byte, error) {
	if t == nil {
		return nil, types.New(types.ErrKindInvariant, "encode: nil tag")
	}
	var b bytes.Buffer
	e := &encoder{w: NewWriter(&b)}
	if err := e.named(name, t, 0); err != nil {
		return nil, err
	}
	if err := e.w.Flush(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type encoder struct {
	w *Writer
}

func (e *encoder) named(name string, t Tag, depth int) error {
	if err := e.w.WriteU8(uint8(t.Kind())); err != nil {
		return err
	}
	if err := e.w.WriteString(name); err != nil {
		return fmt.Errorf("name %q: %w", truncateName(name), err)
	}
	return e.payload(t, depth)
}

func (e *encoder) payload(t Tag, depth int) error {
	switch v := t.(type) {
	case Byte:
		return e.w.WriteI8(int8(v))
	case Short:
		return e.w.WriteI16(int16(v))
	case Int:
		return e.w.WriteI32(int32(v))
	case Long:
		return e.w.WriteI64(int64(v))
	case Float:
		return e.w.WriteF32(float32(v))
	case Double:
		return e.w.WriteF64(float64(v))
	case String:
		return e.w.WriteString(string(v))
	case ByteArray:
		if err := e.w.WriteLength(len(v), KindByteArray.String()); err != nil {
			return err
		}
		return e.w.WriteBytes(v)
	case IntArray:
		if err := e.w.WriteLength(len(v), KindIntArray.String()); err != nil {
			return err
		}
		for _, x := range v {
			if err := e.w.WriteI32(x); err != nil {
				return err
			}
		}
		return nil
	case LongArray:
		if err := e.w.WriteLength(len(v), KindLongArray.String()); err != nil {
			return err
		}
		for _, x := range v {
			if err := e.w.WriteI64(x); err != nil {
				return err
			}
		}
		return nil
	case *List:
		return e.list(v, depth)
	case *Compound:
		return e.compound(v, depth)
	default:
		return types.New(types.ErrKindInvariant, fmt.Sprintf("encode: unsupported tag type %T", t))
	}
}

func (e *encoder) list(l *List, depth int) error {
	if depth >= maxEncodeDepth {
		return types.New(types.ErrKindInvariant, "encode: nesting too deep (cycle?)")
	}
	if len(l.items) > 0 && l.elem == KindEnd {
		return types.New(types.ErrKindInvariant, "encode: non-empty list without element kind")
	}
	if err := e.w.WriteU8(uint8(l.elem)); err != nil {
		return err
	}
	if err := e.w.WriteLength(len(l.items), KindList.String()); err != nil {
		return err
	}
	for i, it := range l.items {
		if it == nil || it.Kind() != l.elem {
			return types.New(types.ErrKindInvariant,
				fmt.Sprintf("encode: list of %s holds %s at index %d", l.elem, kindOf(it), i))
		}
		if err := e.payload(it, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) compound(c *Compound, depth int) error {
	if depth >= maxEncodeDepth {
		return types.New(types.ErrKindInvariant, "encode: nesting too deep (cycle?)")
	}
	for _, en := range c.entries {
		if en.Tag == nil {
			return types.New(types.ErrKindInvariant, fmt.Sprintf("encode: entry %q is nil", truncateName(en.Name)))
		}
		if err := e.named(en.Name, en.Tag, depth+1); err != nil {
			return err
		}
	}
	return e.w.WriteU8(uint8(KindEnd))
}

func kindOf(t Tag) string {
	if t == nil {
		return "nil"
	}
	return t.Kind().String()
}

func truncateName(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
