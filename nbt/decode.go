package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joshuapare/nbtkit/internal/buf"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// listPrealloc caps the capacity reserved up front for a list's elements.
const listPrealloc = 1024

// Decoder reads named tags from an uncompressed NBT stream.
type Decoder struct {
	r      *Reader
	limits types.Limits
}

// NewDecoder returns a decoder reading from r with default limits.
func NewDecoder(r io.Reader) *Decoder {
	return NewDecoderWithLimits(r, types.DefaultLimits())
}

// NewDecoderWithLimits returns a decoder with explicit resource limits.
func NewDecoderWithLimits(r io.Reader, limits types.Limits) *Decoder {
	limits = limits.Normalize()
	rd := NewReader(r)
	if limits.MaxInputSize > 0 {
		rd.SetMaxBytes(limits.MaxInputSize)
	}
	return &Decoder{r: rd, limits: limits}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 { return d.r.Offset() }

// Decode reads a document whose root must be a Compound.
func Decode(r io.Reader) (string, *Compound, error) {
	return NewDecoder(r).Decode()
}

// DecodeNamed reads one named tag of any kind.
func DecodeNamed(r io.Reader) (string, Tag, error) {
	return NewDecoder(r).DecodeNamed()
}

// Unmarshal decodes a complete uncompressed document held in memory.
func Unmarshal(data []byte) (string, *Compound, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a named root tag and requires it to be a Compound.
func (d *Decoder) Decode() (string, *Compound, error) {
	name, tag, err := d.DecodeNamed()
	if err != nil {
		return "", nil, err
	}
	root, ok := tag.(*Compound)
	if !ok {
		return "", nil, types.New(types.ErrKindCorrupt,
			fmt.Sprintf("root tag is %s, expected %s", tag.Kind(), KindCompound))
	}
	return name, root, nil
}

// DecodeNamed reads a kind byte, a name, and the payload.
func (d *Decoder) DecodeNamed() (string, Tag, error) {
	start := d.r.Offset()
	id, err := d.r.ReadU8()
	if err != nil {
		return "", nil, fmt.Errorf("root tag: %w", err)
	}
	k := Kind(id)
	if k == KindEnd {
		return "", nil, types.New(types.ErrKindCorrupt, fmt.Sprintf("unexpected %s at offset %d", k, start))
	}
	if !k.Valid() {
		return "", nil, unknownKind(id, start)
	}
	name, err := d.r.ReadString()
	if err != nil {
		return "", nil, fmt.Errorf("root tag name: %w", err)
	}
	tag, err := d.payload(k, 0)
	if err != nil {
		return "", nil, err
	}
	return name, tag, nil
}

// payload decodes the body of a tag whose kind is already known.
func (d *Decoder) payload(k Kind, depth int) (Tag, error) {
	switch k {
	case KindByte:
		v, err := d.r.ReadI8()
		return Byte(v), err
	case KindShort:
		v, err := d.r.ReadI16()
		return Short(v), err
	case KindInt:
		v, err := d.r.ReadI32()
		return Int(v), err
	case KindLong:
		v, err := d.r.ReadI64()
		return Long(v), err
	case KindFloat:
		v, err := d.r.ReadF32()
		return Float(v), err
	case KindDouble:
		v, err := d.r.ReadF64()
		return Double(v), err
	case KindString:
		v, err := d.r.ReadString()
		return String(v), err
	case KindByteArray:
		raw, err := d.array(k)
		if err != nil {
			return nil, err
		}
		return ByteArray(raw), nil
	case KindIntArray:
		raw, err := d.array(k)
		if err != nil {
			return nil, err
		}
		return IntArray(buf.I32s(raw)), nil
	case KindLongArray:
		raw, err := d.array(k)
		if err != nil {
			return nil, err
		}
		return LongArray(buf.I64s(raw)), nil
	case KindList:
		return d.list(depth)
	case KindCompound:
		return d.compound(depth)
	default:
		return nil, unknownKind(uint8(k), d.r.Offset())
	}
}

func (d *Decoder) array(k Kind) ([]byte, error) {
	n, err := d.r.ReadLength(k.String())
	if err != nil {
		return nil, err
	}
	size, err := buf.CheckCount(n, k.Width(), d.limits.MaxArrayLen)
	if err != nil {
		return nil, types.Wrap(types.ErrKindMalformedLength, k.String(), err)
	}
	return d.r.ReadBytes(size)
}

func (d *Decoder) enter(depth int) error {
	if depth >= d.limits.MaxDepth {
		return types.New(types.ErrKindCorrupt,
			fmt.Sprintf("nesting deeper than %d at offset %d", d.limits.MaxDepth, d.r.Offset()))
	}
	return nil
}

func (d *Decoder) list(depth int) (Tag, error) {
	if err := d.enter(depth); err != nil {
		return nil, err
	}
	start := d.r.Offset()
	id, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	elem := Kind(id)
	if !elem.Valid() {
		return nil, unknownKind(id, start)
	}
	n, err := d.r.ReadLength(KindList.String())
	if err != nil {
		return nil, err
	}
	if _, err := buf.CheckCount(n, 1, d.limits.MaxArrayLen); err != nil {
		return nil, types.Wrap(types.ErrKindMalformedLength, KindList.String(), err)
	}
	if n > 0 && elem == KindEnd {
		return nil, types.New(types.ErrKindCorrupt,
			fmt.Sprintf("list at offset %d has %d elements of %s", start, n, KindEnd))
	}
	l := &List{elem: elem, items: make([]Tag, 0, min(n, listPrealloc))}
	for i := 0; i < n; i++ {
		t, err := d.payload(elem, depth+1)
		if err != nil {
			return nil, err
		}
		l.items = append(l.items, t)
	}
	return l, nil
}

func (d *Decoder) compound(depth int) (Tag, error) {
	if err := d.enter(depth); err != nil {
		return nil, err
	}
	c := NewCompound()
	for {
		start := d.r.Offset()
		id, err := d.r.ReadU8()
		if err != nil {
			return nil, err
		}
		k := Kind(id)
		if k == KindEnd {
			return c, nil
		}
		if !k.Valid() {
			return nil, unknownKind(id, start)
		}
		name, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}
		t, err := d.payload(k, depth+1)
		if err != nil {
			return nil, err
		}
		// Repeated names keep the first position and the last value.
		c.Set(name, t)
	}
}

func unknownKind(id uint8, off int64) error {
	return types.New(types.ErrKindCorrupt, fmt.Sprintf("unknown tag id %d at offset %d", id, off))
}
