package nbt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// rawDoc assembles hand-written NBT bytes. It exists so fixtures read like
// the wire format instead of opaque hex.
type rawDoc struct {
	bytes.Buffer
}

func (d *rawDoc) u8(v byte) *rawDoc { d.WriteByte(v); return d }

func (d *rawDoc) i16(v int16) *rawDoc {
	_ = binary.Write(&d.Buffer, binary.BigEndian, v)
	return d
}

func (d *rawDoc) i32(v int32) *rawDoc {
	_ = binary.Write(&d.Buffer, binary.BigEndian, v)
	return d
}

func (d *rawDoc) i64(v int64) *rawDoc {
	_ = binary.Write(&d.Buffer, binary.BigEndian, v)
	return d
}

func (d *rawDoc) str(s string) *rawDoc {
	d.i16(int16(len(s)))
	d.WriteString(s)
	return d
}

func (d *rawDoc) tag(k Kind, name string) *rawDoc {
	return d.u8(byte(k)).str(name)
}

// steveDoc is {name: "Steve", health: 20} under an empty root name.
func steveDoc() []byte {
	var d rawDoc
	d.tag(KindCompound, "")
	d.tag(KindString, "name").str("Steve")
	d.tag(KindInt, "health").i32(20)
	d.u8(0)
	return d.Bytes()
}

// sampleCompound covers every tag kind, including nested containers and an
// empty list with a declared element kind.
func sampleCompound(t *testing.T) *Compound {
	t.Helper()
	root := NewCompound()
	root.Set("byte", Byte(-7))
	root.Set("short", Short(1234))
	root.Set("int", Int(-100000))
	root.Set("long", Long(1<<40))
	root.Set("float", Float(1.5))
	root.Set("double", Double(-2.25))
	root.Set("string", String("héllo \x00 😀"))
	root.Set("bytes", ByteArray{0, 1, 0xff})
	root.Set("ints", IntArray{1, -1, 1 << 30})
	root.Set("longs", LongArray{-1 << 62})

	pos, err := NewList(KindDouble, Double(1), Double(64), Double(-3))
	require.NoError(t, err)
	root.Set("Pos", pos)

	typedEmpty, err := NewList(KindCompound)
	require.NoError(t, err)
	root.Set("emptyTyped", typedEmpty)
	root.Set("empty", &List{})

	inner := NewCompound()
	inner.Set("id", String("minecraft:stone"))
	inner.Set("Count", Byte(64))
	items, err := NewList(KindCompound, inner, NewCompound())
	require.NoError(t, err)
	root.Set("Inventory", items)

	// Inner lists may have different element kinds from each other.
	nested, err := NewList(KindList, pos.Clone(), &List{})
	require.NoError(t, err)
	root.Set("nested", nested)
	return root
}
