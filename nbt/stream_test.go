package nbt

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/pkg/types"
)

func TestWriterReaderMirror(t *testing.T) {
	var b bytes.Buffer
	w := NewWriter(&b)
	require.NoError(t, w.WriteU8(0xAB))
	require.NoError(t, w.WriteI8(-2))
	require.NoError(t, w.WriteI16(-300))
	require.NoError(t, w.WriteU16(65000))
	require.NoError(t, w.WriteI32(math.MinInt32))
	require.NoError(t, w.WriteI64(math.MaxInt64))
	require.NoError(t, w.WriteF32(3.25))
	require.NoError(t, w.WriteF64(-1e300))
	require.NoError(t, w.WriteString("a\x00b"))
	require.NoError(t, w.WriteLength(3, "bytes"))
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3}))
	require.NoError(t, w.Flush())
	require.Equal(t, int64(b.Len()), w.Written())

	r := NewReader(bytes.NewReader(b.Bytes()))
	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)
	i8, _ := r.ReadI8()
	require.Equal(t, int8(-2), i8)
	i16, _ := r.ReadI16()
	require.Equal(t, int16(-300), i16)
	u16, _ := r.ReadU16()
	require.Equal(t, uint16(65000), u16)
	i32, _ := r.ReadI32()
	require.Equal(t, int32(math.MinInt32), i32)
	i64, _ := r.ReadI64()
	require.Equal(t, int64(math.MaxInt64), i64)
	f32, _ := r.ReadF32()
	require.Equal(t, float32(3.25), f32)
	f64, _ := r.ReadF64()
	require.Equal(t, -1e300, f64)
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "a\x00b", s)
	n, err := r.ReadLength("bytes")
	require.NoError(t, err)
	raw, err := r.ReadBytes(n)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, raw)
	require.Equal(t, int64(b.Len()), r.Offset())

	_, err = r.ReadU8()
	require.ErrorIs(t, err, types.ErrTruncated)
}

func TestReaderTruncatedReportsOffset(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0, 1}))
	_, err := r.ReadI32()
	require.ErrorIs(t, err, types.ErrTruncated)
	require.Contains(t, err.Error(), "offset 0")
	require.Contains(t, err.Error(), "need 4 bytes, have 3")
}

func TestReaderNegativeLength(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xfe}))
	_, err := r.ReadLength("list")
	require.ErrorIs(t, err, types.ErrMalformedLength)
}

func TestReaderMaxBytes(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 16)))
	r.SetMaxBytes(6)
	_, err := r.ReadI32()
	require.NoError(t, err)
	_, err = r.ReadI32()
	require.ErrorIs(t, err, types.ErrMalformedLength)
}

func TestReaderUnbufferedSource(t *testing.T) {
	src := iotest.OneByteReader(bytes.NewReader([]byte{0, 0, 0, 7}))
	r := NewReader(src)
	v, err := r.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(7), v)
}

func TestWriterRejectsLongString(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	err := w.WriteString(strings.Repeat("€", 30000))
	require.ErrorIs(t, err, types.ErrInvalidValue)
}
