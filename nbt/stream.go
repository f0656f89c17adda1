package nbt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/joshuapare/nbtkit/internal/mutf8"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// smallRead is the largest payload read into a single up-front allocation.
// Larger payloads grow as bytes actually arrive, so a hostile length prefix
// cannot force a huge allocation before the input runs out.
const smallRead = 1 << 20

// Reader is a sequential big-endian cursor over an uncompressed NBT stream.
type Reader struct {
	r       io.Reader
	off     int64
	max     int64 // <= 0 disables the size limit
	scratch [8]byte
}

// NewReader wraps r. Readers that are not already buffered are wrapped in a
// bufio.Reader.
func NewReader(r io.Reader) *Reader {
	switch r.(type) {
	case *bytes.Reader, *bufio.Reader, *bytes.Buffer:
	default:
		r = bufio.NewReader(r)
	}
	return &Reader{r: r}
}

// SetMaxBytes bounds the total number of bytes the reader will consume.
// Zero or negative disables the bound.
func (r *Reader) SetMaxBytes(n int64) { r.max = n }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.off }

func (r *Reader) fill(p []byte, what string) error {
	if r.max > 0 && r.off+int64(len(p)) > r.max {
		return types.New(types.ErrKindMalformedLength,
			fmt.Sprintf("%s at offset %d: document exceeds %d byte limit", what, r.off, r.max))
	}
	n, err := io.ReadFull(r.r, p)
	r.off += int64(n)
	if err != nil {
		return r.wrap(err, what, len(p), n)
	}
	return nil
}

func (r *Reader) wrap(err error, what string, want, got int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return types.Wrap(types.ErrKindTruncated,
			fmt.Sprintf("read %s at offset %d: need %d bytes, have %d", what, r.off-int64(got), want, got), err)
	}
	return fmt.Errorf("read %s at offset %d: %w", what, r.off-int64(got), err)
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.fill(r.scratch[:1], "byte"); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads a big-endian unsigned short.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.fill(r.scratch[:2], "short"); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.scratch[:2]), nil
}

// ReadI16 reads a big-endian signed short.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadI32 reads a big-endian signed int.
func (r *Reader) ReadI32() (int32, error) {
	if err := r.fill(r.scratch[:4], "int"); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(r.scratch[:4])), nil
}

// ReadI64 reads a big-endian signed long.
func (r *Reader) ReadI64() (int64, error) {
	if err := r.fill(r.scratch[:8], "long"); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(r.scratch[:8])), nil
}

// ReadF32 reads a big-endian IEEE-754 float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadI32()
	return math.Float32frombits(uint32(v)), err
}

// ReadF64 reads a big-endian IEEE-754 double.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadI64()
	return math.Float64frombits(uint64(v)), err
}

// ReadLength reads a 4-byte signed count and rejects negative values.
func (r *Reader) ReadLength(what string) (int, error) {
	start := r.off
	n, err := r.ReadI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, types.New(types.ErrKindMalformedLength,
			fmt.Sprintf("%s length at offset %d is negative (%d)", what, start, n))
	}
	return int(n), nil
}

// ReadBytes reads exactly n bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, types.New(types.ErrKindMalformedLength, fmt.Sprintf("negative byte count %d", n))
	}
	if n <= smallRead {
		out := make([]byte, n)
		if err := r.fill(out, "bytes"); err != nil {
			return nil, err
		}
		return out, nil
	}
	if r.max > 0 && r.off+int64(n) > r.max {
		return nil, types.New(types.ErrKindMalformedLength,
			fmt.Sprintf("bytes at offset %d: document exceeds %d byte limit", r.off, r.max))
	}
	var b bytes.Buffer
	got, err := io.CopyN(&b, r.r, int64(n))
	r.off += got
	if err != nil {
		return nil, r.wrap(err, "bytes", n, int(got))
	}
	return b.Bytes(), nil
}

// ReadString reads a uint16 length followed by modified UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	start := r.off
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	raw, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	s, err := mutf8.Decode(raw)
	if err != nil {
		return "", types.Wrap(types.ErrKindCorrupt, fmt.Sprintf("string at offset %d", start), err)
	}
	return s, nil
}

// Writer is the big-endian counterpart of Reader. Output is buffered; call
// Flush when done.
type Writer struct {
	w       *bufio.Writer
	n       int64
	scratch [8]byte
}

// NewWriter wraps w in a buffered writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 { return w.n }

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return err
}

// WriteU8 writes one byte.
func (w *Writer) WriteU8(v uint8) error {
	w.n++
	return w.w.WriteByte(v)
}

// WriteI8 writes one signed byte.
func (w *Writer) WriteI8(v int8) error { return w.WriteU8(uint8(v)) }

// WriteU16 writes a big-endian unsigned short.
func (w *Writer) WriteU16(v uint16) error {
	binary.BigEndian.PutUint16(w.scratch[:2], v)
	return w.write(w.scratch[:2])
}

// WriteI16 writes a big-endian signed short.
func (w *Writer) WriteI16(v int16) error { return w.WriteU16(uint16(v)) }

// WriteI32 writes a big-endian signed int.
func (w *Writer) WriteI32(v int32) error {
	binary.BigEndian.PutUint32(w.scratch[:4], uint32(v))
	return w.write(w.scratch[:4])
}

// WriteI64 writes a big-endian signed long.
func (w *Writer) WriteI64(v int64) error {
	binary.BigEndian.PutUint64(w.scratch[:8], uint64(v))
	return w.write(w.scratch[:8])
}

// WriteF32 writes a big-endian IEEE-754 float.
func (w *Writer) WriteF32(v float32) error { return w.WriteI32(int32(math.Float32bits(v))) }

// WriteF64 writes a big-endian IEEE-754 double.
func (w *Writer) WriteF64(v float64) error { return w.WriteI64(int64(math.Float64bits(v))) }

// WriteLength writes a 4-byte signed count.
func (w *Writer) WriteLength(n int, what string) error {
	if n < 0 || n > math.MaxInt32 {
		return types.New(types.ErrKindMalformedLength, fmt.Sprintf("%s length %d does not fit in int32", what, n))
	}
	return w.WriteI32(int32(n))
}

// WriteBytes writes p verbatim.
func (w *Writer) WriteBytes(p []byte) error { return w.write(p) }

// WriteString writes a uint16 length followed by modified UTF-8 bytes.
func (w *Writer) WriteString(s string) error {
	n := mutf8.EncodedLen(s)
	if n > types.MaxStringBytes {
		return types.New(types.ErrKindInvalidValue,
			fmt.Sprintf("string of %d encoded bytes exceeds %d", n, types.MaxStringBytes))
	}
	if err := w.WriteU16(uint16(n)); err != nil {
		return err
	}
	return w.write(mutf8.Encode(s))
}
