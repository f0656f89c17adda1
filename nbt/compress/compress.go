// Package compress detects and applies the stream compression NBT files are
// stored with: gzip (most .dat files), zlib (region chunks, some tools), or
// none.
//
// Detection sniffs the first bytes of the stream; file extensions are never
// consulted.
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Scheme identifies a compression wrapper.
type Scheme int

const (
	None Scheme = iota
	Gzip
	Zlib
)

// DefaultLevel selects the library's default compression level.
const DefaultLevel = -1

// String returns "none", "gzip", or "zlib".
func (s Scheme) String() string {
	switch s {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme accepts "none"/"raw"/"uncompressed", "gzip"/"gz", "zlib".
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "raw", "uncompressed":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib", "deflate":
		return Zlib, nil
	default:
		return None, types.New(types.ErrKindUnsupportedCompression, fmt.Sprintf("unknown compression scheme %q", s))
	}
}

// Detect classifies a stream by its first bytes. Two bytes are enough.
func Detect(prefix []byte) (Scheme, error) {
	if len(prefix) == 0 {
		return None, types.New(types.ErrKindTruncated, "empty input")
	}
	if bytes.HasPrefix(prefix, format.GzipMagic) {
		return Gzip, nil
	}
	if len(prefix) < len(format.GzipMagic) && bytes.HasPrefix(format.GzipMagic, prefix) {
		return None, types.New(types.ErrKindTruncated, "gzip header cut short")
	}
	if isZlibHeader(prefix) {
		return Zlib, nil
	}
	if prefix[0] == format.RootTagID {
		return None, nil
	}
	return None, types.New(types.ErrKindUnsupportedCompression,
		fmt.Sprintf("unrecognized stream header % x", prefix[:min(len(prefix), 4)]))
}

// isZlibHeader checks the RFC 1950 CMF/FLG pair.
func isZlibHeader(p []byte) bool {
	if len(p) < 2 {
		return false
	}
	cmf, flg := p[0], p[1]
	if cmf&0x0F != format.ZlibMethodDeflate || cmf>>4 > 7 {
		return false
	}
	return (uint16(cmf)<<8|uint16(flg))%format.ZlibHeaderCheck == 0
}

// NewReader sniffs r and returns a reader yielding the decompressed stream
// together with the detected scheme. Close releases decompressor state; it
// does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Scheme, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, err
	}
	scheme, err := Detect(prefix)
	if err != nil {
		return nil, None, err
	}
	rc, err := Wrap(br, scheme)
	if err != nil {
		return nil, None, err
	}
	return rc, scheme, nil
}

// Wrap returns a decompressing reader for a stream known to use scheme.
func Wrap(r io.Reader, scheme Scheme) (io.ReadCloser, error) {
	switch scheme {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, streamErr(scheme, err)
		}
		return &errReader{rc: zr, scheme: scheme}, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, streamErr(scheme, err)
		}
		return &errReader{rc: zr, scheme: scheme}, nil
	default:
		return nil, types.New(types.ErrKindUnsupportedCompression, fmt.Sprintf("unsupported scheme %s", scheme))
	}
}

// NewWriter returns a writer that compresses with scheme into w. Close must
// be called to flush the trailer; it does not close w.
func NewWriter(w io.Writer, scheme Scheme, level int) (io.WriteCloser, error) {
	switch scheme {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, types.Wrap(types.ErrKindInvalidValue, "gzip level", err)
		}
		return zw, nil
	case Zlib:
		zw, err := zlib.NewWriterLevel(w, level)
		if err != nil {
			return nil, types.Wrap(types.ErrKindInvalidValue, "zlib level", err)
		}
		return zw, nil
	default:
		return nil, types.New(types.ErrKindUnsupportedCompression, fmt.Sprintf("unsupported scheme %s", scheme))
	}
}

// Decompress returns the uncompressed bytes of data and the detected scheme.
func Decompress(data []byte) ([]byte, Scheme, error) {
	rc, scheme, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, None, err
	}
	defer rc.Close()
	if scheme == None {
		return data, None, nil
	}
	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, scheme, err
	}
	return out, scheme, nil
}

// Compress returns data compressed with scheme at level.
func Compress(data []byte, scheme Scheme, level int) ([]byte, error) {
	if scheme == None {
		return data, nil
	}
	var b bytes.Buffer
	w, err := NewWriter(&b, scheme, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// errReader converts decompressor failures into typed errors while leaving
// io.EOF and io.ErrUnexpectedEOF untouched for the NBT reader to classify.
type errReader struct {
	rc     io.ReadCloser
	scheme Scheme
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.rc.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return n, streamErr(e.scheme, err)
	}
	return n, err
}

func (e *errReader) Close() error { return e.rc.Close() }

func streamErr(scheme Scheme, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return types.Wrap(types.ErrKindTruncated, scheme.String()+" stream", err)
	}
	return types.Wrap(types.ErrKindCorrupt, scheme.String()+" stream", err)
}
