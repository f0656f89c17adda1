package region

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/internal/fsync"
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/pkg/types"
)

type pendingChunk struct {
	comp     byte
	payload  []byte
	modified time.Time
}

// Writer assembles a region file in memory. Chunks are laid out in slot
// order, each starting on a sector boundary.
type Writer struct {
	scheme compress.Scheme
	level  int
	chunks [format.RegionChunkCount]*pendingChunk
}

// NewWriter returns a Writer that compresses chunks added with Put using
// scheme. Zlib is what the game writes.
func NewWriter(scheme compress.Scheme) *Writer {
	return &Writer{scheme: scheme, level: compress.DefaultLevel}
}

// SetLevel changes the compression level for subsequent Put calls.
func (w *Writer) SetLevel(level int) { w.level = level }

// Put encodes and compresses a chunk document into slot (x, z), replacing
// any previous chunk there.
func (w *Writer) Put(x, z int, name string, root *nbt.Compound, modified time.Time) error {
	comp, err := compressionID(w.scheme)
	if err != nil {
		return err
	}
	raw, err := nbt.Marshal(name, root)
	if err != nil {
		return fmt.Errorf("chunk %d,%d: %w", x&31, z&31, err)
	}
	payload, err := compress.Compress(raw, w.scheme, w.level)
	if err != nil {
		return fmt.Errorf("chunk %d,%d: %w", x&31, z&31, err)
	}
	return w.PutRaw(x, z, comp, payload, modified)
}

// PutRaw stores an already compressed payload. The payload is copied.
func (w *Writer) PutRaw(x, z int, comp byte, payload []byte, modified time.Time) error {
	if n := format.SectorsFor(len(payload)); n > format.MaxSectorsPerChunk {
		return types.New(types.ErrKindInvalidValue,
			fmt.Sprintf("chunk %d,%d needs %d sectors, a region slot holds at most %d",
				x&31, z&31, n, format.MaxSectorsPerChunk))
	}
	w.chunks[format.ChunkIndex(x, z)] = &pendingChunk{
		comp:     comp,
		payload:  bytes.Clone(payload),
		modified: modified,
	}
	return nil
}

// Delete empties slot (x, z).
func (w *Writer) Delete(x, z int) {
	w.chunks[format.ChunkIndex(x, z)] = nil
}

// CopyFrom copies every chunk of f into the writer without recompressing.
func (w *Writer) CopyFrom(f *File) error {
	for _, info := range f.Chunks() {
		comp, payload, err := f.RawChunk(info.X, info.Z)
		if err != nil {
			return err
		}
		if err := w.PutRaw(info.X, info.Z, comp, payload, info.Modified); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of occupied slots.
func (w *Writer) Len() int {
	n := 0
	for _, c := range w.chunks {
		if c != nil {
			n++
		}
	}
	return n
}

// Bytes lays out the complete region file.
func (w *Writer) Bytes() ([]byte, error) {
	var h format.RegionHeader
	next := uint32(format.RegionHeaderSize / format.SectorSize)
	for i, c := range w.chunks {
		if c == nil {
			continue
		}
		n := uint32(format.SectorsFor(len(c.payload)))
		if next+n-1 > format.MaxSectorOffset {
			return nil, types.New(types.ErrKindInvalidValue, "region data exceeds the addressable sector range")
		}
		h.Locations[i] = format.Location{SectorOffset: next, SectorCount: uint8(n)}
		if !c.modified.IsZero() {
			h.Timestamps[i] = uint32(c.modified.Unix())
		}
		next += n
	}

	out := make([]byte, int(next)*format.SectorSize)
	copy(out, h.Encode())
	for i, c := range w.chunks {
		if c == nil {
			continue
		}
		off := int(h.Locations[i].SectorOffset) * format.SectorSize
		binary.BigEndian.PutUint32(out[off:], uint32(len(c.payload)+1))
		out[off+4] = c.comp
		copy(out[off+format.ChunkHeaderSize:], c.payload)
	}
	return out, nil
}

// WriteTo writes the laid out region file to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	data, err := w.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := dst.Write(data)
	return int64(n), err
}

// WriteFile atomically replaces path with the laid out region file. A File
// opened from path may stay open while this runs.
func (w *Writer) WriteFile(ctx context.Context, path string, fullSync bool) error {
	data, err := w.Bytes()
	if err != nil {
		return err
	}
	return fsync.WriteFile(ctx, path, data, 0o644, fsync.Options{FullSync: fullSync})
}
