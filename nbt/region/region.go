package region

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/nbtkit/internal/format"
	"github.com/joshuapare/nbtkit/internal/mmfile"
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// SectorSize is the allocation unit of a region file.
const SectorSize = format.SectorSize

// Options configures how a region file is read.
type Options struct {
	// Limits bounds each decoded chunk.
	Limits types.Limits

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultOptions returns default limits and no logging.
func DefaultOptions() Options {
	return Options{Limits: types.DefaultLimits()}
}

// ChunkInfo describes one occupied chunk slot.
type ChunkInfo struct {
	X, Z         int // in-region coordinates, 0..31
	Index        int
	SectorOffset uint32
	SectorCount  uint8
	Modified     time.Time
}

// Chunk is a decoded chunk document.
type Chunk struct {
	ChunkInfo
	Name string
	Root *nbt.Compound
}

// File is an opened region file.
type File struct {
	data   []byte
	m      *mmfile.Mapping
	header format.RegionHeader
	opts   Options
	log    *slog.Logger
}

// Open maps the region file at path.
func Open(path string, opts Options) (*File, error) {
	opts.Limits = opts.Limits.Normalize()
	m, err := mmfile.Open(path, opts.Limits.MaxInputSize)
	if err != nil {
		return nil, err
	}
	f, err := Parse(m.Bytes(), opts)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.m = m
	f.log.Debug("region opened", "path", path, "bytes", m.Len(), "mapped", m.Mapped(), "chunks", f.Len())
	return f, nil
}

// Parse reads the header of a region file held in memory. data must stay
// valid and unchanged while the File is in use.
func Parse(data []byte, opts Options) (*File, error) {
	opts.Limits = opts.Limits.Normalize()
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(data) == 0 {
		// An empty file is a region with no chunks.
		return &File{opts: opts, log: log}, nil
	}
	h, err := format.ParseRegionHeader(data)
	if err != nil {
		return nil, types.Wrap(types.ErrKindTruncated, "region header", err)
	}
	return &File{data: data, header: h, opts: opts, log: log}, nil
}

// Close releases the mapping, if any.
func (f *File) Close() error {
	if f.m == nil {
		return nil
	}
	err := f.m.Close()
	f.m = nil
	f.data = nil
	return err
}

// Len returns the number of occupied slots.
func (f *File) Len() int {
	n := 0
	for _, loc := range f.header.Locations {
		if !loc.Empty() {
			n++
		}
	}
	return n
}

// Chunks lists occupied slots in index order.
func (f *File) Chunks() []ChunkInfo {
	var out []ChunkInfo
	for i, loc := range f.header.Locations {
		if loc.Empty() {
			continue
		}
		out = append(out, f.info(i))
	}
	return out
}

func (f *File) info(i int) ChunkInfo {
	x, z := format.ChunkCoords(i)
	loc := f.header.Locations[i]
	return ChunkInfo{
		X:            x,
		Z:            z,
		Index:        i,
		SectorOffset: loc.SectorOffset,
		SectorCount:  loc.SectorCount,
		Modified:     format.Timestamp(f.header.Timestamps[i]),
	}
}

// Has reports whether chunk (x, z) is present. Coordinates wrap, so world
// chunk coordinates work as well as in-region ones.
func (f *File) Has(x, z int) bool {
	return !f.header.Locations[format.ChunkIndex(x, z)].Empty()
}

// RawChunk returns the compression id and the still-compressed payload of
// chunk (x, z). The payload aliases the file data.
func (f *File) RawChunk(x, z int) (byte, []byte, error) {
	i := format.ChunkIndex(x, z)
	comp, payload, err := format.ChunkPayload(f.data, f.header.Locations[i])
	if err != nil {
		switch {
		case errors.Is(err, format.ErrEmptyChunk):
			return 0, nil, types.Wrap(types.ErrKindNotFound, fmt.Sprintf("chunk %d,%d", x&31, z&31), err)
		case errors.Is(err, format.ErrTruncated):
			return 0, nil, types.Wrap(types.ErrKindTruncated, fmt.Sprintf("chunk %d,%d", x&31, z&31), err)
		default:
			return 0, nil, types.Wrap(types.ErrKindCorrupt, fmt.Sprintf("chunk %d,%d", x&31, z&31), err)
		}
	}
	return comp, payload, nil
}

// Chunk decodes chunk (x, z).
func (f *File) Chunk(x, z int) (Chunk, error) {
	comp, payload, err := f.RawChunk(x, z)
	if err != nil {
		return Chunk{}, err
	}
	name, root, err := decodeChunk(comp, payload, f.opts.Limits)
	if err != nil {
		return Chunk{}, fmt.Errorf("chunk %d,%d: %w", x&31, z&31, err)
	}
	return Chunk{ChunkInfo: f.info(format.ChunkIndex(x, z)), Name: name, Root: root}, nil
}

// ReadAll decodes every chunk using up to workers goroutines (<= 0 means
// GOMAXPROCS). Results come back in index order. The first failure cancels
// the remaining work.
func (f *File) ReadAll(ctx context.Context, workers int) ([]Chunk, error) {
	infos := f.Chunks()
	out := make([]Chunk, len(infos))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, info := range infos {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := f.Chunk(info.X, info.Z)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	f.log.Debug("region decoded", "chunks", len(out), "workers", workers)
	return out, nil
}

func decodeChunk(comp byte, payload []byte, limits types.Limits) (string, *nbt.Compound, error) {
	scheme, err := schemeFor(comp)
	if err != nil {
		return "", nil, err
	}
	rc, err := compress.Wrap(bytes.NewReader(payload), scheme)
	if err != nil {
		return "", nil, err
	}
	defer rc.Close()
	return nbt.NewDecoderWithLimits(rc, limits).Decode()
}

func schemeFor(comp byte) (compress.Scheme, error) {
	switch comp {
	case format.ChunkCompressionGzip:
		return compress.Gzip, nil
	case format.ChunkCompressionZlib:
		return compress.Zlib, nil
	case format.ChunkCompressionNone:
		return compress.None, nil
	}
	what := fmt.Sprintf("chunk compression id %d", comp)
	switch {
	case comp&format.ChunkCompressionExternal != 0:
		what = "chunk stored in an external .mcc file"
	case comp == format.ChunkCompressionLZ4:
		what = "LZ4 chunk compression"
	case comp == format.ChunkCompressionCustom:
		what = "custom chunk compression"
	}
	return compress.None, types.New(types.ErrKindUnsupportedCompression, what+" is not supported")
}

func compressionID(s compress.Scheme) (byte, error) {
	switch s {
	case compress.Gzip:
		return format.ChunkCompressionGzip, nil
	case compress.Zlib:
		return format.ChunkCompressionZlib, nil
	case compress.None:
		return format.ChunkCompressionNone, nil
	default:
		return 0, types.New(types.ErrKindUnsupportedCompression, fmt.Sprintf("scheme %s", s))
	}
}
