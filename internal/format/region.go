package format

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/joshuapare/nbtkit/internal/buf"
)

// Location is one entry of a region file's location table.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   3    Offset of the chunk in 4 KiB sectors from file start
//	 0x003   1    Number of sectors allocated to the chunk
//
// An all-zero entry marks an empty slot. All fields are big-endian.
type Location struct {
	SectorOffset uint32
	SectorCount  uint8
}

// Empty reports whether the slot holds no chunk.
func (l Location) Empty() bool {
	return l.SectorOffset == 0 && l.SectorCount == 0
}

// ChunkIndex maps chunk coordinates (any sign) to a table index.
func ChunkIndex(x, z int) int {
	return (x & (RegionChunksPerSide - 1)) + (z&(RegionChunksPerSide-1))*RegionChunksPerSide
}

// ChunkCoords is the inverse of ChunkIndex for in-region coordinates.
func ChunkCoords(index int) (x, z int) {
	return index % RegionChunksPerSide, index / RegionChunksPerSide
}

// RegionHeader is the decoded 8 KiB header of a region file.
type RegionHeader struct {
	Locations  [RegionChunkCount]Location
	Timestamps [RegionChunkCount]uint32
}

// ParseRegionHeader decodes the location and timestamp tables.
func ParseRegionHeader(b []byte) (RegionHeader, error) {
	var h RegionHeader
	if len(b) < RegionHeaderSize {
		return h, fmt.Errorf("region header: %w (have %d, need %d)", ErrTruncated, len(b), RegionHeaderSize)
	}
	for i := 0; i < RegionChunkCount; i++ {
		off := i * LocationEntrySize
		h.Locations[i] = Location{
			SectorOffset: buf.U24BE(b[off:]),
			SectorCount:  b[off+3],
		}
		h.Timestamps[i] = buf.U32BE(b[SectorSize+i*TimestampEntrySize:])
	}
	return h, nil
}

// Encode writes the header tables into a fresh RegionHeaderSize buffer.
func (h *RegionHeader) Encode() []byte {
	out := make([]byte, RegionHeaderSize)
	for i := 0; i < RegionChunkCount; i++ {
		off := i * LocationEntrySize
		buf.PutU24BE(out[off:], h.Locations[i].SectorOffset)
		out[off+3] = h.Locations[i].SectorCount
		binary.BigEndian.PutUint32(out[SectorSize+i*TimestampEntrySize:], h.Timestamps[i])
	}
	return out
}

// Timestamp converts a timestamp table entry to time.Time.
func Timestamp(v uint32) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(int64(v), 0).UTC()
}

// ChunkPayload locates the compressed payload of the chunk described by loc
// within the region file data. It returns the compression id and the
// payload bytes (aliasing data).
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   4    Length of the remaining chunk data (compression byte + payload)
//	 0x004   1    Compression id
//	 0x005   n-1  Payload
func ChunkPayload(data []byte, loc Location) (byte, []byte, error) {
	if loc.Empty() {
		return 0, nil, ErrEmptyChunk
	}
	start, ok := buf.MulOverflowSafe(int(loc.SectorOffset), SectorSize)
	if !ok || loc.SectorOffset < RegionHeaderSize/SectorSize {
		return 0, nil, fmt.Errorf("%w: offset %d", ErrSectorRange, loc.SectorOffset)
	}
	header, ok := buf.Slice(data, start, ChunkHeaderSize)
	if !ok {
		return 0, nil, fmt.Errorf("%w: offset %d", ErrSectorRange, loc.SectorOffset)
	}
	length := int(buf.U32BE(header))
	if length < 1 {
		return 0, nil, fmt.Errorf("chunk at sector %d: %w (length %d)", loc.SectorOffset, ErrTruncated, length)
	}
	if length+4 > int(loc.SectorCount)*SectorSize {
		return 0, nil, fmt.Errorf("chunk at sector %d: length %d exceeds %d allocated sectors",
			loc.SectorOffset, length, loc.SectorCount)
	}
	payload, ok := buf.Slice(data, start+ChunkHeaderSize, length-1)
	if !ok {
		return 0, nil, fmt.Errorf("chunk at sector %d: %w", loc.SectorOffset, ErrTruncated)
	}
	return header[4], payload, nil
}

// SectorsFor returns how many sectors a chunk with payloadLen bytes occupies.
func SectorsFor(payloadLen int) int {
	total := payloadLen + ChunkHeaderSize
	return (total + SectorSize - 1) / SectorSize
}
