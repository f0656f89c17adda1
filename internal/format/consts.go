// Package format houses low-level constants and fixed-layout decoders for
// the NBT stream and the region container format. Higher-level packages
// orchestrate the data in a more ergonomic form.
package format

var (
	// GzipMagic is the two-byte signature at the start of every gzip member.
	GzipMagic = []byte{0x1F, 0x8B}
)

const (
	// RootTagID is the tag id every uncompressed document starts with
	// (TAG_Compound). Used for content sniffing.
	RootTagID = 0x0A

	// ZlibMethodDeflate is the CM nibble of a zlib CMF byte for deflate.
	ZlibMethodDeflate = 0x08

	// ZlibHeaderCheck is the modulus the CMF/FLG pair must satisfy.
	ZlibHeaderCheck = 31
)

const (
	// SectorSize is the allocation unit of a region file.
	SectorSize = 4096

	// RegionChunksPerSide is the width and depth of a region in chunks.
	RegionChunksPerSide = 32

	// RegionChunkCount is the number of chunk slots in one region file.
	RegionChunkCount = RegionChunksPerSide * RegionChunksPerSide

	// RegionHeaderSize covers the location table and the timestamp table.
	RegionHeaderSize = 2 * SectorSize

	// LocationEntrySize is the size of one location table entry.
	LocationEntrySize = 4

	// TimestampEntrySize is the size of one timestamp table entry.
	TimestampEntrySize = 4

	// ChunkHeaderSize is the length prefix plus the compression byte.
	ChunkHeaderSize = 5

	// MaxSectorsPerChunk is the largest sector count a location entry can hold.
	MaxSectorsPerChunk = 0xFF

	// MaxSectorOffset is the largest sector offset a location entry can hold.
	MaxSectorOffset = 1<<24 - 1
)

// Chunk compression ids stored in the byte after the chunk length.
const (
	ChunkCompressionGzip     byte = 1
	ChunkCompressionZlib     byte = 2
	ChunkCompressionNone     byte = 3
	ChunkCompressionLZ4      byte = 4
	ChunkCompressionCustom   byte = 127
	ChunkCompressionExternal byte = 0x80
)
