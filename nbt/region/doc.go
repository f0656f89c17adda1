// Package region reads and writes Anvil (.mca) and McRegion (.mcr) region
// files: 32x32 chunk slots, each holding one compressed NBT document.
//
// Layout
//
//	0x0000  4 KiB   location table: 1024 x (3-byte sector offset, 1-byte sector count)
//	0x1000  4 KiB   timestamp table: 1024 x uint32 seconds since the epoch
//	0x2000  ...     chunk data in 4 KiB sectors:
//	                uint32 length, compression id, payload
//
// Chunk slot i holds chunk (x, z) with i = (x & 31) + (z & 31) * 32.
//
// Open memory maps the file. Close releases the mapping; chunk bytes
// returned by RawChunk alias the mapping and are invalid afterwards.
// Decoded chunks (Chunk, ReadAll) own their memory.
package region
