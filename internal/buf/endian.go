// Package buf contains big-endian helpers and bounds checks shared by the
// NBT codec and the region file reader.
package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U24BE reads a big-endian 24-bit unsigned integer from b, as used by the
// region location table. Returns 0 when b is too short.
func U24BE(b []byte) uint32 {
	if len(b) < 3 {
		return 0
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// I32BE reads a big-endian int32 from b. Returns 0 when b is too short.
func I32BE(b []byte) int32 {
	return int32(U32BE(b))
}

// PutU24BE writes the low 24 bits of v to b[0:3]. b must hold 3 bytes.
func PutU24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// AppendI32s appends each value as 4 big-endian bytes.
func AppendI32s(dst []byte, vals []int32) []byte {
	for _, v := range vals {
		dst = binary.BigEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

// AppendI64s appends each value as 8 big-endian bytes.
func AppendI64s(dst []byte, vals []int64) []byte {
	for _, v := range vals {
		dst = binary.BigEndian.AppendUint64(dst, uint64(v))
	}
	return dst
}

// I32s decodes len(b)/4 big-endian int32 values. Trailing bytes are ignored.
func I32s(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
	}
	return out
}

// I64s decodes len(b)/8 big-endian int64 values. Trailing bytes are ignored.
func I64s(b []byte) []int64 {
	out := make([]int64, len(b)/8)
	for i := range out {
		out[i] = int64(binary.BigEndian.Uint64(b[i*8:]))
	}
	return out
}
