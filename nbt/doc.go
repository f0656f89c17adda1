// Package nbt implements the Named Binary Tag format: the tag type system,
// a big-endian stream cursor, and a recursive-descent codec.
//
// # Tags
//
// Tag is a closed union. The concrete types are Byte, Short, Int, Long,
// Float, Double, ByteArray, String, *List, *Compound, IntArray, and
// LongArray; no other package can add a variant, so a switch over Kind()
// covers every case:
//
//	switch v := tag.(type) {
//	case nbt.Int:
//	    fmt.Println(int32(v))
//	case *nbt.Compound:
//	    for name, child := range v.All() { ... }
//	}
//
// Compound preserves insertion order and List records its element kind, so
// an unedited document re-encodes byte for byte.
//
// # Decoding and Encoding
//
//	name, root, err := nbt.Decode(r)          // uncompressed stream
//	err = nbt.Encode(w, name, root)
//
// Compressed input is handled by the compress subpackage; the document
// package ties both together with file handling and undo history.
//
// Decoding never returns a partial tree: on any error the result is nil.
// Encoding writes nothing to the destination unless the whole document
// encoded successfully.
package nbt
