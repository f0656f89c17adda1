// Package mutf8 converts between Go strings and the "modified UTF-8"
// encoding used by NBT strings (the same encoding as Java's
// DataOutput.writeUTF).
//
// It differs from standard UTF-8 in two places:
//   - U+0000 is written as the two bytes C0 80, so encoded text never
//     contains a zero byte.
//   - Code points above U+FFFF are written as a UTF-16 surrogate pair with
//     each surrogate encoded as a three byte sequence (six bytes total).
//
// Decode also accepts standard four byte sequences, which some third-party
// writers emit.
package mutf8

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalid is returned for byte sequences that are not modified UTF-8.
var ErrInvalid = errors.New("mutf8: invalid encoding")

// EncodedLen returns the number of bytes Encode would produce for s.
func EncodedLen(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r < 0x10000:
			n += 3
		default:
			n += 6
		}
	}
	return n
}

// Encode returns the modified UTF-8 bytes for s. Invalid UTF-8 in s is
// encoded as U+FFFD, matching how range over a string decodes it.
func Encode(s string) []byte {
	return Append(make([]byte, 0, EncodedLen(s)), s)
}

// Append appends the modified UTF-8 encoding of s to dst.
func Append(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == 0:
			dst = append(dst, 0xC0, 0x80)
		case r < 0x80:
			dst = append(dst, byte(r))
		case r < 0x800:
			dst = append(dst, 0xC0|byte(r>>6), 0x80|byte(r&0x3F))
		case r < 0x10000:
			dst = append3(dst, r)
		default:
			hi, lo := utf16.EncodeRune(r)
			dst = append3(dst, hi)
			dst = append3(dst, lo)
		}
	}
	return dst
}

func append3(dst []byte, r rune) []byte {
	return append(dst, 0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
}

// Decode converts modified UTF-8 bytes to a Go string. Unpaired surrogates
// become U+FFFD.
func Decode(b []byte) (string, error) {
	// Fast path: pure ASCII without NUL is identical in both encodings.
	ascii := true
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b), nil
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, c)
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || !cont(b[i+1]) {
				return "", invalidAt(i)
			}
			r := rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			out = utf8.AppendRune(out, r)
			i += 2
		case c&0xF0 == 0xE0:
			r, ok := decode3(b, i)
			if !ok {
				return "", invalidAt(i)
			}
			i += 3
			if utf16.IsSurrogate(r) {
				if r < 0xDC00 {
					if lo, ok := decode3(b, i); ok && lo >= 0xDC00 && lo <= 0xDFFF {
						r = utf16.DecodeRune(r, lo)
						i += 3
					} else {
						r = utf8.RuneError
					}
				} else {
					r = utf8.RuneError
				}
			}
			out = utf8.AppendRune(out, r)
		case c&0xF8 == 0xF0:
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", invalidAt(i)
			}
			out = utf8.AppendRune(out, r)
			i += size
		default:
			return "", invalidAt(i)
		}
	}
	return string(out), nil
}

func decode3(b []byte, i int) (rune, bool) {
	if i+2 >= len(b) || b[i]&0xF0 != 0xE0 || !cont(b[i+1]) || !cont(b[i+2]) {
		return 0, false
	}
	return rune(b[i]&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), true
}

func cont(c byte) bool { return c&0xC0 == 0x80 }

func invalidAt(off int) error {
	return fmt.Errorf("%w at byte %d", ErrInvalid, off)
}
