package nbt

import (
	"fmt"
	"strings"
)

// Kind is the one-byte tag id used on the wire.
type Kind uint8

const (
	KindEnd       Kind = 0
	KindByte      Kind = 1
	KindShort     Kind = 2
	KindInt       Kind = 3
	KindLong      Kind = 4
	KindFloat     Kind = 5
	KindDouble    Kind = 6
	KindByteArray Kind = 7
	KindString    Kind = 8
	KindList      Kind = 9
	KindCompound  Kind = 10
	KindIntArray  Kind = 11
	KindLongArray Kind = 12
)

var kindNames = [...]string{
	KindEnd:       "End",
	KindByte:      "Byte",
	KindShort:     "Short",
	KindInt:       "Int",
	KindLong:      "Long",
	KindFloat:     "Float",
	KindDouble:    "Double",
	KindByteArray: "ByteArray",
	KindString:    "String",
	KindList:      "List",
	KindCompound:  "Compound",
	KindIntArray:  "IntArray",
	KindLongArray: "LongArray",
}

// Valid reports whether k is one of the thirteen defined tag ids.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// Name returns the short name ("Int", "Compound").
func (k Kind) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
	return kindNames[k]
}

// String returns the conventional TAG_ name ("TAG_Int", "TAG_Byte_Array").
func (k Kind) String() string {
	switch k {
	case KindByteArray:
		return "TAG_Byte_Array"
	case KindIntArray:
		return "TAG_Int_Array"
	case KindLongArray:
		return "TAG_Long_Array"
	}
	if !k.Valid() {
		return fmt.Sprintf("TAG_Unknown_%d", uint8(k))
	}
	return "TAG_" + kindNames[k]
}

// IsContainer reports whether tags of this kind hold child tags.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindCompound
}

// IsArray reports whether k is one of the length-prefixed numeric arrays.
func (k Kind) IsArray() bool {
	return k == KindByteArray || k == KindIntArray || k == KindLongArray
}

// IsNumeric reports whether k is a fixed-width number.
func (k Kind) IsNumeric() bool {
	return k >= KindByte && k <= KindDouble
}

// Width is the encoded size in bytes of one value (or one array element)
// of this kind, or 0 for variable-width kinds.
func (k Kind) Width() int {
	switch k {
	case KindByte, KindByteArray:
		return 1
	case KindShort:
		return 2
	case KindInt, KindFloat, KindIntArray:
		return 4
	case KindLong, KindDouble, KindLongArray:
		return 8
	default:
		return 0
	}
}

// ParseKind accepts "Int", "int", "TAG_Int", "int_array", "IntArray",
// "byte-array" and similar spellings.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "tag_")
	norm = strings.NewReplacer("_", "", "-", "", " ", "").Replace(norm)
	for k, name := range kindNames {
		if strings.ToLower(name) == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown tag kind %q", s)
}
