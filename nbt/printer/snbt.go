package printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

func (p *Printer) printSNBT(id tree.NodeID) error {
	v, err := p.tree.Value(id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.writer, SNBT(v))
	return err
}

// SNBT renders t in stringified NBT, e.g. {name: "Steve", Pos: [1.0d, 64.0d]}.
func SNBT(t nbt.Tag) string {
	var b strings.Builder
	writeSNBT(&b, t)
	return b.String()
}

func writeSNBT(b *strings.Builder, t nbt.Tag) {
	switch x := t.(type) {
	case nbt.Byte:
		b.WriteString(strconv.FormatInt(int64(x), 10))
		b.WriteByte('b')
	case nbt.Short:
		b.WriteString(strconv.FormatInt(int64(x), 10))
		b.WriteByte('s')
	case nbt.Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case nbt.Long:
		b.WriteString(strconv.FormatInt(int64(x), 10))
		b.WriteByte('L')
	case nbt.Float:
		b.WriteString(snbtFloat(float64(x), 32))
		b.WriteByte('f')
	case nbt.Double:
		b.WriteString(snbtFloat(float64(x), 64))
		b.WriteByte('d')
	case nbt.String:
		b.WriteString(quoteSNBT(string(x)))
	case nbt.ByteArray:
		b.WriteString("[B;")
		for i, v := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, " %db", int8(v))
		}
		b.WriteByte(']')
	case nbt.IntArray:
		b.WriteString("[I;")
		for i, v := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, " %d", v)
		}
		b.WriteByte(']')
	case nbt.LongArray:
		b.WriteString("[L;")
		for i, v := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, " %dL", v)
		}
		b.WriteByte(']')
	case *nbt.List:
		b.WriteByte('[')
		for i, it := range x.All() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeSNBT(b, it)
		}
		b.WriteByte(']')
	case *nbt.Compound:
		b.WriteByte('{')
		i := 0
		for k, it := range x.All() {
			if i > 0 {
				b.WriteString(", ")
			}
			i++
			b.WriteString(snbtKey(k))
			b.WriteString(": ")
			writeSNBT(b, it)
		}
		b.WriteByte('}')
	}
}

func snbtFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// snbtKey leaves keys made of [A-Za-z0-9._+-] bare and quotes the rest.
func snbtKey(k string) string {
	if k == "" {
		return `""`
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		bare := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '.' || c == '_' || c == '+' || c == '-'
		if !bare {
			return quoteSNBT(k)
		}
	}
	return k
}

func quoteSNBT(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
