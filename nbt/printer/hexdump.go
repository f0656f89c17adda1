package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const hexBytesPerLine = 16

// HexDump writes data as offset, hex, and ASCII columns, 16 bytes per line:
//
//	00000000: 0a 00 00 08 00 04 6e 61 6d 65 00 05 53 74 65 76 | ......name..Stev
//
// Bytes outside printable ASCII show as '.'. Empty input writes nothing.
func HexDump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	var hex, ascii strings.Builder
	for off := 0; off < len(data); off += hexBytesPerLine {
		chunk := data[off:min(off+hexBytesPerLine, len(data))]
		hex.Reset()
		ascii.Reset()
		for i, b := range chunk {
			if i > 0 {
				hex.WriteByte(' ')
			}
			fmt.Fprintf(&hex, "%02x", b)
			if b >= 32 && b <= 126 {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		if _, err := fmt.Fprintf(bw, "%08x: %-47s | %s\n", off, hex.String(), ascii.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
