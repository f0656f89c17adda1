// Package mmfile exposes a file's bytes read-only, memory mapped where the
// platform allows it. Region files are read this way so that listing a
// region touches only the header pages.
package mmfile

import (
	"fmt"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// Mapping is a read-only view of a file. Bytes must not be used after
// Close.
type Mapping struct {
	data   []byte
	mapped bool
	closed bool
}

// Bytes returns the file contents.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the file size.
func (m *Mapping) Len() int { return len(m.data) }

// Mapped reports whether the view is backed by mmap rather than a copy.
func (m *Mapping) Mapped() bool { return m.mapped }

// Close releases the mapping. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m == nil || m.closed {
		return nil
	}
	m.closed = true
	data := m.data
	m.data = nil
	if !m.mapped || len(data) == 0 {
		return nil
	}
	return unmap(data)
}

// Open maps the file at path. Files larger than maxSize bytes are rejected
// before any mapping happens; maxSize <= 0 disables the check.
func Open(path string, maxSize int64) (*Mapping, error) {
	return open(path, maxSize)
}

func tooLarge(path string, size, maxSize int64) error {
	return types.New(types.ErrKindMalformedLength,
		fmt.Sprintf("mmfile: %s is %d bytes, limit is %d", path, size, maxSize))
}
