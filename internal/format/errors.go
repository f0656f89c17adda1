package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSectorRange indicates a location entry points outside the file.
	ErrSectorRange = errors.New("format: sector out of range")
	// ErrEmptyChunk indicates a chunk slot is unused.
	ErrEmptyChunk = errors.New("format: chunk not present")
)
