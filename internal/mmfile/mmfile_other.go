//go:build !unix

package mmfile

import "os"

// open reads the whole file on platforms without a mmap path.
func open(path string, maxSize int64) (*Mapping, error) {
	if maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxSize {
			return nil, tooLarge(path, info.Size(), maxSize)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}

func unmap([]byte) error { return nil }
