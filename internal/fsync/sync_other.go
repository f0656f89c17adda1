//go:build !unix && !windows

package fsync

import "os"

func datasync(f *os.File, _ bool) error { return f.Sync() }

func syncDir(string) error { return nil }
