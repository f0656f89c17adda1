//go:build linux || freebsd

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// datasync flushes file data. fdatasync is enough on Linux/FreeBSD; the
// fullsync flag only matters on macOS.
func datasync(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
