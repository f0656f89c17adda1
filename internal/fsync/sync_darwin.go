//go:build darwin

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// datasync uses F_FULLFSYNC when asked, so data reaches the platter and not
// just the drive cache. macOS has no fdatasync.
func datasync(f *os.File, fullsync bool) error {
	if fullsync {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
