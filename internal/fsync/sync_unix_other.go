//go:build unix && !linux && !freebsd && !darwin

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

func datasync(f *os.File, _ bool) error {
	return unix.Fsync(int(f.Fd()))
}
