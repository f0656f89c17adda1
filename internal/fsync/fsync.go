// Package fsync writes files so that a crash or a failed write never leaves
// a half-written document in place of the original.
package fsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Options tunes how hard WriteFile pushes data to stable storage.
type Options struct {
	// FullSync requests F_FULLFSYNC on macOS. Ignored elsewhere.
	FullSync bool
	// SkipSync disables all syncing. Tests use it to avoid slow disks.
	SkipSync bool
}

// WriteFile atomically replaces path with data: it writes a temp file in
// the same directory, syncs it, and renames it over path. Existing files
// keep their permissions; new ones get perm.
func WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode, opts Options) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("fsync: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("fsync: write %s: %w", tmpName, err)
	}
	if !opts.SkipSync {
		if err = datasync(tmp, opts.FullSync); err != nil {
			return fmt.Errorf("fsync: sync %s: %w", tmpName, err)
		}
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("fsync: chmod %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("fsync: close %s: %w", tmpName, err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("fsync: rename into place: %w", err)
	}
	if !opts.SkipSync {
		// The rename is durable only once the directory entry is.
		if err := syncDir(dir); err != nil {
			return fmt.Errorf("fsync: sync dir %s: %w", dir, err)
		}
	}
	return nil
}
