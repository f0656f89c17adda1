package document

import (
	"log/slog"

	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Options controls loading, history, and saving.
type Options struct {
	// Limits bounds decoding of untrusted input.
	Limits types.Limits

	// Logger receives load/save/undo events. Nil discards them.
	Logger *slog.Logger

	// Level is the compression level used when saving.
	// Zero selects compress.DefaultLevel.
	Level int

	// HistoryLimit caps the undo stack (0 = unbounded).
	HistoryLimit int

	// CreateBackup copies the existing file to <path>.bak before Save
	// replaces it.
	CreateBackup bool

	// FullSync requests the strongest flush the platform offers on save.
	FullSync bool
}

// DefaultOptions returns default limits, default compression, unbounded
// history, and no logging.
func DefaultOptions() Options {
	return Options{
		Limits: types.DefaultLimits(),
		Level:  compress.DefaultLevel,
	}
}
