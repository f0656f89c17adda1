package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/nbtkit/internal/fsync"
	"github.com/joshuapare/nbtkit/internal/mmfile"
	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/nbt/history"
	"github.com/joshuapare/nbtkit/nbt/tree"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// Document is one open NBT file.
type Document struct {
	path     string
	scheme   compress.Scheme
	tree     *tree.Tree
	hist     *history.History
	opts     Options
	log      *slog.Logger
	savedRev uint64
}

func newDocument(name string, root *nbt.Compound, scheme compress.Scheme, opts Options) *Document {
	opts.Limits = opts.Limits.Normalize()
	if opts.Level == 0 {
		opts.Level = compress.DefaultLevel
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Document{
		scheme: scheme,
		tree:   tree.FromTag(name, root),
		hist:   history.New(opts.HistoryLimit),
		opts:   opts,
		log:    log,
	}
	d.savedRev = d.tree.Revision()
	return d
}

// New returns an empty document that will be saved with scheme.
func New(name string, scheme compress.Scheme, opts Options) *Document {
	return newDocument(name, nbt.NewCompound(), scheme, opts)
}

// Load decodes a complete file held in memory, detecting its compression.
// A failure yields no document.
func Load(data []byte, opts Options) (*Document, error) {
	limits := opts.Limits.Normalize()
	if limits.MaxInputSize > 0 && int64(len(data)) > limits.MaxInputSize {
		return nil, types.New(types.ErrKindMalformedLength,
			fmt.Sprintf("input of %d bytes exceeds %d byte limit", len(data), limits.MaxInputSize))
	}
	return Read(bytes.NewReader(data), opts)
}

// Read decodes a document from r, detecting its compression.
func Read(r io.Reader, opts Options) (*Document, error) {
	rc, scheme, err := compress.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	name, root, err := nbt.NewDecoderWithLimits(rc, opts.Limits).Decode()
	if err != nil {
		return nil, err
	}
	d := newDocument(name, root, scheme, opts)
	d.log.Debug("document decoded", "scheme", scheme.String(), "nodes", d.tree.Len())
	return d, nil
}

// Open reads and decodes the file at path.
func Open(ctx context.Context, path string, opts Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mmfile.Open(path, opts.Limits.Normalize().MaxInputSize)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	d, err := Load(m.Bytes(), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.path = path
	d.log.Info("document opened", "path", path, "bytes", m.Len(), "scheme", d.scheme.String())
	return d, nil
}

// Path returns the file the document was opened from or last saved to.
func (d *Document) Path() string { return d.path }

// Scheme returns the compression used when saving.
func (d *Document) Scheme() compress.Scheme { return d.scheme }

// SetScheme changes the compression used by Save.
func (d *Document) SetScheme(s compress.Scheme) { d.scheme = s }

// Tree returns the editable tree. Edits made directly on it bypass history
// unless preceded by PushSnapshot.
func (d *Document) Tree() *tree.Tree { return d.tree }

// Name returns the root tag's name.
func (d *Document) Name() string { return d.tree.Name() }

// Root materializes the current document.
func (d *Document) Root() *nbt.Compound {
	_, root := d.tree.Tag()
	return root
}

// Modified reports whether the tree changed since it was loaded or saved.
func (d *Document) Modified() bool { return d.tree.Revision() != d.savedRev }

// Bytes encodes the document and compresses it with scheme.
func (d *Document) Bytes(scheme compress.Scheme) ([]byte, error) {
	name, root := d.tree.Tag()
	raw, err := nbt.Marshal(name, root)
	if err != nil {
		return nil, err
	}
	return compress.Compress(raw, scheme, d.opts.Level)
}

// WriteTo writes the document with its own scheme to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Bytes(d.scheme)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Save writes the document back to Path with its scheme.
func (d *Document) Save(ctx context.Context) error {
	if d.path == "" {
		return types.New(types.ErrKindInvariant, "document has no path; use SaveAs")
	}
	return d.save(ctx, d.path, d.scheme)
}

// SaveAs writes the document to path with scheme. On success the document
// adopts path and scheme for later Saves.
func (d *Document) SaveAs(ctx context.Context, path string, scheme compress.Scheme) error {
	if err := d.save(ctx, path, scheme); err != nil {
		return err
	}
	d.path = path
	d.scheme = scheme
	return nil
}

func (d *Document) save(ctx context.Context, path string, scheme compress.Scheme) error {
	data, err := d.Bytes(scheme)
	if err != nil {
		return err
	}
	if d.opts.CreateBackup {
		if err := d.backup(ctx, path); err != nil {
			return err
		}
	}
	if err := fsync.WriteFile(ctx, path, data, 0o644, fsync.Options{FullSync: d.opts.FullSync}); err != nil {
		d.log.Error("save failed", "path", path, "error", err)
		return err
	}
	d.savedRev = d.tree.Revision()
	d.log.Info("document saved", "path", path, "bytes", len(data), "scheme", scheme.String())
	return nil
}

func (d *Document) backup(ctx context.Context, path string) error {
	old, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	if err := fsync.WriteFile(ctx, path+".bak", old, 0o644, fsync.Options{}); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	d.log.Debug("backup written", "path", path+".bak", "bytes", len(old))
	return nil
}
