package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/nbt/tree"
	"github.com/joshuapare/nbtkit/pkg/types"
)

// steveRaw is {name: "Steve", health: 20} with an empty root name.
var steveRaw = []byte{
	0x0a, 0x00, 0x00,
	0x08, 0x00, 0x04, 'n', 'a', 'm', 'e', 0x00, 0x05, 'S', 't', 'e', 'v', 'e',
	0x03, 0x00, 0x06, 'h', 'e', 'a', 'l', 't', 'h', 0x00, 0x00, 0x00, 0x14,
	0x00,
}

func load(t *testing.T, scheme compress.Scheme) *Document {
	t.Helper()
	data, err := compress.Compress(steveRaw, scheme, compress.DefaultLevel)
	require.NoError(t, err)
	d, err := Load(data, DefaultOptions())
	require.NoError(t, err)
	return d
}

func find(t *testing.T, d *Document, path string) tree.NodeID {
	t.Helper()
	id, err := d.Tree().Find(path)
	require.NoError(t, err, path)
	return id
}

func value(t *testing.T, d *Document, path string) nbt.Tag {
	t.Helper()
	v, err := d.Tree().Value(find(t, d, path))
	require.NoError(t, err)
	return v
}

func TestLoadDetectsScheme(t *testing.T) {
	for _, scheme := range []compress.Scheme{compress.None, compress.Gzip, compress.Zlib} {
		t.Run(scheme.String(), func(t *testing.T) {
			d := load(t, scheme)
			assert.Equal(t, scheme, d.Scheme())
			assert.Equal(t, "", d.Name())
			assert.Equal(t, nbt.String("Steve"), value(t, d, "name"))
			assert.Equal(t, nbt.Int(20), value(t, d, "health"))
			assert.False(t, d.Modified())
		})
	}
}

func TestUneditedRawRoundTripIsByteIdentical(t *testing.T) {
	d := load(t, compress.None)
	out, err := d.Bytes(compress.None)
	require.NoError(t, err)
	assert.Equal(t, steveRaw, out)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(nil, DefaultOptions())
	assert.ErrorIs(t, err, types.ErrTruncated)

	_, err = Load([]byte("PK\x03\x04"), DefaultOptions())
	assert.ErrorIs(t, err, types.ErrUnsupportedCompression)

	_, err = Load(steveRaw[:len(steveRaw)-3], DefaultOptions())
	assert.ErrorIs(t, err, types.ErrTruncated)

	opts := DefaultOptions()
	opts.Limits.MaxInputSize = 8
	_, err = Load(steveRaw, opts)
	assert.ErrorIs(t, err, types.ErrMalformedLength)
}

func TestSetValueUndoRedo(t *testing.T) {
	d := load(t, compress.Gzip)
	health := find(t, d, "health")

	require.NoError(t, d.SetValue(health, "10"))
	assert.Equal(t, nbt.Int(10), value(t, d, "health"))
	assert.True(t, d.Modified())
	assert.True(t, d.CanUndo())

	require.True(t, d.Undo())
	assert.Equal(t, nbt.Int(20), value(t, d, "health"))
	assert.False(t, d.CanUndo())
	assert.True(t, d.CanRedo())

	require.True(t, d.Redo())
	assert.Equal(t, nbt.Int(10), value(t, d, "health"))
	assert.False(t, d.Redo())
}

func TestRejectedEditsStayOutOfHistory(t *testing.T) {
	d := load(t, compress.Gzip)
	health := find(t, d, "health")

	err := d.Rename(health, "name")
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
	err = d.SetValue(health, "lots")
	assert.ErrorIs(t, err, types.ErrInvalidValue)

	assert.False(t, d.CanUndo())
	assert.False(t, d.Modified())
	assert.Equal(t, nbt.Int(20), value(t, d, "health"))
}

func TestEmptyListTakesFirstKind(t *testing.T) {
	d := load(t, compress.None)
	list, err := d.InsertChild(d.Tree().Root(), nbt.KindList, "scores")
	require.NoError(t, err)

	_, err = d.InsertChild(list, nbt.KindInt, "")
	require.NoError(t, err)

	_, err = d.InsertChild(list, nbt.KindString, "")
	assert.ErrorIs(t, err, types.ErrKindMismatch)

	v := value(t, d, "scores").(*nbt.List)
	assert.Equal(t, nbt.KindInt, v.Elem())
	assert.Equal(t, 1, v.Len())

	// Two successful inserts, two undo steps.
	require.True(t, d.Undo())
	require.True(t, d.Undo())
	assert.False(t, d.CanUndo())
	assert.False(t, d.Root().Has("scores"))
}

func TestUndoRedoWalk(t *testing.T) {
	d := load(t, compress.None)
	states := []*nbt.Compound{d.Root()}
	for _, v := range []string{"19", "18", "17"} {
		require.NoError(t, d.SetValue(find(t, d, "health"), v))
		states = append(states, d.Root())
	}

	for i := len(states) - 2; i >= 0; i-- {
		require.True(t, d.Undo())
		assert.True(t, nbt.Equal(states[i], d.Root()), "undo to state %d", i)
	}
	for i := 1; i < len(states); i++ {
		require.True(t, d.Redo())
		assert.True(t, nbt.Equal(states[i], d.Root()), "redo to state %d", i)
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	d := load(t, compress.None)
	require.NoError(t, d.SetValue(find(t, d, "health"), "1"))
	require.True(t, d.Undo())
	require.NoError(t, d.Remove(find(t, d, "name")))
	assert.False(t, d.CanRedo())
}

func TestPushSnapshotForDirectEdits(t *testing.T) {
	d := load(t, compress.None)
	d.PushSnapshot()
	_, err := d.Tree().InsertChild(d.Tree().Root(), nbt.KindByte, "direct")
	require.NoError(t, err)

	require.True(t, d.Undo())
	assert.False(t, d.Root().Has("direct"))
}

func TestEditRestoresOnFailure(t *testing.T) {
	d := load(t, compress.None)
	err := d.Edit(func(tr *tree.Tree) error {
		if _, err := tr.InsertChild(tr.Root(), nbt.KindInt, "a"); err != nil {
			return err
		}
		_, err := tr.InsertChild(tr.Root(), nbt.KindInt, "a")
		return err
	})
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
	assert.False(t, d.Root().Has("a"))
	assert.False(t, d.CanUndo())

	require.NoError(t, d.Edit(func(tr *tree.Tree) error {
		_, err := tr.InsertChild(tr.Root(), nbt.KindInt, "a")
		return err
	}))
	assert.True(t, d.CanUndo())
}

func TestSetNameIsUndoable(t *testing.T) {
	d := load(t, compress.None)
	require.NoError(t, d.SetName("Player"))
	assert.Equal(t, "Player", d.Name())
	require.True(t, d.Undo())
	assert.Equal(t, "", d.Name())
}

func TestSaveAsAndOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "player.dat")

	d := load(t, compress.Gzip)
	require.NoError(t, d.SetValue(find(t, d, "health"), "5"))
	require.NoError(t, d.SaveAs(ctx, path, compress.Zlib))
	assert.Equal(t, path, d.Path())
	assert.Equal(t, compress.Zlib, d.Scheme())
	assert.False(t, d.Modified())

	again, err := Open(ctx, path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, compress.Zlib, again.Scheme())
	assert.True(t, nbt.Equal(d.Root(), again.Root()))
}

func TestSaveWithBackup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, os.WriteFile(path, steveRaw, 0o644))

	opts := DefaultOptions()
	opts.CreateBackup = true
	d, err := Open(ctx, path, opts)
	require.NoError(t, err)
	require.NoError(t, d.SetValue(find(t, d, "name"), "Alex"))
	require.NoError(t, d.Save(ctx))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, steveRaw, bak)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(saved, []byte("Alex")), "raw scheme is kept")
}

func TestSaveWithoutPath(t *testing.T) {
	d := New("", compress.Gzip, DefaultOptions())
	err := d.Save(context.Background())
	assert.ErrorIs(t, err, types.ErrInvariant)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.dat"), DefaultOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTo(t *testing.T) {
	d := load(t, compress.None)
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(steveRaw)), n)
	assert.Equal(t, steveRaw, buf.Bytes())
}

func TestZeroLevelCompresses(t *testing.T) {
	d := New("", compress.Gzip, Options{})
	_, err := d.InsertTag(d.Tree().Root(), "blocks", make(nbt.ByteArray, 100000))
	require.NoError(t, err)

	out, err := d.Bytes(compress.Gzip)
	require.NoError(t, err)
	assert.Less(t, len(out), 1000, "zero Level must not mean stored")
}

func TestOpenOversizedFileMatchesLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, os.WriteFile(path, steveRaw, 0o644))

	opts := DefaultOptions()
	opts.Limits.MaxInputSize = 8

	_, err := Open(context.Background(), path, opts)
	assert.Equal(t, types.ErrKindMalformedLength, types.KindOf(err))

	_, err = Load(steveRaw, opts)
	assert.Equal(t, types.ErrKindMalformedLength, types.KindOf(err))
}
