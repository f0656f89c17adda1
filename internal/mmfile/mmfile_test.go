package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/pkg/types"
)

func TestOpenReadsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	m, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, want, m.Bytes())
	assert.Equal(t, len(want), m.Len())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "second close is a no-op")
	assert.Nil(t, m.Bytes())
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dat")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path, 0)
	require.NoError(t, err)
	assert.Empty(t, m.Bytes())
	assert.False(t, m.Mapped())
	require.NoError(t, m.Close())
}

func TestOpenRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.dat")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	_, err := Open(path, 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 99")
	assert.ErrorIs(t, err, types.ErrMalformedLength)
	assert.Equal(t, types.ErrKindMalformedLength, types.KindOf(err))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
