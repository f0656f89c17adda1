package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/pkg/types"
)

func TestValidateCommand(t *testing.T) {
	resetGlobals()
	validateLimits = "default"
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runValidate([]string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Compression: gzip", "Canonical encoding", "VALID"})
}

func TestValidateCommandCorrupt(t *testing.T) {
	resetGlobals()
	jsonOut = true
	defer resetGlobals()
	validateLimits = "strict"

	// Compound root whose only entry has tag id 13.
	path := filepath.Join(t.TempDir(), "bad.nbt")
	require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x00, 0x00, 0x0d, 0x00, 0x00}, 0o644))

	output, err := captureOutput(t, func() error {
		return runValidate([]string{path})
	})
	assert.ErrorIs(t, err, types.ErrCorrupt)
	assertJSON(t, output)

	var got validateResult
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.False(t, got.Valid)
	assert.Equal(t, "corrupt", got.ErrorKind)
	assert.Equal(t, "none", got.Compression)
}

func TestValidateCommandTruncated(t *testing.T) {
	resetGlobals()
	validateLimits = "default"
	path := filepath.Join(t.TempDir(), "short.nbt")
	require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x00, 0x00, 0x03, 0x00, 0x01, 'x', 0x00}, 0o644))

	output, err := captureOutput(t, func() error {
		return runValidate([]string{path})
	})
	assert.ErrorIs(t, err, types.ErrTruncated)
	assertContains(t, output, []string{"truncated", "INVALID"})
}

func TestValidateCommandBadPreset(t *testing.T) {
	resetGlobals()
	validateLimits = "huge"
	defer func() { validateLimits = "default" }()
	_, err := captureOutput(t, func() error {
		return runValidate([]string{"whatever.dat"})
	})
	assert.ErrorContains(t, err, "unknown limits preset")
}
