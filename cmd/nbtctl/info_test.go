package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt/compress"
)

func TestInfoCommand(t *testing.T) {
	resetGlobals()
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"Compression: gzip",
		"Tags:        12",
		"Max depth:   3",
		"Double     3",
		"Compound   2",
	})
	assertNotContains(t, output, []string{"LongArray"})
}

func TestInfoCommandJSON(t *testing.T) {
	resetGlobals()
	jsonOut = true
	defer resetGlobals()
	path := writeTestFile(t, compress.None)

	output, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var info fileInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, "none", info.Compression)
	assert.Equal(t, 12, info.Tags)
	assert.Equal(t, 3, info.MaxDepth)
	assert.Equal(t, 1, info.Kinds["ByteArray"])
}

func TestInfoCommandMissingFile(t *testing.T) {
	resetGlobals()
	_, err := captureOutput(t, func() error {
		return runInfo([]string{"does-not-exist.dat"})
	})
	assert.Error(t, err)
}
