package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/cmd/nbtctl/logger"
	"github.com/joshuapare/nbtkit/nbt/compress"
)

func TestVersionCommand(t *testing.T) {
	resetGlobals()
	rootCmd.SetArgs([]string{"version"})
	output, err := captureOutput(t, func() error { return rootCmd.Execute() })
	require.NoError(t, err)
	assertContains(t, output, []string{"nbtctl dev", "commit: none"})
}

func TestDebugLogging(t *testing.T) {
	resetGlobals()
	path := writeTestFile(t, compress.Gzip)
	dir := t.TempDir()
	t.Cleanup(func() {
		debug, logDir = false, ""
		logger.Init(logger.Options{})
	})

	rootCmd.SetArgs([]string{"--debug", "--log-dir", dir, "--quiet", "info", path})
	output, err := captureOutput(t, func() error { return rootCmd.Execute() })
	require.NoError(t, err)
	assert.Empty(t, output)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"document opened"`), string(data))
	assert.Contains(t, string(data), `"msg":"command started"`)
}
