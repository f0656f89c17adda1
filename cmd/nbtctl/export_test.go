package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/nbtkit/nbt/compress"
)

func resetExportFlags() {
	exportFormat = "json"
	exportOutput = ""
	exportTyped = false
}

func TestExportJSON(t *testing.T) {
	resetGlobals()
	resetExportFlags()
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runExport([]string{path})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &doc))
	assert.Equal(t, "Steve", doc["name"])
	assert.Equal(t, float64(20), doc["health"])
	assert.Equal(t, []any{float64(1), float64(64), float64(-3)}, doc["Pos"])
}

func TestExportTypedJSONSubtree(t *testing.T) {
	resetGlobals()
	resetExportFlags()
	exportTyped = true
	defer resetExportFlags()
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runExport([]string{path, "Inventory/0/Count"})
	})
	require.NoError(t, err)
	assertJSON(t, output)
	assertContains(t, output, []string{`"type": "Byte"`, `"value": 3`})
}

func TestExportYAMLToFile(t *testing.T) {
	resetGlobals()
	resetExportFlags()
	defer resetExportFlags()
	path := writeTestFile(t, compress.Zlib)
	exportFormat = "yaml"
	exportOutput = filepath.Join(t.TempDir(), "steve.yaml")

	output, err := captureOutput(t, func() error {
		return runExport([]string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Exported (root)"})

	data, err := os.ReadFile(exportOutput)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "Steve", doc["name"])
	assert.Equal(t, 20, doc["health"])
}

func TestExportSNBT(t *testing.T) {
	resetGlobals()
	resetExportFlags()
	exportFormat = "snbt"
	defer resetExportFlags()
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runExport([]string{path, "Inventory"})
	})
	require.NoError(t, err)
	assert.Equal(t, "[{id: \"minecraft:diamond\", Count: 3b}]\n", output)
}

func TestExportBadFormat(t *testing.T) {
	resetGlobals()
	resetExportFlags()
	exportFormat = "csv"
	defer resetExportFlags()
	path := writeTestFile(t, compress.Gzip)

	_, err := captureOutput(t, func() error {
		return runExport([]string{path})
	})
	assert.Error(t, err)
}
