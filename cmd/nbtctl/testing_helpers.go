package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/compress"
	"github.com/joshuapare/nbtkit/nbt/region"
)

// resetGlobals restores global flags between test cases
func resetGlobals() {
	verbose = false
	quiet = false
	jsonOut = false
	color.NoColor = true
}

// steveRoot builds a small player document:
//
//	name: "Steve", health: 20, Pos: [1d, 64d, -3d],
//	Inventory: [{id: "minecraft:diamond", Count: 3b}], data: [B; 1, 2, 3]
func steveRoot(t *testing.T) *nbt.Compound {
	t.Helper()
	root := nbt.NewCompound()
	root.Set("name", nbt.String("Steve"))
	root.Set("health", nbt.Int(20))
	pos, err := nbt.NewList(nbt.KindDouble, nbt.Double(1), nbt.Double(64), nbt.Double(-3))
	if err != nil {
		t.Fatalf("build Pos: %v", err)
	}
	root.Set("Pos", pos)
	item := nbt.NewCompound()
	item.Set("id", nbt.String("minecraft:diamond"))
	item.Set("Count", nbt.Byte(3))
	inv, err := nbt.NewList(nbt.KindCompound, item)
	if err != nil {
		t.Fatalf("build Inventory: %v", err)
	}
	root.Set("Inventory", inv)
	root.Set("data", nbt.ByteArray{1, 2, 3})
	return root
}

// writeTestFile writes the steve document with scheme into a temp dir and
// returns its path
func writeTestFile(t *testing.T, scheme compress.Scheme) string {
	t.Helper()
	raw, err := nbt.Marshal("", steveRoot(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	data, err := compress.Compress(raw, scheme, compress.DefaultLevel)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	path := filepath.Join(t.TempDir(), "steve.dat")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// writeTestRegion writes a region file holding one small chunk per coordinate
func writeTestRegion(t *testing.T, coords ...[2]int) string {
	t.Helper()
	w := region.NewWriter(compress.Zlib)
	for _, c := range coords {
		level := nbt.NewCompound()
		level.Set("xPos", nbt.Int(int32(c[0])))
		level.Set("zPos", nbt.Int(int32(c[1])))
		level.Set("Status", nbt.String("minecraft:full"))
		if err := w.Put(c[0], c[1], "", level, time.Unix(1700000000, 0)); err != nil {
			t.Fatalf("put chunk: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "r.0.0.mca")
	if err := w.WriteFile(t.Context(), path, false); err != nil {
		t.Fatalf("write region: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot fill the pipe
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
