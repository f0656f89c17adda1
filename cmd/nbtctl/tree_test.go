package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt/compress"
)

func TestTreeCommand(t *testing.T) {
	path := writeTestFile(t, compress.Gzip)

	tests := []struct {
		name           string
		args           []string
		depth          int
		format         string
		noTypes        bool
		json           bool
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name: "whole document",
			args: []string{path},
			wantContain: []string{
				"(root) [Compound] (5 entries)",
				`  name [String] = "Steve"`,
				"  health [Int] = 20",
				"  Pos [List] (3 items of Double)",
				"    1 [Double] = 64",
				`      id [String] = "minecraft:diamond"`,
				"  data [ByteArray] = [1, 2, 3]",
			},
		},
		{
			name:           "depth limit",
			args:           []string{path},
			depth:          2,
			wantContain:    []string{"Inventory [List] (1 item of Compound)"},
			wantNotContain: []string{"minecraft:diamond"},
		},
		{
			name:           "subtree without types",
			args:           []string{path, "Inventory/0"},
			noTypes:        true,
			wantContain:    []string{"Count = 3"},
			wantNotContain: []string{"[Byte]", "Steve"},
		},
		{
			name:        "snbt",
			args:        []string{path, "Pos"},
			format:      "snbt",
			wantContain: []string{"[1.0d, 64.0d, -3.0d]"},
		},
		{
			name:        "json flag",
			args:        []string{path},
			json:        true,
			wantContain: []string{`"Steve"`},
		},
		{
			name:    "missing path",
			args:    []string{path, "Nope"},
			wantErr: true,
		},
		{
			name:    "bad format",
			args:    []string{path},
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			jsonOut = tt.json
			defer resetGlobals()
			treeDepth = tt.depth
			treeNoTypes = tt.noTypes
			treeFormat = tt.format
			if treeFormat == "" {
				treeFormat = "text"
			}
			treeMaxItems = 16
			treeCompact = false

			output, err := captureOutput(t, func() error {
				return runTree(tt.args)
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestGetCommand(t *testing.T) {
	path := writeTestFile(t, compress.Zlib)

	tests := []struct {
		name        string
		path        string
		showType    bool
		json        bool
		wantErr     bool
		wantContain []string
	}{
		{name: "int", path: "health", wantContain: []string{"20\n"}},
		{name: "string is unquoted", path: "name", wantContain: []string{"Steve\n"}},
		{name: "list element", path: "Pos/2", wantContain: []string{"-3\n"}},
		{name: "with type", path: "health", showType: true, wantContain: []string{"health [Int] = 20"}},
		{name: "container", path: "Inventory/0", wantContain: []string{"minecraft:diamond"}},
		{name: "json", path: "Pos", json: true, wantContain: []string{`"Double"`}},
		{name: "missing key", path: "mana", wantErr: true},
		{name: "index out of range", path: "Pos/3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			jsonOut = tt.json
			defer resetGlobals()
			getShowType = tt.showType

			output, err := captureOutput(t, func() error {
				return runGet([]string{path, tt.path})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}
