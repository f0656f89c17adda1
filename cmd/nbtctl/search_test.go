package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt/compress"
)

func TestSearchCommand(t *testing.T) {
	path := writeTestFile(t, compress.Gzip)

	tests := []struct {
		name           string
		query          string
		mode           string
		caseSensitive  bool
		limit          int
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "value match",
			query:       "diamond",
			wantContain: []string{"Inventory/0/id [String] = minecraft:diamond", "1 match(es)"},
		},
		{
			name:           "names only",
			query:          "count",
			mode:           "names",
			wantContain:    []string{"Inventory/0/Count [Byte]\n"},
			wantNotContain: []string{"minecraft"},
		},
		{
			name:          "case sensitive miss",
			query:         "STEVE",
			mode:          "values",
			caseSensitive: true,
			wantContain:   []string{"0 match(es)"},
		},
		{
			name:        "case folded hit",
			query:       "STEVE",
			mode:        "values",
			wantContain: []string{"name [String] = Steve"},
		},
		{
			name:        "limit",
			query:       "a",
			limit:       2,
			wantContain: []string{"2 match(es)"},
		},
		{
			name:    "bad mode",
			query:   "x",
			mode:    "everything",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			searchMode = tt.mode
			searchCaseSensitive = tt.caseSensitive
			searchLimit = tt.limit

			output, err := captureOutput(t, func() error {
				return runSearch([]string{path, tt.query})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestSearchCommandTree(t *testing.T) {
	resetGlobals()
	searchMode, searchCaseSensitive, searchLimit = "", false, 0
	searchTree = true
	defer func() { searchTree = false }()
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runSearch([]string{path, "diamond"})
	})
	require.NoError(t, err)
	assert.Equal(t, "(root) [Compound]\n  Inventory [List]\n    0 [Compound]\n      id [String] = minecraft:diamond\n", output)
}

func TestSearchCommandJSON(t *testing.T) {
	resetGlobals()
	jsonOut = true
	defer resetGlobals()
	searchMode, searchCaseSensitive, searchLimit = "names", false, 0
	path := writeTestFile(t, compress.Gzip)

	output, err := captureOutput(t, func() error {
		return runSearch([]string{path, "pos"})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var got struct {
		Mode    string         `json:"mode"`
		Matches []searchResult `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "names", got.Mode)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Pos", got.Matches[0].Path)
	assert.True(t, got.Matches[0].InName)
}
