package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt/compress"
)

func TestHexdumpCommand(t *testing.T) {
	resetGlobals()
	path := writeTestFile(t, compress.Gzip)

	tests := []struct {
		name      string
		args      []string
		wantFirst string
		wantErr   bool
	}{
		{
			name:      "whole file is decompressed",
			args:      []string{path},
			wantFirst: "00000000: 0a 00 00 08 00 04 6e 61 6d 65 00 05 53 74 65 76 | ......name..Stev",
		},
		{
			name:      "array elements",
			args:      []string{path, "data"},
			wantFirst: "00000000: 01 02 03" + strings.Repeat(" ", 39) + " | ...",
		},
		{
			name:      "leaf as named tag",
			args:      []string{path, "health"},
			wantFirst: "00000000: 03 00 06 68 65 61 6c 74 68 00 00 00 14" + strings.Repeat(" ", 9) + " | ...health....",
		},
		{
			name:    "missing path",
			args:    []string{path, "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := captureOutput(t, func() error {
				return runHexdump(tt.args)
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			first, _, _ := strings.Cut(output, "\n")
			assert.Equal(t, tt.wantFirst, first)
		})
	}
}
