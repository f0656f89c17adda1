package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

func playerTree(t *testing.T) *tree.Tree {
	t.Helper()
	root := nbt.NewCompound()
	root.Set("Name", nbt.String("Steve"))
	root.Set("Health", nbt.Int(20))
	item := nbt.NewCompound()
	item.Set("id", nbt.String("minecraft:STONE"))
	item.Set("Count", nbt.Byte(20))
	inv, err := nbt.NewList(nbt.KindCompound, item)
	require.NoError(t, err)
	root.Set("Inventory", inv)
	root.Set("Straße", nbt.String("name tag"))
	return tree.FromTag("", root)
}

func paths(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Path
	}
	return out
}

func TestFindModes(t *testing.T) {
	tr := playerTree(t)
	tests := []struct {
		name  string
		query string
		opts  Options
		want  []string
	}{
		{"names only", "name", Options{Mode: ModeNames}, []string{"Name"}},
		{"values only", "name", Options{Mode: ModeValues}, []string{"Straße"}},
		{"both", "name", Options{}, []string{"Name", "Straße"}},
		{"numbers match formatted values", "20", Options{Mode: ModeValues}, []string{"Health", "Inventory/0/Count"}},
		{"case folded", "stone", Options{}, []string{"Inventory/0/id"}},
		{"case sensitive", "stone", Options{CaseSensitive: true}, nil},
		{"unicode folding", "STRASSE", Options{Mode: ModeNames}, []string{"Straße"}},
		{"list indices are names", "0", Options{Mode: ModeNames}, []string{"Inventory/0"}},
		{"limit", "20", Options{Limit: 1}, []string{"Health"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(tr, tt.query, tt.opts)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, paths(got))
		})
	}
}

func TestFindReportsWhereItMatched(t *testing.T) {
	tr := playerTree(t)
	got, err := Find(tr, "count", Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].InName)
	assert.False(t, got[0].InValue)
	assert.Equal(t, nbt.KindByte, got[0].Kind)
	assert.Equal(t, "20", got[0].Value)
}

func TestFindEmptyQuery(t *testing.T) {
	got, err := Find(playerTree(t), "", Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterKeepsAncestors(t *testing.T) {
	tr := playerTree(t)
	keep, err := Filter(tr, "stone", Options{Limit: 1})
	require.NoError(t, err)

	for _, p := range []string{"", "Inventory", "Inventory/0", "Inventory/0/id"} {
		id, err := tr.Find(p)
		require.NoError(t, err)
		assert.True(t, keep[id], p)
	}
	id, err := tr.Find("Health")
	require.NoError(t, err)
	assert.False(t, keep[id])
	assert.Len(t, keep, 4)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Names")
	require.NoError(t, err)
	assert.Equal(t, ModeNames, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, m)
	_, err = ParseMode("regex")
	assert.Error(t, err)
}
