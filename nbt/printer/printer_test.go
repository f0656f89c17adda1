package printer

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/nbtkit/nbt"
	"github.com/joshuapare/nbtkit/nbt/tree"
)

func steveTree(t *testing.T) *tree.Tree {
	t.Helper()
	root := nbt.NewCompound()
	root.Set("name", nbt.String("Steve"))
	root.Set("health", nbt.Int(20))
	pos, err := nbt.NewList(nbt.KindDouble, nbt.Double(1), nbt.Double(64), nbt.Double(-3))
	require.NoError(t, err)
	root.Set("Pos", pos)
	root.Set("bytes", nbt.ByteArray{1, 2, 3})
	return tree.FromTag("", root)
}

func render(t *testing.T, tr *tree.Tree, path string, mutate func(*Options)) string {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	var buf bytes.Buffer
	require.NoError(t, New(tr, &buf, opts).PrintTree(path))
	return buf.String()
}

func TestPrinter_Text(t *testing.T) {
	got := render(t, steveTree(t), "", nil)
	want := `(root) [Compound] (4 entries)
  name [String] = "Steve"
  health [Int] = 20
  Pos [List] (3 items of Double)
    0 [Double] = 1
    1 [Double] = 64
    2 [Double] = -3
  bytes [ByteArray] = [1, 2, 3]
`
	assert.Equal(t, want, got)
}

func TestPrinter_TextLimits(t *testing.T) {
	tr := steveTree(t)

	got := render(t, tr, "", func(o *Options) { o.MaxDepth = 1 })
	assert.Equal(t, "(root) [Compound] (4 entries)\n", got)

	got = render(t, tr, "bytes", func(o *Options) {
		o.MaxArrayItems = 2
		o.ShowTypes = false
	})
	assert.Equal(t, "bytes = [1, 2, ... (3 total)]\n", got)
}

func TestPrinter_JSON(t *testing.T) {
	got := render(t, steveTree(t), "", func(o *Options) {
		o.Format = FormatJSON
		o.ShowTypes = false
	})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "Steve", decoded["name"])
	assert.Equal(t, float64(20), decoded["health"])
	assert.Equal(t, []any{float64(1), float64(64), float64(-3)}, decoded["Pos"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, decoded["bytes"])

	// Compound order is preserved.
	assert.Less(t, strings.Index(got, `"name"`), strings.Index(got, `"health"`))
	assert.Less(t, strings.Index(got, `"health"`), strings.Index(got, `"Pos"`))
}

func TestPrinter_JSONTyped(t *testing.T) {
	got := render(t, steveTree(t), "Pos", func(o *Options) { o.Format = FormatJSON })

	var decoded struct {
		Type  string `json:"type"`
		Elem  string `json:"elem"`
		Value []struct {
			Type  string  `json:"type"`
			Value float64 `json:"value"`
		} `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "List", decoded.Type)
	assert.Equal(t, "Double", decoded.Elem)
	require.Len(t, decoded.Value, 3)
	assert.Equal(t, "Double", decoded.Value[1].Type)
	assert.Equal(t, float64(64), decoded.Value[1].Value)
}

func TestPrinter_JSONNonFinite(t *testing.T) {
	root := nbt.NewCompound()
	root.Set("nan", nbt.Double(math.NaN()))
	root.Set("inf", nbt.Float(float32(math.Inf(-1))))
	got := render(t, tree.FromTag("", root), "", func(o *Options) {
		o.Format = FormatJSON
		o.ShowTypes = false
	})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "NaN", decoded["nan"])
	assert.Equal(t, "-Infinity", decoded["inf"])
}

func TestPrinter_YAML(t *testing.T) {
	tr := steveTree(t)
	id, err := tr.InsertChild(tr.Root(), nbt.KindString, "numeric")
	require.NoError(t, err)
	require.NoError(t, tr.SetValue(id, "42"))

	got := render(t, tr, "", func(o *Options) {
		o.Format = FormatYAML
		o.ShowTypes = false
	})

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "Steve", decoded["name"])
	assert.Equal(t, 20, decoded["health"])
	assert.Equal(t, []any{1.0, 64.0, -3.0}, decoded["Pos"])
	assert.Equal(t, []any{1, 2, 3}, decoded["bytes"])
	assert.Equal(t, "42", decoded["numeric"], "numeric-looking strings stay strings")

	assert.Less(t, strings.Index(got, "name:"), strings.Index(got, "health:"))
	assert.Less(t, strings.Index(got, "bytes:"), strings.Index(got, "numeric:"))
}

func TestPrinter_SNBT(t *testing.T) {
	tr := steveTree(t)
	got := render(t, tr, "", func(o *Options) { o.Format = FormatSNBT })
	assert.Equal(t, `{name: "Steve", health: 20, Pos: [1.0d, 64.0d, -3.0d], bytes: [B; 1b, 2b, 3b]}`+"\n", got)
}

func TestSNBTScalars(t *testing.T) {
	c := nbt.NewCompound()
	c.Set("b", nbt.Byte(-1))
	c.Set("s", nbt.Short(2))
	c.Set("l", nbt.Long(3))
	c.Set("f", nbt.Float(0.5))
	c.Set("ints", nbt.IntArray{})
	c.Set("longs", nbt.LongArray{7})
	c.Set("needs quoting", nbt.String(`say "hi"\`))
	c.Set("", nbt.NewCompound())
	assert.Equal(t,
		`{b: -1b, s: 2s, l: 3L, f: 0.5f, ints: [I;], longs: [L; 7L], "needs quoting": "say \"hi\"\\", "": {}}`,
		SNBT(c))
}

func TestPrinter_PrintValue(t *testing.T) {
	tr := steveTree(t)
	var buf bytes.Buffer
	p := New(tr, &buf, DefaultOptions())

	require.NoError(t, p.PrintValue("name"))
	require.NoError(t, p.PrintValue("Pos/1"))
	assert.Equal(t, "Steve\n64\n", buf.String())

	assert.Error(t, p.PrintValue("missing"))
}

func TestHexDump(t *testing.T) {
	data := append([]byte("ABCDEFGHIJKLMNOP"), 0x00, 'Q', 0x7f)

	var buf bytes.Buffer
	require.NoError(t, HexDump(&buf, data))

	want := "00000000: 41 42 43 44 45 46 47 48 49 4a 4b 4c 4d 4e 4f 50 | ABCDEFGHIJKLMNOP\n" +
		"00000010: 00 51 7f" + strings.Repeat(" ", 47-8) + " | .Q.\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, HexDump(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "yml": FormatYAML, "snbt": FormatSNBT} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("reg")
	assert.Error(t, err)
}
