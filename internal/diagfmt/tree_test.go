package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climb/internal/parser"
)

func TestBuildTree(t *testing.T) {
	tree, err := parser.ParseBytes([]byte("1 + x * 3"))
	require.NoError(t, err)

	root := BuildTree(tree, tree.Root)
	require.NotNil(t, root)
	assert.Equal(t, "add", root.Op)
	require.Len(t, root.Children, 2)
	assert.Equal(t, int32(1), *root.Children[0].Value)
	mul := root.Children[1]
	assert.Equal(t, "mul", mul.Op)
	assert.Equal(t, "x", mul.Children[0].Name)
}

func TestFormatTreeJSON(t *testing.T) {
	tree, err := parser.ParseBytes([]byte("-2^2"))
	require.NoError(t, err)
	result := int32(-4)

	var buf bytes.Buffer
	require.NoError(t, FormatTreeJSON(&buf, "x.calc", tree, &result))
	var out TreeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, tree.String(), out.SExpr)
	assert.Equal(t, tree.Len(), out.Nodes)
	assert.Equal(t, tree.Depth(), out.Depth)
	require.NotNil(t, out.Result)
	assert.Equal(t, int32(-4), *out.Result)
}

func TestFormatTreePretty(t *testing.T) {
	tree, err := parser.ParseBytes([]byte("1 + 2 * 3"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, FormatTreePretty(&buf, tree, nil))
	want := "add\n├─ 1\n└─ mul\n   ├─ 2\n   └─ 3\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatTreeDump(t *testing.T) {
	tree, err := parser.ParseBytes([]byte("4!"))
	require.NoError(t, err)
	var buf bytes.Buffer
	FormatTreeDump(&buf, tree)
	out := buf.String()
	assert.Contains(t, out, `Op: (string) (len=3) "fac"`)
	assert.NotContains(t, out, "0x")
}
