package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	fs, bag := parseInto(t, "2 * (1 + 3")
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})

	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "SYN2006", d.Code)
	assert.Equal(t, "parse error", d.Kind)
	assert.Equal(t, uint32(10), d.Location.StartByte)
	assert.Equal(t, uint32(11), d.Location.StartCol)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, uint32(4), d.Notes[0].Location.StartByte)
}

func TestJSONWithoutPositions(t *testing.T) {
	fs, bag := parseInto(t, "1 $")
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{}))

	var decoded DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, 1, decoded.Count)
	assert.Equal(t, "LEX1001", decoded.Diagnostics[0].Code)
	assert.Zero(t, decoded.Diagnostics[0].Location.StartLine)
	assert.Empty(t, decoded.Diagnostics[0].Notes)
}

func TestJSONNilBagIsEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, nil, nil, JSONOpts{}))
	assert.JSONEq(t, `{"diagnostics":[],"count":0}`, buf.String())
}
