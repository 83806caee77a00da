package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteovis/proteovis/internal/classify"
)

func samplePoint() classify.Point {
	return classify.Point{
		PrimaryID:  "P04637",
		Label:      "TP53",
		X:          2.5,
		Y:          3.1,
		Comparison: "1",
		Groups:     []string{"P-value <= 0.05;FC > 0.6 (1)"},
		Colors:     []string{"#fd7f6f"},
	}
}

func TestTabWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	require.NoError(t, tw.WriteHeader())
	require.NoError(t, tw.Write(samplePoint()))
	require.NoError(t, tw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#Primary_ID\t"))

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 7)
	assert.Equal(t, "P04637", fields[0])
	assert.Equal(t, "TP53", fields[1])
	assert.Equal(t, "2.5", fields[2])
	assert.Equal(t, "#fd7f6f", fields[6])
}

func TestTabWriter_EmptyFieldsDashed(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	p := samplePoint()
	p.Label = ""
	p.Groups = nil
	p.Colors = nil

	require.NoError(t, tw.Write(p))
	require.NoError(t, tw.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	assert.Equal(t, "-", fields[1])
	assert.Equal(t, "-", fields[5])
	assert.Equal(t, "-", fields[6])
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)

	result := classify.Result{
		Points:   []classify.Point{samplePoint()},
		Bounds:   classify.AxisBounds{MinX: -3, MaxX: 3, MaxY: 5},
		ColorMap: map[string]string{"P-value <= 0.05;FC > 0.6 (1)": "#fd7f6f"},
	}
	require.NoError(t, jw.WriteResult(result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "points")
	assert.Contains(t, decoded, "bounds")
	assert.Contains(t, decoded, "colorMap")
}

func TestJSONWriter_EmptyResultHasPointsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).WriteResult(classify.Result{}))
	assert.Contains(t, buf.String(), `"points": []`)
}
