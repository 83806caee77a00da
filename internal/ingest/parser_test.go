package ingest

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteovis/proteovis/internal/data"
)

const sampleTSV = "Protein IDs\tGene names\tlogFC\tnegLogP\n" +
	"P04637\tTP53\t2.5\t3.1\n" +
	"Q00987\tMDM2\t-1.2\t0.4\n"

func TestParser_TabDelimited(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader(sampleTSV), "Protein IDs")
	require.NoError(t, err)

	rows, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "P04637", rows[0].PrimaryID)
	assert.Equal(t, "TP53", rows[0].Str("Gene names"))
	fc, ok := rows[0].Float("logFC")
	require.True(t, ok)
	assert.Equal(t, 2.5, fc)
}

func TestParser_CommaDelimited(t *testing.T) {
	csv := "id,gene,fc\nP1,TP53,1.5\n"
	p, err := NewParserFromReader(strings.NewReader(csv), "id")
	require.NoError(t, err)

	rows, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P1", rows[0].PrimaryID)
}

func TestParser_SkipsRowsWithoutID(t *testing.T) {
	tsv := "id\tfc\n\t1.0\nP1\t2.0\n"
	p, err := NewParserFromReader(strings.NewReader(tsv), "id")
	require.NoError(t, err)

	rows, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P1", rows[0].PrimaryID)
}

func TestParser_MissingIDColumnIsError(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader(sampleTSV), "No Such Column")
	assert.Error(t, err)
}

func TestParser_TypedCells(t *testing.T) {
	tsv := "id\tnum\tflag\ttext\tempty\nP1\t-3.5\ttrue\thello\t\n"
	p, err := NewParserFromReader(strings.NewReader(tsv), "id")
	require.NoError(t, err)

	rows, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, data.KindNumber, row.Get("num").Kind())
	assert.Equal(t, data.KindBool, row.Get("flag").Kind())
	assert.Equal(t, data.KindString, row.Get("text").Kind())
	assert.True(t, row.Get("empty").IsNull())
}

func TestParser_GzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sampleTSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path, "Protein IDs")
	require.NoError(t, err)
	defer p.Close()

	rows, err := p.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParser_NoTrailingNewline(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader("id\tfc\nP1\t1.0"), "id")
	require.NoError(t, err)

	rows, err := p.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "P1", rows[0].PrimaryID)
}
