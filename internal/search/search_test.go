package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteovis/proteovis/internal/data"
	"github.com/proteovis/proteovis/internal/index"
)

func buildFixture() *index.Index {
	form := data.DifferentialForm{
		PrimaryIDColumn:   "Protein IDs",
		GeneNamesColumn:   "Gene names",
		FoldChangeColumn:  "logFC",
		SignificantColumn: "negLogP",
	}
	mk := func(id, genes string) data.Row {
		return data.NewRow(id, map[string]data.Value{
			"Protein IDs": data.String(id),
			"Gene names":  data.String(genes),
		})
	}
	rows := []data.Row{
		mk("P04637", "TP53"),
		mk("Q00987", "MDM2"),
		mk("P38398", "BRCA1"),
		mk("P51587", "BRCA2"),
	}
	return index.Build(rows, form)
}

func TestTypeahead_ExactBeforePartial(t *testing.T) {
	ix := buildFixture()

	got := Typeahead(ix, "brca1", 10)
	require.NotEmpty(t, got)
	assert.Equal(t, "BRCA1", got[0].Key)
	assert.Equal(t, MatchExact, got[0].Match)
	assert.Equal(t, []string{"P38398"}, got[0].IDs)
}

func TestTypeahead_PartialMatches(t *testing.T) {
	ix := buildFixture()

	got := Typeahead(ix, "BRCA", 10)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, MatchPartial, s.Match)
	}
}

func TestTypeahead_RespectsLimit(t *testing.T) {
	ix := buildFixture()
	assert.Len(t, Typeahead(ix, "BRCA", 1), 1)
}

func TestTypeahead_ShortQueryReturnsNothing(t *testing.T) {
	ix := buildFixture()
	assert.Empty(t, Typeahead(ix, "B", 10))
	assert.Empty(t, Typeahead(ix, "", 10))
}

func TestBatch_WholeLineExactFirst(t *testing.T) {
	// A row whose primary ID is itself the composite "TP53;MDM2" shape.
	form := data.DifferentialForm{
		PrimaryIDColumn:   "Protein IDs",
		GeneNamesColumn:   "Gene names",
		FoldChangeColumn:  "logFC",
		SignificantColumn: "negLogP",
	}
	rows := []data.Row{
		data.NewRow("COMPOSITE;ID", map[string]data.Value{
			"Protein IDs": data.String("COMPOSITE;ID"),
		}),
	}
	ix := index.Build(rows, form)

	got := Batch(ix, "COMPOSITE;ID")
	assert.Equal(t, []string{"COMPOSITE;ID"}, got)
}

func TestBatch_FallsBackToTerms(t *testing.T) {
	ix := buildFixture()

	// "TP53;MDM2" is not an index entry, but its parts are: the
	// result is the union of both.
	got := Batch(ix, "TP53;MDM2")
	assert.Equal(t, []string{"P04637", "Q00987"}, got)
}

func TestBatch_MultipleLines(t *testing.T) {
	ix := buildFixture()

	got := Batch(ix, "TP53\nBRCA1\n\nbrca2\n")
	assert.Equal(t, []string{"P04637", "P38398", "P51587"}, got)
}

func TestBatch_UnknownTermsDropped(t *testing.T) {
	ix := buildFixture()
	assert.Empty(t, Batch(ix, "NOSUCH;NEITHER"))
}

func TestRegex_MatchesAnywhere(t *testing.T) {
	ix := buildFixture()

	got := Regex(ix, "BRCA[0-9]")
	assert.Equal(t, []string{"P38398", "P51587"}, got)
}

func TestRegex_CaseInsensitive(t *testing.T) {
	ix := buildFixture()
	assert.Equal(t, []string{"P04637"}, Regex(ix, "tp53"))
}

func TestRegex_InvalidPatternYieldsEmpty(t *testing.T) {
	ix := buildFixture()
	assert.Empty(t, Regex(ix, "[unclosed"))
}

func TestSearch_ModeDispatch(t *testing.T) {
	ix := buildFixture()

	assert.Equal(t, []string{"P04637"}, Search(ix, "TP53", ModeExact))
	assert.Equal(t, []string{"P04637", "Q00987"}, Search(ix, "TP53;MDM2", ModeBatch))
	assert.Equal(t, []string{"P38398", "P51587"}, Search(ix, "^BRCA", ModeRegex))
}
