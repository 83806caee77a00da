package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteovis/proteovis/internal/data"
)

func testForm() data.DifferentialForm {
	return data.DifferentialForm{
		PrimaryIDColumn:   "Protein IDs",
		GeneNamesColumn:   "Gene names",
		FoldChangeColumn:  "logFC",
		SignificantColumn: "negLogP",
	}
}

func fixtureRows() []data.Row {
	mk := func(id, genes string) data.Row {
		return data.NewRow(id, map[string]data.Value{
			"Protein IDs": data.String(id),
			"Gene names":  data.String(genes),
		})
	}
	return []data.Row{
		mk("P04637", "TP53"),
		mk("Q00987;Q00987-2", "MDM2"),
		mk("P38398", "BRCA1;RNF53"),
	}
}

func TestBuild_GeneLookupIsCaseInsensitive(t *testing.T) {
	ix := Build(fixtureRows(), testForm())

	assert.Equal(t, []string{"P04637"}, ix.Exact("tp53"))
	assert.Equal(t, []string{"P04637"}, ix.Exact("TP53"))
}

func TestBuild_SplitsCompositeIDs(t *testing.T) {
	ix := Build(fixtureRows(), testForm())

	// Both the whole composite and each part resolve to the row.
	assert.Equal(t, []string{"Q00987;Q00987-2"}, ix.Exact("Q00987;Q00987-2"))
	assert.Equal(t, []string{"Q00987;Q00987-2"}, ix.Exact("Q00987-2"))
	assert.Equal(t, []string{"Q00987;Q00987-2"}, ix.Lookup(CategoryAccession, "Q00987"))
}

func TestBuild_SplitsGeneNameLists(t *testing.T) {
	ix := Build(fixtureRows(), testForm())

	assert.Equal(t, []string{"P38398"}, ix.Exact("BRCA1"))
	assert.Equal(t, []string{"P38398"}, ix.Exact("RNF53"))
}

func TestBuild_MissingKeyYieldsEmpty(t *testing.T) {
	ix := Build(fixtureRows(), testForm())
	assert.Empty(t, ix.Exact("NOSUCHGENE"))
}

func TestBuild_IdempotentRebuild(t *testing.T) {
	rows := fixtureRows()
	first := Build(rows, testForm())
	second := Build(rows, testForm())

	for _, cat := range Categories {
		require.Equal(t, first.Keys(cat), second.Keys(cat))
		for _, key := range first.Keys(cat) {
			assert.Equal(t, first.Lookup(cat, key), second.Lookup(cat, key), "key %s", key)
		}
	}
}

func TestBuild_SharedGeneAcrossRows(t *testing.T) {
	mk := func(id string) data.Row {
		return data.NewRow(id, map[string]data.Value{
			"Protein IDs": data.String(id),
			"Gene names":  data.String("SHARED"),
		})
	}
	ix := Build([]data.Row{mk("P1"), mk("P2"), mk("P3")}, testForm())

	assert.Equal(t, []string{"P1", "P2", "P3"}, ix.Exact("SHARED"))
}

func TestBuild_EmptyRows(t *testing.T) {
	ix := Build(nil, testForm())
	assert.Empty(t, ix.Exact("ANYTHING"))
	assert.Empty(t, ix.Keys(CategoryGene))
}

func TestExtractAccession(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"P04637", "P04637"},
		{"P04637-2", "P04637"},
		{"Q00987", "Q00987"},
		{"A0A024R1R8", "A0A024R1R8"},
		{"CON__P04637", ""},
		{"not-an-accession", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractAccession(tt.in), "input %q", tt.in)
	}
}

func TestBuildWithWorkers_UnevenShards(t *testing.T) {
	// Ceil-division partitioning must stay in bounds when the row
	// count does not divide evenly across workers, including when a
	// trailing worker gets an empty range (e.g. 5 rows, 4 workers).
	mk := func(i int) data.Row {
		id := fmt.Sprintf("P%05d", i)
		return data.NewRow(id, map[string]data.Value{
			"Protein IDs": data.String(id),
			"Gene names":  data.String(fmt.Sprintf("GENE%d", i)),
		})
	}

	for _, n := range []int{1, 2, 3, 5, 7, 9, 16} {
		rows := make([]data.Row, 0, n)
		for i := range n {
			rows = append(rows, mk(i))
		}
		want := buildWithWorkers(rows, testForm(), 1)

		for _, workers := range []int{2, 3, 4, 8} {
			ix := buildWithWorkers(rows, testForm(), workers)
			for _, cat := range Categories {
				assert.Equal(t, want.Keys(cat), ix.Keys(cat),
					"%d rows, %d workers, category %s", n, workers, cat)
			}
			for i := range n {
				id := fmt.Sprintf("P%05d", i)
				assert.Equal(t, []string{id}, ix.Exact(id),
					"%d rows, %d workers, id %s", n, workers, id)
			}
		}
	}
}
