package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteovis/proteovis/internal/data"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RowRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rows := []data.Row{
		data.NewRow("P04637", map[string]data.Value{
			"Gene names": data.String("TP53"),
			"logFC":      data.Number(2.5),
			"valid":      data.Bool(true),
		}),
		data.NewRow("Q00987", map[string]data.Value{
			"Gene names": data.String("MDM2"),
			"logFC":      data.Number(-1.2),
		}),
	}

	require.NoError(t, s.ReplaceRows("ds1", rows))

	got, err := s.FetchRows("ds1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "P04637", got[0].PrimaryID)
	assert.Equal(t, "TP53", got[0].Str("Gene names"))
	fc, ok := got[0].Float("logFC")
	require.True(t, ok)
	assert.Equal(t, 2.5, fc)
	assert.True(t, got[0].Get("valid").TruthyBool())
}

func TestStore_ReingestionReplacesRows(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.ReplaceRows("ds1", []data.Row{
		data.NewRow("OLD", nil),
	}))
	require.NoError(t, s.ReplaceRows("ds1", []data.Row{
		data.NewRow("NEW1", nil),
		data.NewRow("NEW2", nil),
	}))

	count, err := s.RowCount("ds1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := s.FetchRows("ds1")
	require.NoError(t, err)
	for _, row := range got {
		assert.NotEqual(t, "OLD", row.PrimaryID)
	}
}

func TestStore_DatasetsAreIsolated(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.ReplaceRows("ds1", []data.Row{data.NewRow("A", nil)}))
	require.NoError(t, s.ReplaceRows("ds2", []data.Row{data.NewRow("B", nil)}))

	got, err := s.FetchRows("ds1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].PrimaryID)
}

func TestStore_UnknownDatasetYieldsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.FetchRows("nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	settings := data.NewSettings()
	settings.PCutoff = 0.01
	settings.ColorMap["My Hits"] = "#123456"
	settings.ConditionOrder = []string{"A", "B"}
	settings.SampleMap["A.1"] = data.SampleInfo{Condition: "A", Replicate: "1"}

	require.NoError(t, s.SaveSettings("ds1", settings))

	got, err := s.LoadSettings("ds1")
	require.NoError(t, err)
	assert.Equal(t, 0.01, got.PCutoff)
	assert.Equal(t, "#123456", got.ColorMap["My Hits"])
	assert.Equal(t, []string{"A", "B"}, got.ConditionOrder)
	assert.Equal(t, "A", got.SampleMap["A.1"].Condition)
}

func TestStore_LoadSettingsDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LoadSettings("fresh")
	require.NoError(t, err)
	assert.Equal(t, 0.05, got.PCutoff)
	assert.Equal(t, 0.6, got.Log2FCCutoff)
}

func TestStore_SelectionsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	selections := data.SelectionMap{}
	selections.Add("P04637", "My Hits")
	selections.Add("P04637", "Kinases")
	selections.Add("Q00987", "My Hits")

	require.NoError(t, s.SaveSelections("ds1", selections))

	got, err := s.LoadSelections("ds1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kinases", "My Hits"}, got.GroupsFor("P04637"))
	assert.Equal(t, []string{"My Hits"}, got.GroupsFor("Q00987"))
}
