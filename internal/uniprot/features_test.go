package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proteovis/proteovis/internal/data"
)

func TestParseFlattenedFeatures(t *testing.T) {
	s := `MOD_RES 45; /note="Phosphoserine"; MOD_RES 102; /note="N6-acetyllysine"`

	got := ParseFlattenedFeatures(s)

	require.Len(t, got, 2)
	assert.Equal(t, Feature{Position: 45, ModType: "Phosphoserine"}, got[0])
	assert.Equal(t, Feature{Position: 102, ModType: "N6-acetyllysine"}, got[1])
}

func TestParseFlattenedFeatures_NoteWithoutPositionDropped(t *testing.T) {
	got := ParseFlattenedFeatures(`/note="Orphan note"; MOD_RES 7; /note="Phosphothreonine"`)

	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Position)
	assert.Equal(t, "Phosphothreonine", got[0].ModType)
}

func TestParseFlattenedFeatures_Malformed(t *testing.T) {
	assert.Empty(t, ParseFlattenedFeatures(""))
	assert.Empty(t, ParseFlattenedFeatures("MOD_RES"))
	assert.Empty(t, ParseFlattenedFeatures("garbage; more garbage"))
}

func TestParseStructuredFeatures_PositionEncodings(t *testing.T) {
	items := []data.Value{
		data.Object(map[string]data.Value{
			"position": data.Number(45),
			"modType":  data.String("Phosphoserine"),
			"residue":  data.String("S"),
		}),
		data.Object(map[string]data.Value{
			"position": data.Number(102.0),
			"modType":  data.String("N6-acetyllysine"),
		}),
		data.Object(map[string]data.Value{
			"position": data.String("7"),
			"modType":  data.String("Phosphothreonine"),
		}),
	}

	got := ParseStructuredFeatures(items)

	require.Len(t, got, 3)
	assert.Equal(t, Feature{Position: 45, ModType: "Phosphoserine", Residue: "S"}, got[0])
	assert.Equal(t, 102, got[1].Position)
	assert.Equal(t, 7, got[2].Position)
}

func TestParseStructuredFeatures_NestedLocation(t *testing.T) {
	items := []data.Value{
		data.Object(map[string]data.Value{
			"location": data.Object(map[string]data.Value{
				"start": data.Object(map[string]data.Value{"value": data.Number(12)}),
			}),
			"description": data.String("Phosphoserine"),
		}),
	}

	got := ParseStructuredFeatures(items)

	require.Len(t, got, 1)
	assert.Equal(t, Feature{Position: 12, ModType: "Phosphoserine"}, got[0])
}

func TestParseStructuredFeatures_MissingPositionDropped(t *testing.T) {
	items := []data.Value{
		data.Object(map[string]data.Value{"modType": data.String("Phosphoserine")}),
		data.Object(map[string]data.Value{"position": data.String("not a number")}),
	}
	assert.Empty(t, ParseStructuredFeatures(items))
}

func TestParseFeatures_DispatchesOnShape(t *testing.T) {
	flattened := data.String(`MOD_RES 45; /note="Phosphoserine"`)
	structured := data.Array(data.Object(map[string]data.Value{
		"position": data.Number(45),
		"modType":  data.String("Phosphoserine"),
	}))

	// Both encodings produce the same output shape.
	f := ParseFeatures(flattened)
	s := ParseFeatures(structured)
	require.Len(t, f, 1)
	require.Len(t, s, 1)
	assert.Equal(t, f[0].Position, s[0].Position)
	assert.Equal(t, f[0].ModType, s[0].ModType)

	// Shapes that are neither encoding yield empty.
	assert.Empty(t, ParseFeatures(data.Number(5)))
	assert.Empty(t, ParseFeatures(data.Null))
}
