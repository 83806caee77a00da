package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPTMs_BracketNotation(t *testing.T) {
	// Peptide starts at protein position 10; S at cleaned position 4.
	got := ExtractPTMs("PEPS[Phospho (STY)]TIDE", 10)

	require.Len(t, got, 1)
	assert.Equal(t, PTMPosition{
		PeptidePosition: 4,
		ProteinPosition: 13,
		Residue:         "S",
		Name:            "Phospho (STY)",
	}, got[0])
}

func TestExtractPTMs_ParenNotation(t *testing.T) {
	got := ExtractPTMs("PEPS(ph)TIDE", 1)

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].PeptidePosition)
	assert.Equal(t, 4, got[0].ProteinPosition)
	assert.Equal(t, "ph", got[0].Name)
}

func TestExtractPTMs_MultipleSites(t *testing.T) {
	got := ExtractPTMs("M(ox)PES(ph)TK(ac)R", 5)

	require.Len(t, got, 3)
	assert.Equal(t, PTMPosition{PeptidePosition: 1, ProteinPosition: 5, Residue: "M", Name: "ox"}, got[0])
	assert.Equal(t, PTMPosition{PeptidePosition: 4, ProteinPosition: 8, Residue: "S", Name: "ph"}, got[1])
	assert.Equal(t, PTMPosition{PeptidePosition: 6, ProteinPosition: 10, Residue: "K", Name: "ac"}, got[2])
}

func TestExtractPTMs_NTerminalAnnotationDropped(t *testing.T) {
	// No residue precedes the annotation; nothing to attribute it to.
	got := ExtractPTMs("(ac)MPEPTIDE", 1)
	assert.Empty(t, got)
}

func TestExtractPTMs_LowercaseResidueUppercased(t *testing.T) {
	got := ExtractPTMs("peps(ph)tide", 1)

	require.Len(t, got, 1)
	assert.Equal(t, "S", got[0].Residue)
}

func TestExtractPTMs_UnterminatedBracket(t *testing.T) {
	got := ExtractPTMs("PEPS[Phospho", 1)
	assert.Empty(t, got)
}

func TestExtractPTMs_NoModifications(t *testing.T) {
	assert.Empty(t, ExtractPTMs("PEPTIDE", 1))
	assert.Empty(t, ExtractPTMs("", 1))
}
