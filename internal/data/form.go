package data

// DifferentialForm names the columns of a differential dataset and
// the transforms to apply when reading them.
type DifferentialForm struct {
	PrimaryIDColumn   string `json:"primaryIDs"`
	GeneNamesColumn   string `json:"geneNames"`
	FoldChangeColumn  string `json:"foldChange"`
	SignificantColumn string `json:"significant"`
	ComparisonColumn  string `json:"comparison"`
	TransformFC       bool   `json:"transformFC"`          // apply log2 to fold change
	TransformSignif   bool   `json:"transformSignificant"` // apply -log10 to significance
	ReverseFoldChange bool   `json:"reverseFoldChange"`    // flip fold-change sign
}

// Valid reports whether the form names the columns classification
// requires. Missing fold-change or significance columns make the
// whole classification call a no-op (structural failure, detected
// once, not per row).
func (f DifferentialForm) Valid() bool {
	return f.PrimaryIDColumn != "" && f.FoldChangeColumn != "" && f.SignificantColumn != ""
}
