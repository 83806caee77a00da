package align

// PTMPosition locates one modification: its position in the cleaned
// peptide, its absolute position in the protein, the modified
// residue, and the modification name from the annotation.
type PTMPosition struct {
	PeptidePosition int    `json:"peptidePosition"`
	ProteinPosition int    `json:"proteinPosition"`
	Residue         string `json:"residue"`
	Name            string `json:"name"`
}

// ExtractPTMs scans a raw, annotation-bearing peptide string for
// bracketed "[...]" or parenthesized "(...)" modification names and
// attributes each to the amino-acid letter immediately preceding it.
// startPos is the peptide's known 1-indexed start offset in the
// canonical sequence; the protein-absolute position of each site is
// startPos + cleaned-position - 1.
//
// Annotations with no preceding residue (N-terminal notation) are
// dropped, as are unterminated brackets.
func ExtractPTMs(peptide string, startPos int) []PTMPosition {
	var out []PTMPosition
	cleanedPos := 0
	var lastResidue byte

	for i := 0; i < len(peptide); i++ {
		c := peptide[i]

		if isLetter(c) {
			cleanedPos++
			lastResidue = c
			continue
		}

		if c == '[' || c == '(' {
			closer := byte(']')
			if c == '(' {
				closer = ')'
			}
			name, next, ok := captureAnnotation(peptide, i+1, c, closer)
			if !ok {
				break
			}
			i = next
			if cleanedPos == 0 || name == "" {
				continue
			}
			out = append(out, PTMPosition{
				PeptidePosition: cleanedPos,
				ProteinPosition: startPos + cleanedPos - 1,
				Residue:         string(upper(lastResidue)),
				Name:            name,
			})
		}
	}

	return out
}

// captureAnnotation reads from idx up to the closing bracket that
// matches the opener at idx-1, tolerating nested brackets of the
// same type. It returns the captured text and the index of the
// closer.
func captureAnnotation(s string, idx int, opener, closer byte) (string, int, bool) {
	depth := 1
	for i := idx; i < len(s); i++ {
		switch s[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[idx:i], i, true
			}
		}
	}
	return "", 0, false
}
