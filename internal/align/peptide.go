package align

import "strings"

// FuzzyThreshold is the minimum position-wise similarity for a
// sliding-window peptide match.
const FuzzyThreshold = 0.8

// CleanPeptide strips modification notation from a peptide string:
// bracketed "[...]" and parenthesized "(...)" annotations,
// underscores, and dots.
func CleanPeptide(peptide string) string {
	var b strings.Builder
	b.Grow(len(peptide))
	depth := 0
	for i := 0; i < len(peptide); i++ {
		c := peptide[i]
		switch {
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case c == '_' || c == '.':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// MapPeptide locates a peptide within a canonical sequence and
// returns its 1-indexed inclusive (start, end). Modification
// notation is stripped first; matching is case-insensitive.
//
// An exact substring match is tried before falling back to a
// sliding-window fuzzy match that accepts the globally
// highest-similarity window at or above FuzzyThreshold, leftmost on
// ties. No acceptable window means no result (ok=false), never an
// error.
func MapPeptide(peptide, canonical string) (start, end int, ok bool) {
	cleaned := strings.ToUpper(CleanPeptide(peptide))
	target := strings.ToUpper(filterLetters(canonical))
	if cleaned == "" || target == "" || len(cleaned) > len(target) {
		return 0, 0, false
	}

	if idx := strings.Index(target, cleaned); idx >= 0 {
		return idx + 1, idx + len(cleaned), true
	}

	bestIdx, bestScore := -1, 0.0
	for idx := 0; idx+len(cleaned) <= len(target); idx++ {
		matches := 0
		for k := 0; k < len(cleaned); k++ {
			if cleaned[k] == target[idx+k] {
				matches++
			}
		}
		score := float64(matches) / float64(len(cleaned))
		if score >= FuzzyThreshold && score > bestScore {
			bestIdx, bestScore = idx, score
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}
	return bestIdx + 1, bestIdx + len(cleaned), true
}
