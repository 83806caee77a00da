// Package align implements global sequence alignment, peptide-to-
// protein positional mapping, and PTM position extraction.
package align

import "strings"

// Scoring constants for the global alignment. Linear gap cost, no
// open/extend distinction.
const (
	MatchScore    = 2
	MismatchScore = -1
	GapPenalty    = -2
)

// AlignedPair holds a global alignment of an experimental sequence
// against a canonical one: the gapped strings ("-" marks a gap) and,
// for each ungapped 1-indexed position on each side, the index into
// that side's gapped representation.
type AlignedPair struct {
	Experimental        string
	Canonical           string
	AlignedExperimental string
	AlignedCanonical    string
	ExperimentalMap     map[int]int
	CanonicalMap        map[int]int
	Score               int
}

// Align computes the Needleman-Wunsch global alignment of two
// sequences. Non-letter characters are stripped before aligning.
// If either sequence is empty after filtering, the pair carries the
// filtered inputs unaligned with empty position maps; this is not an
// error.
func Align(experimental, canonical string) AlignedPair {
	a := filterLetters(experimental)
	b := filterLetters(canonical)

	pair := AlignedPair{
		Experimental:    a,
		Canonical:       b,
		ExperimentalMap: map[int]int{},
		CanonicalMap:    map[int]int{},
	}

	if len(a) == 0 || len(b) == 0 {
		pair.AlignedExperimental = a
		pair.AlignedCanonical = b
		return pair
	}

	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i * GapPenalty
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j * GapPenalty
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			diag := dp[i-1][j-1] + substScore(a[i-1], b[j-1])
			up := dp[i-1][j] + GapPenalty
			left := dp[i][j-1] + GapPenalty
			dp[i][j] = max(diag, up, left)
		}
	}
	pair.Score = dp[m][n]

	// Traceback, preferring diagonal on ties, then the vertical move.
	var alignedA, alignedB []byte
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+substScore(a[i-1], b[j-1]):
			i--
			j--
			alignedA = append(alignedA, a[i])
			alignedB = append(alignedB, b[j])
		case i > 0 && dp[i][j] == dp[i-1][j]+GapPenalty:
			i--
			alignedA = append(alignedA, a[i])
			alignedB = append(alignedB, '-')
		default:
			j--
			alignedA = append(alignedA, '-')
			alignedB = append(alignedB, b[j])
		}
	}
	reverse(alignedA)
	reverse(alignedB)

	pair.AlignedExperimental = string(alignedA)
	pair.AlignedCanonical = string(alignedB)
	pair.ExperimentalMap = positionMap(pair.AlignedExperimental)
	pair.CanonicalMap = positionMap(pair.AlignedCanonical)
	return pair
}

// positionMap maps each ungapped 1-indexed position to its index in
// the gapped string.
func positionMap(aligned string) map[int]int {
	out := map[int]int{}
	pos := 0
	for idx := 0; idx < len(aligned); idx++ {
		if aligned[idx] == '-' {
			continue
		}
		pos++
		out[pos] = idx
	}
	return out
}

func substScore(x, y byte) int {
	if upper(x) == upper(y) {
		return MatchScore
	}
	return MismatchScore
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func filterLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
