// Package search resolves free-text queries against a built
// identifier index: typeahead suggestions, exact and batch term
// resolution, and regex matching.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/proteovis/proteovis/internal/index"
)

// Match tags how a suggestion key relates to the query.
const (
	MatchExact   = "exact"
	MatchPartial = "partial"
)

// MinQueryLength is the shortest query typeahead will serve; shorter
// queries return empty without touching the index.
const MinQueryLength = 2

// Mode selects the search strategy.
type Mode string

const (
	ModeExact Mode = "exact"
	ModeBatch Mode = "batch"
	ModeRegex Mode = "regex"
)

// Suggestion is one typeahead hit.
type Suggestion struct {
	Key      string         `json:"key"`
	Category index.Category `json:"category"`
	Match    string         `json:"match"`
	IDs      []string       `json:"ids"`
}

// Search resolves a query to a sorted primary-ID set using the given
// mode. Unknown modes behave as exact.
func Search(ix *index.Index, query string, mode Mode) []string {
	switch mode {
	case ModeBatch:
		return Batch(ix, query)
	case ModeRegex:
		return Regex(ix, query)
	default:
		return ix.Exact(query)
	}
}

// Typeahead returns up to limit suggestions whose key contains the
// query (case-insensitive). Full-string equality is tagged exact and
// sorts ahead of partial matches.
func Typeahead(ix *index.Index, query string, limit int) []Suggestion {
	query = index.Normalize(query)
	if len(query) < MinQueryLength || limit <= 0 {
		return nil
	}

	var exact, partial []Suggestion
	for _, cat := range index.Categories {
		for _, key := range ix.Keys(cat) {
			if !strings.Contains(key, query) {
				continue
			}
			s := Suggestion{Key: key, Category: cat, IDs: ix.Lookup(cat, key)}
			if key == query {
				s.Match = MatchExact
				exact = append(exact, s)
			} else {
				s.Match = MatchPartial
				partial = append(partial, s)
			}
		}
	}

	out := append(exact, partial...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Batch resolves free text: one query per line, each line split on
// ";" into candidate terms. The entire trimmed line is tried as an
// exact identifier first; composite lines are often themselves valid
// identifiers, so decomposition only happens when the whole-line
// lookup comes back empty. The result is the deduplicated union of
// all matches, sorted.
func Batch(ix *index.Index, text string) []string {
	found := map[string]struct{}{}

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if ids := ix.Exact(line); len(ids) > 0 {
			for _, id := range ids {
				found[id] = struct{}{}
			}
			continue
		}

		for _, term := range strings.Split(line, ";") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			for _, id := range resolveTerm(ix, term) {
				found[id] = struct{}{}
			}
		}
	}

	return sortedSet(found)
}

// resolveTerm tries an exact lookup and falls back to substring
// matching over the index keys.
func resolveTerm(ix *index.Index, term string) []string {
	if ids := ix.Exact(term); len(ids) > 0 {
		return ids
	}

	term = index.Normalize(term)
	found := map[string]struct{}{}
	for _, cat := range index.Categories {
		for _, key := range ix.Keys(cat) {
			if strings.Contains(key, term) {
				for _, id := range ix.Lookup(cat, key) {
					found[id] = struct{}{}
				}
			}
		}
	}
	return sortedSet(found)
}

// Regex matches a case-insensitive pattern anywhere in any index
// key. A pattern that fails to compile yields empty results; search
// is an optional refinement the caller can always recover from.
func Regex(ix *index.Index, pattern string) []string {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil
	}

	found := map[string]struct{}{}
	for _, cat := range index.Categories {
		for _, key := range ix.Keys(cat) {
			if re.MatchString(key) {
				for _, id := range ix.Lookup(cat, key) {
					found[id] = struct{}{}
				}
			}
		}
	}
	return sortedSet(found)
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
