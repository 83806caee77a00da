// Package grouper derives condition/replicate structure from sample
// column names and merges it into existing analysis settings.
package grouper

import (
	"strings"

	"github.com/proteovis/proteovis/internal/data"
)

// GroupSamples parses sample names into (condition, replicate) pairs
// and merges the result into the given settings. Sample names are
// split on "."; the trailing component is the replicate label and
// everything before it, rejoined, is the derived condition.
//
// Merge rules:
//   - a stored sample-to-condition mapping wins over the derived one
//     (manual overrides survive re-grouping)
//   - condition order keeps the existing relative order for conditions
//     still observed and appends new conditions in first-seen order
//   - condition colors are only added, never changed; new conditions
//     take the next unused palette entry, cycling round-robin once the
//     palette is exhausted
//   - sample entries for samples no longer present are dropped
//   - visibility defaults to true for new samples and is preserved
//     for existing ones
//
// An empty sample list returns the input settings unchanged.
func GroupSamples(sampleNames []string, settings data.Settings) data.Settings {
	if len(sampleNames) == 0 {
		return settings
	}

	out := settings.Clone()

	sampleMap := make(map[string]data.SampleInfo, len(sampleNames))
	sampleOrder := map[string][]string{}
	sampleVisible := make(map[string]bool, len(sampleNames))
	var observed []string
	seenCondition := map[string]bool{}

	for _, name := range sampleNames {
		condition, replicate := splitSample(name)
		if prior, ok := out.SampleMap[name]; ok && prior.Condition != "" {
			condition = prior.Condition
			if prior.Replicate != "" {
				replicate = prior.Replicate
			}
		}

		sampleMap[name] = data.SampleInfo{Condition: condition, Replicate: replicate}
		sampleOrder[condition] = append(sampleOrder[condition], name)

		if visible, ok := out.SampleVisible[name]; ok {
			sampleVisible[name] = visible
		} else {
			sampleVisible[name] = true
		}

		if !seenCondition[condition] {
			seenCondition[condition] = true
			observed = append(observed, condition)
		}
	}

	out.SampleMap = sampleMap
	out.SampleOrder = sampleOrder
	out.SampleVisible = sampleVisible
	out.ConditionOrder = mergeOrder(out.ConditionOrder, observed, seenCondition)

	assignConditionColors(&out, out.ConditionOrder)

	return out
}

// splitSample splits "Condition.A.1" into ("Condition.A", "1").
// Names without a dot become their own condition with an empty
// replicate label.
func splitSample(name string) (condition, replicate string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// mergeOrder keeps the existing relative order for conditions still
// observed and appends brand-new conditions at the end in first-seen
// order.
func mergeOrder(existing, observed []string, stillPresent map[string]bool) []string {
	var merged []string
	inMerged := map[string]bool{}
	for _, c := range existing {
		if stillPresent[c] && !inMerged[c] {
			merged = append(merged, c)
			inMerged[c] = true
		}
	}
	for _, c := range observed {
		if !inMerged[c] {
			merged = append(merged, c)
			inMerged[c] = true
		}
	}
	return merged
}

// assignConditionColors gives each condition lacking a color the next
// unused palette entry. The scan is plain round-robin: once the
// palette runs out it wraps to index 0 and duplicates are accepted.
func assignConditionColors(s *data.Settings, conditions []string) {
	palette := s.Palette()
	if len(palette) == 0 {
		return
	}

	next := 0
	used := map[string]bool{}
	for _, color := range s.ConditionColors {
		used[color] = true
	}

	for _, condition := range conditions {
		if _, ok := s.ConditionColors[condition]; ok {
			continue
		}
		// Prefer an unused palette entry; give up after one full lap.
		start := next
		for used[palette[next%len(palette)]] {
			next++
			if next-start >= len(palette) {
				next = start
				break
			}
		}
		color := palette[next%len(palette)]
		s.ConditionColors[condition] = color
		used[color] = true
		next++
	}
}
