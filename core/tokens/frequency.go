package tokens

import (
	"sort"
	"strings"

	"github.com/gaurav-prasanna/stylepipe/core"
)

// Count aggregates values into entries sorted by descending count.
// Ties keep the order in which each value was first seen.
func Count(values []string) []core.FrequencyEntry {
	index := make(map[string]int, len(values))
	entries := make([]core.FrequencyEntry, 0)

	for _, v := range values {
		if i, ok := index[v]; ok {
			entries[i].Count++
			continue
		}
		index[v] = len(entries)
		entries = append(entries, core.FrequencyEntry{Value: v, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// CountFolded is Count over lower-cased values. Used for colors.
func CountFolded(values []string) []core.FrequencyEntry {
	folded := make([]string, len(values))
	for i, v := range values {
		folded[i] = strings.ToLower(v)
	}
	return Count(folded)
}

// Summary is the counted form of Raw.
type Summary struct {
	Colors     []core.FrequencyEntry
	Typography core.Typography
	Spacing    []core.FrequencyEntry
}

// Summarize counts every category of raw.
func Summarize(raw Raw) Summary {
	return Summary{
		Colors: CountFolded(raw.Colors),
		Typography: core.Typography{
			FontFamilies: Count(raw.FontFamilies),
			FontSizes:    Count(raw.FontSizes),
			FontWeights:  Count(raw.FontWeights),
			LineHeights:  Count(raw.LineHeights),
		},
		Spacing: Count(raw.Spacing),
	}
}
