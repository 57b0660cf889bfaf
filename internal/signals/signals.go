// Package signals turns tagged entities into resume features.
package signals

import (
	"sort"

	"resume-analyzer/internal/ner"
)

// Skills returns the distinct texts of ORG and PRODUCT entities, sorted.
func Skills(ents []ner.Entity) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range ents {
		if e.Label != ner.LabelOrg && e.Label != ner.LabelProduct {
			continue
		}
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		out = append(out, e.Text)
	}
	sort.Strings(out)
	return out
}

// Experience returns the texts of DATE entities in document order. Repeats are kept.
func Experience(ents []ner.Entity) []string {
	out := make([]string, 0)
	for _, e := range ents {
		if e.Label == ner.LabelDate {
			out = append(out, e.Text)
		}
	}
	return out
}
