// Package ner finds named entities in free text.
package ner

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Labels the rest of the pipeline cares about. Other labels pass through.
const (
	LabelOrg     = "ORG"
	LabelProduct = "PRODUCT"
	LabelDate    = "DATE"
)

// ErrTagging wraps any failure of the underlying recognizer.
var ErrTagging = errors.New("entity tagging failed")

// Entity is a labeled span. Start and End are byte offsets into the tagged text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (e Entity) overlaps(o Entity) bool {
	return e.Start < o.End && o.Start < e.End
}

// Tagger labels spans of text. Results are ordered by Start and may repeat
// the same text. Implementations are safe for concurrent use.
type Tagger interface {
	Name() string
	Tag(ctx context.Context, text string) ([]Entity, error)
}

// merge keeps entities from earlier groups when spans overlap and returns the
// survivors ordered by Start.
func merge(groups ...[]Entity) []Entity {
	out := make([]Entity, 0)
	for _, group := range groups {
	next:
		for _, ent := range group {
			if ent.End <= ent.Start {
				continue
			}
			for _, kept := range out {
				if ent.overlaps(kept) {
					continue next
				}
			}
			out = append(out, ent)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

type span struct {
	text  string
	label string
}

// locate finds each span in text, scanning forward so repeated spans map to
// successive occurrences. Spans that cannot be found are dropped.
func locate(text string, spans []span) []Entity {
	out := make([]Entity, 0, len(spans))
	cursor := 0
	for _, s := range spans {
		needle := strings.TrimSpace(s.text)
		if needle == "" {
			continue
		}
		idx := strings.Index(text[cursor:], needle)
		if idx < 0 {
			// the model may return spans out of order
			idx = strings.Index(text, needle)
			if idx < 0 {
				continue
			}
		} else {
			idx += cursor
			cursor = idx + len(needle)
		}
		out = append(out, Entity{
			Text:  needle,
			Label: s.label,
			Start: idx,
			End:   idx + len(needle),
		})
	}
	return out
}
