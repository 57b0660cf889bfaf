package ner

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// UserLexiconPath is looked up under the XDG config directories.
const UserLexiconPath = "resume-analyzer/lexicon.yaml"

const exactMatchMaxRunes = 2

var lexTokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:[+#]+)?`)

type lexiconFile struct {
	Products      []string `yaml:"products"`
	Organizations []string `yaml:"organizations"`
}

type lexEntry struct {
	name   string
	label  string
	folded []string
	exact  []string
}

// Lexicon recognizes a fixed list of product and organization names.
type Lexicon struct {
	byFirst map[string][]lexEntry
	size    int
}

// ParseLexicon builds a Lexicon from YAML with products and organizations lists.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := &Lexicon{byFirst: map[string][]lexEntry{}}
	lower := cases.Lower(language.Und)
	add := func(name, label string) {
		name = strings.TrimSpace(name)
		toks := lexTokenRe.FindAllString(name, -1)
		if len(toks) == 0 {
			return
		}
		entry := lexEntry{name: name, label: label}
		for _, tok := range toks {
			entry.folded = append(entry.folded, lower.String(tok))
		}
		if utf8.RuneCountInString(name) <= exactMatchMaxRunes {
			entry.exact = toks
		}
		first := entry.folded[0]
		lex.byFirst[first] = append(lex.byFirst[first], entry)
		lex.size++
	}
	for _, name := range file.Products {
		add(name, LabelProduct)
	}
	// organizations are added last so a name listed twice keeps PRODUCT
	for _, name := range file.Organizations {
		add(name, LabelOrg)
	}

	for first, entries := range lex.byFirst {
		sort.SliceStable(entries, func(i, j int) bool {
			return len(entries[i].folded) > len(entries[j].folded)
		})
		lex.byFirst[first] = entries
	}
	return lex, nil
}

// LoadLexicon resolves the lexicon to use: an explicit path, then the user
// config directory, then the built-in list.
func LoadLexicon(path string) (*Lexicon, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		if found, err := xdg.SearchConfigFile(UserLexiconPath); err == nil {
			path = found
		}
	}
	if path == "" {
		return ParseLexicon(defaultLexicon)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	if lex.Len() == 0 {
		return nil, errors.New("lexicon " + path + " has no entries")
	}
	return lex, nil
}

// Len reports the number of names in the lexicon.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Find returns entities for every lexicon name found in text. At each
// position the longest matching name wins.
func (l *Lexicon) Find(text string) []Entity {
	out := make([]Entity, 0)
	if l.Len() == 0 {
		return out
	}

	locs := lexTokenRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return out
	}
	lower := cases.Lower(language.Und)
	raw := make([]string, len(locs))
	folded := make([]string, len(locs))
	for i, loc := range locs {
		raw[i] = text[loc[0]:loc[1]]
		folded[i] = lower.String(raw[i])
	}

	for i := 0; i < len(locs); {
		matched := 0
		var label string
		for _, entry := range l.byFirst[folded[i]] {
			if entry.matches(raw[i:], folded[i:]) {
				matched = len(entry.folded)
				label = entry.label
				break
			}
		}
		if matched == 0 {
			i++
			continue
		}
		start := locs[i][0]
		end := locs[i+matched-1][1]
		out = append(out, Entity{
			Text:  text[start:end],
			Label: label,
			Start: start,
			End:   end,
		})
		i += matched
	}
	return out
}

func (e lexEntry) matches(raw, folded []string) bool {
	if len(folded) < len(e.folded) {
		return false
	}
	for k, tok := range e.folded {
		if folded[k] != tok {
			return false
		}
		if e.exact != nil && raw[k] != e.exact[k] {
			return false
		}
	}
	return true
}
