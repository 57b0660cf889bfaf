// Package similarity scores how much two documents share vocabulary using
// TF-IDF weighted cosine similarity.
package similarity

import (
	"math"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and returns runs of two or more letters, digits
// or underscores.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(cases.Lower(language.Und).String(text), -1)
}

// Vector is a dense term-weight vector over a Vectorizer's vocabulary.
type Vector []float64

// Vectorizer holds a vocabulary and smoothed inverse document frequencies.
type Vectorizer struct {
	Vocabulary []string
	IDF        []float64
	index      map[string]int
}

// FitTransform learns the vocabulary and IDF from docs and returns one
// L2-normalized TF-IDF vector per document. idf(t) = ln((1+n)/(1+df(t))) + 1.
func FitTransform(docs ...string) (*Vectorizer, []Vector) {
	tokenized := make([][]string, len(docs))
	df := map[string]int{}
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc)
		seen := map[string]struct{}{}
		for _, tok := range tokenized[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	v := &Vectorizer{
		Vocabulary: make([]string, 0, len(df)),
		index:      make(map[string]int, len(df)),
	}
	for tok := range df {
		v.Vocabulary = append(v.Vocabulary, tok)
	}
	sort.Strings(v.Vocabulary)

	n := float64(len(docs))
	v.IDF = make([]float64, len(v.Vocabulary))
	for i, tok := range v.Vocabulary {
		v.index[tok] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, toks := range tokenized {
		vectors[i] = v.weigh(toks)
	}
	return v, vectors
}

// Transform weighs an unseen document against the fitted vocabulary. Terms
// outside the vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) Vector {
	return v.weigh(Tokenize(doc))
}

func (v *Vectorizer) weigh(toks []string) Vector {
	vec := make(Vector, len(v.Vocabulary))
	for _, tok := range toks {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine returns the cosine of the angle between a and b, or 0 when either
// has no weight or their lengths differ.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Score returns the similarity of resume and job as a percentage in
// [0, 100] rounded to two decimals. Empty documents score 0.
func Score(resume, job string) float64 {
	_, vecs := FitTransform(resume, job)
	pct := Cosine(vecs[0], vecs[1]) * 100
	pct = math.Round(pct*100) / 100
	return math.Max(0, math.Min(100, pct))
}
