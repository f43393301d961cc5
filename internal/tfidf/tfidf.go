// Package tfidf implements a single-word TF-IDF vectorizer.
//
// Documents are lowercased with Unicode full case mapping and split into
// tokens of two or more letters, digits or underscores. Weights are raw
// term counts times the smoothed inverse document frequency
// ln((1+n)/(1+df)) + 1, and every row is scaled to unit L2 norm. The
// vocabulary is sorted, so feature indices are stable for a given corpus.
package tfidf

import (
	"math"
	"regexp"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/listenupapp/reviewaudit/internal/errors"
)

const minTokenRunes = 2

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Vectorizer is a TF-IDF vectorizer. The zero value is unfitted.
type Vectorizer struct {
	index map[string]int
	terms []string
	idf   []float64
}

// New returns an unfitted vectorizer.
func New() *Vectorizer {
	return &Vectorizer{}
}

// Tokenize lowercases doc and returns its tokens in order.
func Tokenize(doc string) []string {
	lower := cases.Lower(language.Und).String(doc)
	matches := wordRe.FindAllString(lower, -1)
	tokens := matches[:0]
	for _, m := range matches {
		if utf8.RuneCountInString(m) >= minTokenRunes {
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// Fit learns the vocabulary and document frequencies of docs.
// It fails with DegenerateVocabulary when docs contain no tokens.
func (v *Vectorizer) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}
	if len(df) == 0 {
		return errors.DegenerateVocabulary("labeled reviews contain no usable words")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	n := float64(len(docs))
	v.index = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.index[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.terms = terms
	return nil
}

// Transform weights docs over the fitted vocabulary. Unknown words are
// ignored and a document without known words is an all-zero row.
func (v *Vectorizer) Transform(docs []string) (*mat.Dense, error) {
	if v.index == nil {
		return nil, errors.Internal("tfidf vectorizer used before Fit")
	}
	if len(docs) == 0 {
		return nil, errors.Internal("tfidf transform of an empty document set")
	}

	x := mat.NewDense(len(docs), len(v.terms), nil)
	row := make([]float64, len(v.terms))
	for i, doc := range docs {
		clear(row)
		for _, tok := range Tokenize(doc) {
			if j, ok := v.index[tok]; ok {
				row[j]++
			}
		}
		floats.Mul(row, v.idf)
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		x.SetRow(i, row)
	}
	return x, nil
}

// FitTransform fits on docs and returns their matrix.
func (v *Vectorizer) FitTransform(docs []string) (*mat.Dense, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// Vocabulary returns the feature names in index order.
func (v *Vectorizer) Vocabulary() []string {
	return slices.Clone(v.terms)
}

// IDF returns the inverse document frequency of each feature.
func (v *Vectorizer) IDF() []float64 {
	return slices.Clone(v.idf)
}
