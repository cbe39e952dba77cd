package nlp

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

type Analyzer string

const (
	AnalyzerWord Analyzer = "word"
	AnalyzerChar Analyzer = "char"
)

var ErrEmptyCorpus = errors.New("nlp: empty training corpus")

// Vectorizer is a TF-IDF model with smoothed idf and L2-normalized output.
// Word n-grams use tokens of at least two letters; char n-grams run over the raw text
// with whitespace collapsed.
type Vectorizer struct {
	Analyzer   Analyzer       `json:"analyzer"`
	NgramMin   int            `json:"ngram_min"`
	NgramMax   int            `json:"ngram_max"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

type SparseVector map[int]float64

func NewVectorizer(analyzer Analyzer, ngramMin, ngramMax int) *Vectorizer {
	return &Vectorizer{
		Analyzer: analyzer,
		NgramMin: ngramMin,
		NgramMax: ngramMax,
	}
}

func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyCorpus
	}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range v.Terms(doc) {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	if len(docFreq) == 0 {
		return ErrEmptyCorpus
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return nil
}

func (v *Vectorizer) Transform(doc string) SparseVector {
	vec := make(SparseVector)
	for _, term := range v.Terms(doc) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for idx, tf := range vec {
		w := tf * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

func (v *Vectorizer) Terms(doc string) []string {
	doc = strings.ToLower(doc)
	if v.Analyzer == AnalyzerChar {
		return charNgrams([]rune(strings.Join(strings.Fields(doc), " ")), v.NgramMin, v.NgramMax)
	}

	var tokens []string
	for _, token := range extractTokens(doc) {
		if len([]rune(token)) >= 2 {
			tokens = append(tokens, token)
		}
	}
	return wordNgrams(tokens, v.NgramMin, v.NgramMax)
}

func (v *Vectorizer) Size() int {
	return len(v.IDF)
}

func (v *Vectorizer) Validate() error {
	if v.Analyzer != AnalyzerWord && v.Analyzer != AnalyzerChar {
		return fmt.Errorf("unknown analyzer %q", v.Analyzer)
	}
	if v.NgramMin < 1 || v.NgramMax < v.NgramMin {
		return fmt.Errorf("invalid ngram range (%d, %d)", v.NgramMin, v.NgramMax)
	}
	if len(v.Vocabulary) != len(v.IDF) {
		return fmt.Errorf("vocabulary has %d terms but idf has %d", len(v.Vocabulary), len(v.IDF))
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("term %q has index %d out of range", term, idx)
		}
	}
	return nil
}

func wordNgrams(tokens []string, lo, hi int) []string {
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func charNgrams(runes []rune, lo, hi int) []string {
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(runes); i++ {
			out = append(out, string(runes[i:i+n]))
		}
	}
	return out
}

// Cosine similarity of two sparse vectors.
func Cosine(a, b SparseVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot, na, nb float64
	for idx, x := range a {
		dot += x * b[idx]
		na += x * x
	}
	for _, y := range b {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func (s SparseVector) Dot(dense []float64) float64 {
	var sum float64
	for idx, x := range s {
		if idx < len(dense) {
			sum += x * dense[idx]
		}
	}
	return sum
}
