package dialogue

import (
	"fmt"
	"math"
	"unicode/utf8"

	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

const (
	CorpusModeVector = "vector"
	CorpusModeEdit   = "edit"
)

type CorpusMatch struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// CorpusMatcher answers off-topic chatter from the question/answer corpus.
type CorpusMatcher interface {
	Match(text string) (CorpusMatch, bool)
}

func NewCorpusMatcher(mode string, entries []entity.DialogueEntry, th Thresholds) (CorpusMatcher, error) {
	if len(entries) == 0 {
		return emptyCorpus{}, nil
	}
	switch mode {
	case "", CorpusModeVector:
		return NewVectorCorpusMatcher(entries, th.CorpusCosine)
	case CorpusModeEdit:
		return NewEditCorpusMatcher(entries, th.CorpusLengthRatio, th.CorpusDistance), nil
	default:
		return nil, configError("unknown corpus mode %q", mode)
	}
}

type emptyCorpus struct{}

func (emptyCorpus) Match(string) (CorpusMatch, bool) { return CorpusMatch{}, false }

// VectorCorpusMatcher compares TF-IDF vectors by cosine similarity.
type VectorCorpusMatcher struct {
	vectorizer *nlp.Vectorizer
	vectors    []nlp.SparseVector
	entries    []entity.DialogueEntry
	threshold  float64
}

func NewVectorCorpusMatcher(entries []entity.DialogueEntry, threshold float64) (*VectorCorpusMatcher, error) {
	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = nlp.Normalize(e.Question)
	}

	vec := nlp.NewVectorizer(nlp.AnalyzerWord, 1, 2)
	if err := vec.Fit(questions); err != nil {
		return nil, configError("dialogue corpus: %v", err)
	}

	m := &VectorCorpusMatcher{
		vectorizer: vec,
		entries:    entries,
		threshold:  threshold,
		vectors:    make([]nlp.SparseVector, len(questions)),
	}
	for i, q := range questions {
		m.vectors[i] = vec.Transform(q)
	}
	return m, nil
}

func (m *VectorCorpusMatcher) Match(text string) (CorpusMatch, bool) {
	if !nlp.IsMeaningful(text) {
		return CorpusMatch{}, false
	}

	query := m.vectorizer.Transform(nlp.Normalize(text))
	best, bestScore := -1, 0.0
	for i, v := range m.vectors {
		if score := nlp.Cosine(query, v); best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore <= m.threshold {
		return CorpusMatch{}, false
	}
	return CorpusMatch{Question: m.entries[best].Question, Answer: m.entries[best].Answer, Score: bestScore}, true
}

// EditCorpusMatcher scans questions of similar length and keeps the first entry with the
// smallest weighted edit distance.
type EditCorpusMatcher struct {
	questions   []string
	entries     []entity.DialogueEntry
	lengthRatio float64
	maxDistance float64
}

func NewEditCorpusMatcher(entries []entity.DialogueEntry, lengthRatio, maxDistance float64) *EditCorpusMatcher {
	m := &EditCorpusMatcher{
		entries:     entries,
		lengthRatio: lengthRatio,
		maxDistance: maxDistance,
		questions:   make([]string, len(entries)),
	}
	for i, e := range entries {
		m.questions[i] = nlp.Normalize(e.Question)
	}
	return m
}

func (m *EditCorpusMatcher) Match(text string) (CorpusMatch, bool) {
	if !nlp.IsMeaningful(text) {
		return CorpusMatch{}, false
	}

	query := nlp.Normalize(text)
	queryLen := float64(utf8.RuneCountInString(query))

	best, bestDistance := -1, math.Inf(1)
	for i, question := range m.questions {
		questionLen := float64(utf8.RuneCountInString(question))
		if questionLen == 0 {
			continue
		}
		if math.Abs(queryLen-questionLen)/questionLen >= m.lengthRatio {
			continue
		}
		distance := nlp.WeightedDistance(query, question)
		if distance < m.maxDistance && distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	if best < 0 {
		return CorpusMatch{}, false
	}
	return CorpusMatch{Question: m.entries[best].Question, Answer: m.entries[best].Answer, Score: bestDistance}, true
}

func (m CorpusMatch) String() string {
	return fmt.Sprintf("%q -> %q (%.3f)", m.Question, m.Answer, m.Score)
}
