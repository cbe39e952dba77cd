package nlp

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

const (
	LemmatizerSnowball = "snowball"
	LemmatizerNone     = "none"
)

// SnowballLemmatizer reduces every normalized token to its Russian Snowball stem.
// A stem is not a dictionary lemma, but the same reduction is applied to catalog names,
// so substring matching between the two stays consistent.
type SnowballLemmatizer struct{}

func (SnowballLemmatizer) Lemmatize(text string) string {
	words := strings.Fields(Normalize(text))
	for i, word := range words {
		stem, err := snowball.Stem(word, "russian", true)
		if err != nil || stem == "" {
			continue
		}
		words[i] = stem
	}
	return strings.Join(words, " ")
}

// PlainLemmatizer only normalizes. Category and synonym recall drops with it.
type PlainLemmatizer struct{}

func (PlainLemmatizer) Lemmatize(text string) string {
	return strings.Join(strings.Fields(Normalize(text)), " ")
}

func NewLemmatizer(kind string) (ILemmatizer, error) {
	switch kind {
	case "", LemmatizerSnowball:
		return SnowballLemmatizer{}, nil
	case LemmatizerNone:
		return PlainLemmatizer{}, nil
	default:
		return nil, fmt.Errorf("unknown lemmatizer %q", kind)
	}
}
