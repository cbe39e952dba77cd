package dialogue

import (
	"fmt"
	"math"
	"strings"

	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

const (
	AdModeRandom  = "random"
	AdModeKeyword = "keyword"
	AdModeOff     = "off"
)

const (
	intentAdFormat = " Кстати, у нас есть %s — отличный выбор для вкусного ужина!"
	corpusAdFormat = " Кстати, у нас есть %s — очень вкусно!"

	// adMarker is how recovery recognises a previous reply that advertised a dish.
	adMarker = "Кстати, у нас есть"

	foodAd    = "Кстати, раз уж речь зашла о еде, у нас в ресторане подают отличный крем-суп из тыквы!"
	weatherAd = "В такую погоду идеально зайти в наш ресторан и согреться горячим шоколадом с круассаном!"
)

var (
	foodTriggers    = []string{"голод", "еда", "вкусно", "обед", "ужин"}
	weatherTriggers = []string{"погода", "холодно", "жарко"}
)

// AdInjector appends promotional sentences to finished answers.
type AdInjector struct {
	catalog           *Catalog
	rng               Random
	mode              string
	intentProbability float64
	corpusProbability float64
}

func NewAdInjector(catalog *Catalog, rng Random, mode string, th Thresholds) (*AdInjector, error) {
	switch mode {
	case "":
		mode = AdModeRandom
	case AdModeRandom, AdModeKeyword, AdModeOff:
	default:
		return nil, configError("unknown advertisement mode %q", mode)
	}
	return &AdInjector{
		catalog:           catalog,
		rng:               rng,
		mode:              mode,
		intentProbability: th.IntentAdProbability,
		corpusProbability: th.CorpusAdProbability,
	}, nil
}

func (a *AdInjector) Mode() string { return a.mode }

// ForIntent decorates greeting and menu answers.
func (a *AdInjector) ForIntent(answer, intent, focus, userText string) (string, bool) {
	if intent != IntentHello && intent != IntentMenuTypes {
		return answer, false
	}
	return a.inject(answer, focus, userText, a.intentProbability, intentAdFormat)
}

func (a *AdInjector) ForCorpus(answer, focus, userText string) (string, bool) {
	return a.inject(answer, focus, userText, a.corpusProbability, corpusAdFormat)
}

func (a *AdInjector) inject(answer, focus, userText string, probability float64, format string) (string, bool) {
	if a.mode == AdModeOff || a.rng.Float64() >= probability {
		return answer, false
	}

	if a.mode == AdModeKeyword {
		ad := a.keywordAd(userText)
		if ad == "" {
			return answer, false
		}
		return joinSentence(answer, ad), true
	}

	dish, ok := a.otherDish(focus)
	if !ok {
		return answer, false
	}
	return answer + fmt.Sprintf(format, dish), true
}

func (a *AdInjector) keywordAd(userText string) string {
	lower := strings.ToLower(userText)
	for _, trigger := range foodTriggers {
		if strings.Contains(lower, trigger) {
			return foodAd
		}
	}
	for _, trigger := range weatherTriggers {
		if strings.Contains(lower, trigger) {
			return weatherAd
		}
	}
	return choice(a.rng, a.catalog.AdMessages())
}

func (a *AdInjector) otherDish(focus string) (string, bool) {
	var candidates []string
	for _, name := range a.catalog.DishNames() {
		if name != focus {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return choice(a.rng, candidates), true
}

func joinSentence(answer, sentence string) string {
	trimmed := strings.TrimRight(answer, " ")
	if trimmed == "" {
		return sentence
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		return trimmed + " " + sentence
	}
	return trimmed + ". " + sentence
}

// HintResponder answers directly when the input looks like a cue for a canned promotion.
type HintResponder struct {
	model     nlp.IClassifier
	questions []string
	answers   []string
	threshold float64
}

// NewHintResponder keeps only the examples labelled as advertising hints.
func NewHintResponder(model nlp.IClassifier, examples []entity.AdvertisingExample, threshold float64) *HintResponder {
	r := &HintResponder{model: model, threshold: threshold}
	for _, e := range examples {
		question := strings.ToLower(strings.TrimSpace(e.Question))
		if e.Label != entity.AdvertisingHint || question == "" {
			continue
		}
		r.questions = append(r.questions, question)
		r.answers = append(r.answers, e.Answer)
	}
	return r
}

// Reply returns ErrAdvertisingClassifierUnavailable when no model was loaded. A false
// result without error means the input is not a hint or no example is close enough.
func (r *HintResponder) Reply(text string) (string, bool, error) {
	if r == nil || r.model == nil {
		return "", false, ErrAdvertisingClassifierUnavailable
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	prediction, ok := r.model.Predict(lower)
	if !ok || prediction.Label != entity.AdvertisingHint {
		return "", false, nil
	}

	best, bestDistance := -1, math.Inf(1)
	for i, question := range r.questions {
		if distance := nlp.WeightedDistance(lower, question); distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	if best < 0 || bestDistance >= r.threshold {
		return "", false, nil
	}
	return r.answers[best], true, nil
}
