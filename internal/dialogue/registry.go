package dialogue

import (
	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

// Thresholds is the single tuned parameter set of the engine.
type Thresholds struct {
	FuzzyDish           float64 `json:"fuzzy_dish"`
	IntentGate          float64 `json:"intent_gate"`
	CorpusCosine        float64 `json:"corpus_cosine"`
	CorpusLengthRatio   float64 `json:"corpus_length_ratio"`
	CorpusDistance      float64 `json:"corpus_distance"`
	HintDistance        float64 `json:"hint_distance"`
	IntentAdProbability float64 `json:"intent_ad_probability"`
	CorpusAdProbability float64 `json:"corpus_ad_probability"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		FuzzyDish:           85,
		IntentGate:          0.65,
		CorpusCosine:        0.5,
		CorpusLengthRatio:   0.33,
		CorpusDistance:      0.4,
		HintDistance:        0.3,
		IntentAdProbability: 0.2,
		CorpusAdProbability: 0.3,
	}
}

// Registry holds everything loaded at startup. It is never mutated afterwards and is
// shared by all sessions.
type Registry struct {
	Catalog    *Catalog
	Lemmatizer nlp.ILemmatizer
	Extractor  *Extractor
	Classifier *IntentClassifier
	Corpus     CorpusMatcher
	Ads        *AdInjector
	Thresholds Thresholds

	// HintsEnabled makes the engine consult Hints before the dialogue corpus.
	HintsEnabled bool
	Hints        *HintResponder
}

// Components are the loaded inputs of a Registry.
type Components struct {
	Catalog     entity.Catalog
	Dialogues   []entity.DialogueEntry
	Advertising []entity.AdvertisingExample
	IntentModel nlp.IClassifier
	HintModel   nlp.IClassifier
}

type RegistryOptions struct {
	CorpusMode   string
	AdMode       string
	HintsEnabled bool
	Lemmatizer   string
	Thresholds   Thresholds
}

// NewRegistry validates the catalog and wires the matchers. A nil IntentModel is fitted
// from the catalog examples; a nil HintModel with hints enabled is fitted from the
// advertising corpus.
func NewRegistry(c Components, opts RegistryOptions, rng Random) (*Registry, error) {
	th := opts.Thresholds
	if th == (Thresholds{}) {
		th = DefaultThresholds()
	}

	lemmatizer, err := nlp.NewLemmatizer(opts.Lemmatizer)
	if err != nil {
		return nil, configError("%v", err)
	}

	catalog, err := NewCatalog(c.Catalog)
	if err != nil {
		return nil, err
	}

	intentModel := c.IntentModel
	if intentModel == nil {
		trained, err := TrainIntentModel(catalog, lemmatizer)
		if err != nil {
			return nil, err
		}
		intentModel = trained
	} else if err := checkModelClasses(intentModel, catalog); err != nil {
		return nil, err
	}

	corpus, err := NewCorpusMatcher(opts.CorpusMode, c.Dialogues, th)
	if err != nil {
		return nil, err
	}

	ads, err := NewAdInjector(catalog, rng, opts.AdMode, th)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		Catalog:    catalog,
		Lemmatizer: lemmatizer,
		Extractor:  NewExtractor(catalog, lemmatizer, th.FuzzyDish),
		Classifier: NewIntentClassifier(intentModel, catalog, lemmatizer, th.IntentGate),
		Corpus:     corpus,
		Ads:        ads,
		Thresholds: th,
	}

	if opts.HintsEnabled {
		r.HintsEnabled = true
		hintModel := c.HintModel
		if hintModel == nil {
			trained, err := TrainHintModel(c.Advertising)
			if err != nil {
				return nil, err
			}
			hintModel = trained
		}
		r.Hints = NewHintResponder(hintModel, c.Advertising, th.HintDistance)
	}

	return r, nil
}

// checkModelClasses rejects a loaded artifact that predicts intents the catalog lacks.
func checkModelClasses(model nlp.IClassifier, catalog *Catalog) error {
	linear, ok := model.(*nlp.LinearModel)
	if !ok {
		return nil
	}
	for _, class := range linear.Classes {
		if _, ok := catalog.Intent(class); !ok {
			return configError("intent model predicts unknown intent %q", class)
		}
	}
	return nil
}
