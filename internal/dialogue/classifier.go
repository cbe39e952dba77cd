package dialogue

import (
	"restobot/pkg/nlp"
)

type gateExample struct {
	intent string
	text   string
}

// IntentClassifier wraps a trained classifier with the edit-distance confidence gate.
type IntentClassifier struct {
	model      nlp.IClassifier
	lemmatizer nlp.ILemmatizer
	examples   []gateExample
	threshold  float64
}

// Classification explains one gate decision.
type Classification struct {
	Intent      string  `json:"intent"`
	Raw         string  `json:"raw_prediction"`
	BestIntent  string  `json:"best_intent"`
	BestExample string  `json:"best_example"`
	BestScore   float64 `json:"best_score"`
}

func NewIntentClassifier(model nlp.IClassifier, catalog *Catalog, lemmatizer nlp.ILemmatizer, threshold float64) *IntentClassifier {
	c := &IntentClassifier{
		model:      model,
		lemmatizer: lemmatizer,
		threshold:  threshold,
	}
	for _, intent := range catalog.Intents() {
		for _, example := range intent.Examples {
			if cleaned := nlp.Normalize(example); cleaned != "" {
				c.examples = append(c.examples, gateExample{intent: intent.Name, text: cleaned})
			}
		}
	}
	return c
}

func (c *IntentClassifier) Classify(text string) (string, bool) {
	result := c.Explain(text)
	return result.Intent, result.Intent != ""
}

// Explain scores the cleaned input against every example of every intent. A best score
// at or above the threshold wins over the model; below it the raw model prediction is
// returned unchanged; a best score that never exceeds zero yields no intent.
func (c *IntentClassifier) Explain(text string) Classification {
	cleaned := nlp.Normalize(text)
	if cleaned == "" {
		return Classification{}
	}

	var result Classification
	if prediction, ok := c.model.Predict(c.lemmatizer.Lemmatize(text)); ok {
		result.Raw = prediction.Label
	}

	for _, example := range c.examples {
		if score := nlp.Similarity(cleaned, example.text); score > result.BestScore {
			result.BestScore = score
			result.BestIntent = example.intent
			result.BestExample = example.text
		}
	}

	switch {
	case result.BestScore >= c.threshold:
		result.Intent = result.BestIntent
	case result.BestScore > 0:
		result.Intent = result.Raw
	}
	return result
}
