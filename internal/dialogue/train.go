package dialogue

import (
	"strings"

	"restobot/pkg/nlp"
)

// TrainedModels are the artifacts written by the offline trainer. Accuracy is measured
// on the training examples and only guards against a catalog that cannot be separated.
type TrainedModels struct {
	Intent         *nlp.LinearModel
	IntentAccuracy float64
	Hint           *nlp.LinearModel
	HintAccuracy   float64
}

// TrainModels fits the intent model and, when an advertising corpus is present, the hint
// model. The catalog is validated exactly as the server would validate it.
func TrainModels(c Components, lemmatizerName string) (TrainedModels, error) {
	var out TrainedModels

	lemmatizer, err := nlp.NewLemmatizer(lemmatizerName)
	if err != nil {
		return out, configError("%v", err)
	}

	catalog, err := NewCatalog(c.Catalog)
	if err != nil {
		return out, err
	}

	if out.Intent, err = TrainIntentModel(catalog, lemmatizer); err != nil {
		return out, err
	}
	var docs, labels []string
	for _, intent := range catalog.Intents() {
		for _, example := range intent.Examples {
			docs = append(docs, lemmatizer.Lemmatize(example))
			labels = append(labels, intent.Name)
		}
	}
	out.IntentAccuracy = accuracy(out.Intent, docs, labels)

	if len(c.Advertising) == 0 {
		return out, nil
	}
	if out.Hint, err = TrainHintModel(c.Advertising); err != nil {
		return out, err
	}
	docs, labels = docs[:0], labels[:0]
	for _, e := range c.Advertising {
		docs = append(docs, strings.ToLower(e.Question))
		labels = append(labels, e.Label)
	}
	out.HintAccuracy = accuracy(out.Hint, docs, labels)

	return out, nil
}

func accuracy(model nlp.IClassifier, docs, labels []string) float64 {
	if len(docs) == 0 {
		return 0
	}
	hits := 0
	for i, doc := range docs {
		if p, ok := model.Predict(doc); ok && p.Label == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(docs))
}
