package nlp

import (
	"errors"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LinearModel is a one-vs-rest linear classifier over TF-IDF features. Offline trainers
// export their coefficients in this shape; TrainCentroid fits one in-process.
type LinearModel struct {
	Classes    []string    `json:"classes"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
	Vectorizer *Vectorizer `json:"vectorizer"`
}

// TrainCentroid fits a nearest-centroid model: each class weight vector is the normalized
// mean of its training vectors. Classes keep their first-seen order.
func TrainCentroid(docs, labels []string, vec *Vectorizer) (*LinearModel, error) {
	if len(docs) != len(labels) {
		return nil, fmt.Errorf("nlp: %d documents but %d labels", len(docs), len(labels))
	}
	if err := vec.Fit(docs); err != nil {
		return nil, err
	}

	model := &LinearModel{Vectorizer: vec}
	classIndex := make(map[string]int)
	for i, doc := range docs {
		label := labels[i]
		c, ok := classIndex[label]
		if !ok {
			c = len(model.Classes)
			classIndex[label] = c
			model.Classes = append(model.Classes, label)
			model.Weights = append(model.Weights, make([]float64, vec.Size()))
			model.Intercepts = append(model.Intercepts, 0)
		}
		for idx, x := range vec.Transform(doc) {
			model.Weights[c][idx] += x
		}
	}

	for _, w := range model.Weights {
		var norm float64
		for _, x := range w {
			norm += x * x
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for i := range w {
			w[i] /= norm
		}
	}

	return model, nil
}

// Predict returns the class with the highest decision value. Ties go to the earlier class.
func (m *LinearModel) Predict(text string) (Prediction, bool) {
	if len(m.Classes) == 0 {
		return Prediction{}, false
	}

	x := m.Vectorizer.Transform(text)
	if len(x) == 0 {
		return Prediction{}, false
	}

	best := Prediction{Label: m.Classes[0], Score: x.Dot(m.Weights[0]) + m.Intercepts[0]}
	for c := 1; c < len(m.Classes); c++ {
		score := x.Dot(m.Weights[c]) + m.Intercepts[c]
		if score > best.Score {
			best = Prediction{Label: m.Classes[c], Score: score}
		}
	}
	return best, true
}

func (m *LinearModel) Validate() error {
	if m.Vectorizer == nil {
		return errors.New("model has no vectorizer")
	}
	if err := m.Vectorizer.Validate(); err != nil {
		return err
	}
	if len(m.Classes) == 0 {
		return errors.New("model has no classes")
	}
	if len(m.Weights) != len(m.Classes) || len(m.Intercepts) != len(m.Classes) {
		return fmt.Errorf("model has %d classes, %d weight rows, %d intercepts",
			len(m.Classes), len(m.Weights), len(m.Intercepts))
	}
	for i, w := range m.Weights {
		if len(w) != m.Vectorizer.Size() {
			return fmt.Errorf("weights of class %q have %d features, vocabulary has %d",
				m.Classes[i], len(w), m.Vectorizer.Size())
		}
	}
	return nil
}

func (m *LinearModel) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func UnmarshalLinearModel(data []byte) (*LinearModel, error) {
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode linear model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid linear model: %w", err)
	}
	return &m, nil
}
