package nlp

// Prediction is the label chosen by a classifier together with its decision score.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type IClassifier interface {
	// Predict returns false when the model has no evidence for any class.
	Predict(text string) (Prediction, bool)
}

type ILemmatizer interface {
	Lemmatize(text string) string
}

// ScoredText pairs a reference text with a similarity or distance value.
type ScoredText struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
