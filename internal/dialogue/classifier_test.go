package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/pkg/nlp"
)

type stubModel struct {
	label string
}

func (m stubModel) Predict(string) (nlp.Prediction, bool) {
	if m.label == "" {
		return nlp.Prediction{}, false
	}
	return nlp.Prediction{Label: m.label, Score: 1}, true
}

func newTestClassifier(t *testing.T, model nlp.IClassifier) *IntentClassifier {
	t.Helper()
	catalog, err := NewCatalog(testCatalog())
	require.NoError(t, err)
	return NewIntentClassifier(model, catalog, nlp.SnowballLemmatizer{}, DefaultThresholds().IntentGate)
}

func TestIntentClassifier_GateOverridesModel(t *testing.T) {
	classifier := newTestClassifier(t, stubModel{label: IntentDishInfo})

	result := classifier.Explain("Приветик!")

	assert.Equal(t, IntentHello, result.Intent)
	assert.Equal(t, IntentDishInfo, result.Raw)
	assert.Equal(t, "привет", result.BestExample)
	assert.GreaterOrEqual(t, result.BestScore, 0.65)
}

func TestIntentClassifier_LowConfidenceKeepsRawPrediction(t *testing.T) {
	classifier := newTestClassifier(t, stubModel{label: IntentDishInfo})

	result := classifier.Explain("добрый вечер")

	assert.Equal(t, IntentHello, result.BestIntent)
	assert.Less(t, result.BestScore, 0.65)
	assert.Equal(t, IntentDishInfo, result.Intent)
}

func TestIntentClassifier_NoIntent(t *testing.T) {
	classifier := newTestClassifier(t, stubModel{label: IntentDishInfo})

	for _, text := range []string{"", "12345", "hello world"} {
		intent, ok := classifier.Classify(text)
		assert.False(t, ok, text)
		assert.Empty(t, intent, text)
	}

	silent := newTestClassifier(t, stubModel{})
	_, ok := silent.Classify("погода сегодня хорошая")
	assert.False(t, ok)
}

func TestIntentClassifier_Idempotent(t *testing.T) {
	catalog, err := NewCatalog(testCatalog())
	require.NoError(t, err)
	model, err := TrainIntentModel(catalog, nlp.SnowballLemmatizer{})
	require.NoError(t, err)
	classifier := NewIntentClassifier(model, catalog, nlp.SnowballLemmatizer{}, 0.65)

	for _, text := range []string{"сколько стоит борщ", "добрый вечер", "что посоветуете", "ну такое"} {
		first, _ := classifier.Classify(text)
		second, _ := classifier.Classify(text)
		assert.Equal(t, first, second, text)
	}

	intent, ok := classifier.Classify("какая цена")
	assert.True(t, ok)
	assert.Equal(t, IntentDishPrice, intent)
}
