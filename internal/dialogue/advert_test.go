package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/entity"
)

func newTestInjector(t *testing.T, rng Random, mode string) *AdInjector {
	t.Helper()
	catalog, err := NewCatalog(testCatalog())
	require.NoError(t, err)
	injector, err := NewAdInjector(catalog, rng, mode, DefaultThresholds())
	require.NoError(t, err)
	return injector
}

func TestAdInjector_RandomMode(t *testing.T) {
	always := newTestInjector(t, fixedRandom{float: 0}, AdModeRandom)

	answer, ok := always.ForIntent("Привет!", IntentHello, "борщ", "привет")
	assert.True(t, ok)
	assert.Equal(t, "Привет! Кстати, у нас есть солянка — отличный выбор для вкусного ужина!", answer)

	answer, ok = always.ForIntent("Цена 350.", IntentDishPrice, "", "сколько")
	assert.False(t, ok)
	assert.Equal(t, "Цена 350.", answer)

	// 0.25 is above the intent probability and below the corpus one.
	between := newTestInjector(t, fixedRandom{float: 0.25}, AdModeRandom)
	_, ok = between.ForIntent("Привет!", IntentHello, "", "привет")
	assert.False(t, ok)
	_, ok = between.ForCorpus("Хорошо.", "", "как дела")
	assert.True(t, ok)
}

func TestAdInjector_KeywordMode(t *testing.T) {
	injector := newTestInjector(t, fixedRandom{float: 0}, AdModeKeyword)

	answer, _ := injector.ForCorpus("Понимаю", "", "Я так ГОЛОДЕН")
	assert.Equal(t, "Понимаю. Кстати, раз уж речь зашла о еде, у нас в ресторане подают отличный крем-суп из тыквы!", answer)

	answer, _ = injector.ForCorpus("Да уж!", "", "сегодня холодно")
	assert.Equal(t, "Да уж! В такую погоду идеально зайти в наш ресторан и согреться горячим шоколадом с круассаном!", answer)

	answer, _ = injector.ForCorpus("Ясно.", "", "как дела")
	assert.Equal(t, "Ясно. Заходите к нам на бизнес-ланч!", answer)
}

func TestAdInjector_Off(t *testing.T) {
	injector := newTestInjector(t, fixedRandom{float: 0}, AdModeOff)

	answer, ok := injector.ForCorpus("Ясно.", "", "я голоден")
	assert.False(t, ok)
	assert.Equal(t, "Ясно.", answer)
}

func TestAdInjector_UnknownMode(t *testing.T) {
	catalog, err := NewCatalog(testCatalog())
	require.NoError(t, err)

	_, err = NewAdInjector(catalog, noAds, "popup", DefaultThresholds())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestHintResponder(t *testing.T) {
	examples := []entity.AdvertisingExample{
		{Label: entity.AdvertisingHint, Question: "мне грустно", Answer: "Поднимите настроение тирамису!"},
		{Label: entity.AdvertisingNeutral, Question: "как тебя зовут", Answer: "Ресто."},
	}
	model, err := TrainHintModel(examples)
	require.NoError(t, err)
	responder := NewHintResponder(model, examples, DefaultThresholds().HintDistance)

	answer, ok, err := responder.Reply("Мне грустно")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Поднимите настроение тирамису!", answer)

	_, ok, err = responder.Reply("как тебя зовут")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHintResponder_Unavailable(t *testing.T) {
	var responder *HintResponder

	_, _, err := responder.Reply("мне грустно")
	assert.ErrorIs(t, err, ErrAdvertisingClassifierUnavailable)

	_, _, err = NewHintResponder(nil, nil, 0.3).Reply("мне грустно")
	assert.ErrorIs(t, err, ErrAdvertisingClassifierUnavailable)
}
