package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/pkg/nlp"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	catalog, err := NewCatalog(testCatalog())
	require.NoError(t, err)
	return NewExtractor(catalog, nlp.SnowballLemmatizer{}, DefaultThresholds().FuzzyDish)
}

func TestExtractor_Dish(t *testing.T) {
	extractor := newTestExtractor(t)

	for text, want := range map[string]string{
		"сколько стоит борщ":       "борщ",
		"Хочу СОЛЯНКУ!":            "солянка",
		"а цезарь есть?":           "цезарь",
		"давайте маргориту":        "маргарита",
		"борщ или солянка":         "борщ",
		"солянка или борщ":         "борщ",
		"можно борщик со сметаной": "борщ",
	} {
		dish, ok := extractor.Dish(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, dish, text)
	}

	for _, text := range []string{"", "погода сегодня хорошая", "123"} {
		_, ok := extractor.Dish(text)
		assert.False(t, ok, text)
	}
}

func TestExtractor_Category(t *testing.T) {
	extractor := newTestExtractor(t)

	for text, want := range map[string]string{
		"покажи супы":       "суп",
		"хочу пиццу":        "пицца",
		"какие есть салаты": "салат",
		"что на десерт":     "десерт",
	} {
		category, ok := extractor.Category(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, category, text)
	}

	_, ok := extractor.Category("сколько стоит борщ")
	assert.False(t, ok)
}

func TestExtractor_Price(t *testing.T) {
	extractor := newTestExtractor(t)

	price, ok := extractor.Price("Сколько стоит ролл за 350 рублей")
	assert.True(t, ok)
	assert.Equal(t, 350, price)

	price, ok = extractor.Price("до 500 или 700")
	assert.True(t, ok)
	assert.Equal(t, 500, price)

	_, ok = extractor.Price("дешевле пятисот")
	assert.False(t, ok)
}

func TestCategoryVariants(t *testing.T) {
	assert.Equal(t, []string{"рыба", "рыбаы", "рыбая", "рыби"}, categoryVariants("рыба"))
	assert.Equal(t, []string{"суп", "супы"}, categoryVariants("суп"))
	assert.Nil(t, categoryVariants(""))
}
