package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowballLemmatizerFoldsInflections(t *testing.T) {
	l := SnowballLemmatizer{}
	assert.Equal(t, l.Lemmatize("пицца"), l.Lemmatize("Пиццы!"))
	assert.Equal(t, l.Lemmatize("борщ"), l.Lemmatize("борща"))
	assert.Equal(t, "", l.Lemmatize("1234"))
}

func TestPlainLemmatizerCollapsesSpaces(t *testing.T) {
	assert.Equal(t, "покажи супы", PlainLemmatizer{}.Lemmatize("  Покажи   супы "))
}

func TestNewLemmatizer(t *testing.T) {
	l, err := NewLemmatizer("")
	require.NoError(t, err)
	assert.IsType(t, SnowballLemmatizer{}, l)

	l, err = NewLemmatizer(LemmatizerNone)
	require.NoError(t, err)
	assert.IsType(t, PlainLemmatizer{}, l)

	_, err = NewLemmatizer("pymorphy")
	assert.Error(t, err)
}
