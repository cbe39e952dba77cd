package dialogue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

func TestTrainModels_IntentOnly(t *testing.T) {
	models, err := TrainModels(Components{Catalog: testCatalog()}, nlp.LemmatizerSnowball)
	require.NoError(t, err)

	require.NotNil(t, models.Intent)
	assert.Nil(t, models.Hint)
	assert.Len(t, models.Intent.Classes, len(testCatalog().Intents))
	assert.Greater(t, models.IntentAccuracy, 0.5)
	assert.LessOrEqual(t, models.IntentAccuracy, 1.0)
}

func TestTrainModels_ArtifactsLoadBack(t *testing.T) {
	components := Components{
		Catalog: testCatalog(),
		Advertising: []entity.AdvertisingExample{
			{Label: entity.AdvertisingHint, Question: "что у вас вкусного", Answer: "Попробуйте борщ!"},
			{Label: entity.AdvertisingNeutral, Question: "который час", Answer: "Не знаю."},
		},
	}
	models, err := TrainModels(components, nlp.LemmatizerSnowball)
	require.NoError(t, err)
	require.NotNil(t, models.Hint)
	assert.Equal(t, 1.0, models.HintAccuracy)

	data, err := models.Intent.Marshal()
	require.NoError(t, err)
	loaded, err := nlp.UnmarshalLinearModel(data)
	require.NoError(t, err)

	components.IntentModel = loaded
	_, err = NewRegistry(components, RegistryOptions{}, noAds)
	require.NoError(t, err)
}

func TestTrainModels_RejectsBrokenCatalog(t *testing.T) {
	catalog := testCatalog()
	catalog.Intents = catalog.Intents[:3]

	_, err := TrainModels(Components{Catalog: catalog}, nlp.LemmatizerSnowball)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestTrainModels_UnknownLemmatizer(t *testing.T) {
	_, err := TrainModels(Components{Catalog: testCatalog()}, "porter")
	assert.True(t, errors.Is(err, ErrConfiguration))
}
