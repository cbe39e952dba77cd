package dialogue

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"restobot/internal/entity"
)

// fixedRandom always picks the first candidate and returns the same float.
type fixedRandom struct {
	float float64
}

func (fixedRandom) Intn(int) int { return 0 }

func (r fixedRandom) Float64() float64 { return r.float }

var (
	noAds   = fixedRandom{float: 0.99}
	testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func testCatalog() entity.Catalog {
	return entity.Catalog{
		Dishes: []entity.Dish{
			{Name: "борщ", Price: 350, Description: "свекольный суп со сметаной", Categories: []string{"суп"}, Synonyms: []string{"борщик"}},
			{Name: "солянка", Price: 420, Description: "мясная солянка с оливками", Categories: []string{"суп"}},
			{Name: "цезарь", Price: 450, Description: "салат с курицей и пармезаном", Categories: []string{"салат"}},
			{Name: "тирамису", Price: 300, Categories: []string{"десерт"}},
			{Name: "маргарита", Price: 550, Description: "томаты и моцарелла", Categories: []string{"пицца"}},
		},
		Categories: []string{"суп", "салат", "пицца", "десерт", "вино"},
		Intents: []entity.Intent{
			{Name: IntentHello, Examples: []string{"привет", "здравствуйте", "добрый день"}, Responses: []string{"Привет! Чем могу помочь?"}},
			{Name: IntentHelp, Examples: []string{"помощь", "что ты умеешь"}, Responses: []string{"Я подскажу цены и состав блюд."}},
			{Name: IntentYes, Examples: []string{"да", "конечно", "ага"}, Responses: []string{"Отлично!"}},
			{Name: IntentNo, Examples: []string{"нет", "не надо"}, Responses: []string{"Хорошо."}},
			{Name: IntentDishPrice, Examples: []string{"сколько стоит", "какая цена", "почем"}, Responses: []string{"[dish_name] стоит [price] рублей."}},
			{Name: IntentDishAvailability, Examples: []string{"есть ли в наличии"}, Responses: []string{"[dish_name] сейчас в наличии."}},
			{Name: IntentDishInfo, Examples: []string{"какой состав", "из чего сделано"}, Responses: []string{"[dish_name]: [description]."}},
			{Name: IntentOrderDish, Examples: []string{"хочу заказать", "оформи заказ"}, Responses: []string{"Добавил [dish_name] в заказ."}},
			{Name: IntentDishRecommendation, Examples: []string{"что посоветуешь", "порекомендуй"}, Responses: []string{"Попробуйте [dish_name]!"}},
			{Name: IntentMenuTypes, Examples: []string{"что есть в меню", "покажи меню"}, Responses: []string{"Вот меню."}},
			{Name: IntentFilterDishes, Examples: []string{"покажи блюда до", "что есть дешевле"}, Responses: []string{"Фильтр."}},
		},
		FailurePhrases: []string{"Не понял вас. Может, попробуете [dish_name]?"},
		AdMessages:     []string{"Заходите к нам на бизнес-ланч!"},
		StartMessage:   "Здравствуйте! Я бот ресторана.",
		HelpMessage:    "Спросите меня о блюдах, ценах и составе.",
	}
}

func testDialogues() []entity.DialogueEntry {
	return []entity.DialogueEntry{
		{Question: "расскажи анекдот", Answer: "Колобок повесился."},
		{Question: "как тебя зовут", Answer: "Меня зовут Ресто."},
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEngine(t *testing.T, rng Random, mutate func(*Components, *RegistryOptions)) *Engine {
	t.Helper()

	components := Components{Catalog: testCatalog(), Dialogues: testDialogues()}
	opts := RegistryOptions{CorpusMode: CorpusModeVector, AdMode: AdModeRandom}
	if mutate != nil {
		mutate(&components, &opts)
	}

	reg, err := NewRegistry(components, opts, rng)
	require.NoError(t, err)
	return NewEngine(reg, rng, testLogger())
}

func newSession() *entity.ChatSession {
	return entity.NewChatSession("test", entity.ChannelHTTP, testNow)
}
