package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"restobot/internal/entity"
)

const (
	continuePrompt     = " Что ещё интересует?"
	recommendPrompt    = " Хотите узнать цену или состав %s?"
	menuSummary        = "У нас есть %s и блюда вроде %s. Что интересно?"
	yesAfterHello      = "Отлично! У нас есть %s. Что хотите узнать?"
	yesNoDish          = "Назови блюдо, чтобы я рассказал подробнее!"
	yesAfterMenu       = "У нас есть %s. Назови одно, чтобы узнать больше!"
	yesAfterOfftopic   = "Хорошо, давай продолжим! Хочешь узнать про блюда?"
	yesDefault         = "Хорошо, что интересует? Блюда, цены или что-то ещё?"
	filterByPrice      = "До %d рублей есть: %s."
	filterByPriceEmpty = "Извините, нет блюд до %d рублей."
	filterByCategory   = "В категории %s есть: %s."
	filterCategoryNone = "Извините, нет блюд в категории %s."
	filterNoSlots      = "Укажите цену или категорию для фильтрации."
	unknownDish        = "Извините, такого блюда нет в меню."
	defaultDescription = "вкусное блюдо"
)

// answerIntent builds the reply for a resolved intent. It returns false when the catalog
// has no response templates for it, letting the caller fall through the cascade.
func (e *Engine) answerIntent(t *turn, name string) (string, bool) {
	intent, ok := e.reg.Catalog.Intent(name)
	if !ok || len(intent.Responses) == 0 {
		return "", false
	}

	s := t.s
	answer := choice(e.rng, intent.Responses)

	switch name {
	case IntentDishPrice, IntentDishAvailability, IntentDishInfo, IntentOrderDish:
		focus := s.GetFocusDish()
		if focus == "" {
			var (
				reply string
				done  bool
			)
			focus, reply, done = e.recoverDish(t)
			if done {
				t.intent = name
				return reply, true
			}
		}
		dish, ok := e.reg.Catalog.Dish(focus)
		if !ok {
			return unknownDish, true
		}
		answer = fillDish(answer, dish) + continuePrompt

	case IntentDishRecommendation:
		dish := choice(e.rng, e.reg.Catalog.DishNames())
		s.SetFocusDish(dish)
		answer = strings.ReplaceAll(answer, "[dish_name]", dish) + fmt.Sprintf(recommendPrompt, dish)

	case IntentMenuTypes:
		categories := sample(e.rng, e.reg.Catalog.Categories(), 3)
		dishes := sample(e.rng, e.reg.Catalog.DishNames(), 2)
		answer = fmt.Sprintf(menuSummary, strings.Join(categories, ", "), strings.Join(dishes, ", "))
		s.SetFocusDish("")

	case IntentYes:
		answer = e.confirm(s)

	case IntentNo:
		s.SetFocusDish("")
		s.SetState(entity.StateNone)
		answer = nextDishPrompt

	case IntentFilterDishes:
		answer = e.filterDishes(t)
	}

	answer, t.advertised = e.reg.Ads.ForIntent(answer, name, s.GetFocusDish(), t.text)

	s.SetLastIntent(name)
	t.intent = name
	e.stats.Intent(name)
	return answer, true
}

// recoverDish looks for a dish when a slot intent arrives without one in focus: first in
// an advertisement of the previous reply, then in the category named by the utterance,
// then in the recent history after a menu overview. When it gives up or proposes a dish
// from the category it returns the final reply and done.
func (e *Engine) recoverDish(t *turn) (dish, reply string, done bool) {
	s := t.s

	if last := s.GetLastResponse(); strings.Contains(last, adMarker) {
		if found, ok := e.reg.Extractor.Dish(last); ok {
			s.SetFocusDish(found)
			return found, "", false
		}
	}

	if t.hasCategory {
		if answer, ok := e.proposeFromCategory(s, t.category); ok {
			return "", answer, true
		}
	}

	if s.GetLastIntent() == IntentMenuTypes {
		history := s.GetHistory()
		for i := len(history) - 1; i >= 0; i-- {
			if found, ok := e.reg.Extractor.Dish(history[i]); ok {
				s.SetFocusDish(found)
				return found, "", false
			}
			if category, ok := e.reg.Extractor.Category(history[i]); ok {
				if dishes := e.reg.Catalog.DishesInCategory(category); len(dishes) > 0 {
					found := choice(e.rng, dishes)
					s.SetFocusDish(found)
					return found, "", false
				}
			}
		}
	}

	s.SetState(entity.StateWaitingForDish)
	return "", askDishOrCategory, true
}

func (e *Engine) confirm(s Session) string {
	switch last := s.GetLastIntent(); {
	case last == IntentHello:
		categories := sample(e.rng, e.reg.Catalog.Categories(), 3)
		return fmt.Sprintf(yesAfterHello, strings.Join(categories, ", "))
	case isSlotIntent(last):
		dish, ok := e.reg.Catalog.Dish(s.GetFocusDish())
		if !ok {
			return yesNoDish
		}
		return fmt.Sprintf(priceStatement, dish.Name, dish.Price)
	case last == IntentMenuTypes:
		dishes := sample(e.rng, e.reg.Catalog.DishNames(), 2)
		return fmt.Sprintf(yesAfterMenu, strings.Join(dishes, ", "))
	case last == IntentOfftopic:
		return yesAfterOfftopic
	default:
		return yesDefault
	}
}

func (e *Engine) filterDishes(t *turn) string {
	if t.hasPrice && t.price > 0 {
		dishes := e.reg.Catalog.DishesUpTo(t.price)
		if len(dishes) == 0 {
			return fmt.Sprintf(filterByPriceEmpty, t.price)
		}
		return fmt.Sprintf(filterByPrice, t.price, strings.Join(dishes, ", "))
	}

	if t.hasCategory {
		dishes := e.reg.Catalog.DishesInCategory(t.category)
		if len(dishes) == 0 {
			return fmt.Sprintf(filterCategoryNone, t.category)
		}
		t.s.SetFocusDish(choice(e.rng, dishes))
		t.s.SetState(entity.StateWaitingForIntent)
		return fmt.Sprintf(filterByCategory, t.category, strings.Join(dishes, ", "))
	}

	return filterNoSlots
}

func fillDish(template string, dish entity.Dish) string {
	description := dish.Description
	if description == "" {
		description = defaultDescription
	}
	return strings.NewReplacer(
		"[dish_name]", dish.Name,
		"[price]", strconv.Itoa(dish.Price),
		"[description]", description,
	).Replace(template)
}

func (e *Engine) failurePhrase() string {
	phrase := choice(e.rng, e.reg.Catalog.FailurePhrases())
	return strings.ReplaceAll(phrase, "[dish_name]", choice(e.rng, e.reg.Catalog.DishNames()))
}
