package dialogue

import (
	"github.com/go-playground/validator/v10"

	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

const (
	IntentHello              = "hello"
	IntentHelp               = "help"
	IntentYes                = "yes"
	IntentNo                 = "no"
	IntentDishPrice          = "dish_price"
	IntentDishAvailability   = "dish_availability"
	IntentDishInfo           = "dish_info"
	IntentOrderDish          = "order_dish"
	IntentDishRecommendation = "dish_recommendation"
	IntentMenuTypes          = "menu_types"
	IntentFilterDishes       = "filter_dishes"
	IntentOfftopic           = "offtopic"
)

// RequiredIntents are dispatched on by name and must exist in every catalog.
var RequiredIntents = []string{
	IntentHello, IntentYes, IntentNo,
	IntentDishPrice, IntentDishAvailability, IntentDishInfo, IntentOrderDish,
	IntentDishRecommendation, IntentMenuTypes, IntentFilterDishes,
}

func isSlotIntent(name string) bool {
	switch name {
	case IntentDishPrice, IntentDishAvailability, IntentDishInfo, IntentOrderDish:
		return true
	}
	return false
}

// Catalog is the validated, read-only index over entity.Catalog.
type Catalog struct {
	raw          entity.Catalog
	dishIndex    map[string]int
	intentIndex  map[string]int
	knownPhrases map[string]bool
}

func NewCatalog(raw entity.Catalog) (*Catalog, error) {
	if err := validator.New().Struct(raw); err != nil {
		return nil, configError("catalog: %v", err)
	}

	c := &Catalog{
		raw:          raw,
		dishIndex:    make(map[string]int, len(raw.Dishes)),
		intentIndex:  make(map[string]int, len(raw.Intents)),
		knownPhrases: make(map[string]bool),
	}

	categories := make(map[string]bool, len(raw.Categories))
	for _, name := range raw.Categories {
		if categories[name] {
			return nil, configError("catalog: duplicate category %q", name)
		}
		if nlp.Normalize(name) == "" {
			return nil, configError("catalog: category %q has no matchable letters", name)
		}
		categories[name] = true
	}

	for i, dish := range raw.Dishes {
		if _, ok := c.dishIndex[dish.Name]; ok {
			return nil, configError("catalog: duplicate dish %q", dish.Name)
		}
		if nlp.Normalize(dish.Name) == "" {
			return nil, configError("catalog: dish %q has no matchable letters", dish.Name)
		}
		for _, category := range dish.Categories {
			if !categories[category] {
				return nil, configError("catalog: dish %q references unknown category %q", dish.Name, category)
			}
		}
		c.dishIndex[dish.Name] = i
	}

	for i, intent := range raw.Intents {
		if _, ok := c.intentIndex[intent.Name]; ok {
			return nil, configError("catalog: duplicate intent %q", intent.Name)
		}
		c.intentIndex[intent.Name] = i
		for _, example := range intent.Examples {
			if cleaned := nlp.Normalize(example); cleaned != "" {
				c.knownPhrases[cleaned] = true
			}
		}
	}

	for _, name := range RequiredIntents {
		if _, ok := c.intentIndex[name]; !ok {
			return nil, configError("catalog: required intent %q is missing", name)
		}
	}

	return c, nil
}

func (c *Catalog) Dishes() []entity.Dish { return c.raw.Dishes }

func (c *Catalog) DishNames() []string {
	names := make([]string, len(c.raw.Dishes))
	for i, d := range c.raw.Dishes {
		names[i] = d.Name
	}
	return names
}

func (c *Catalog) Dish(name string) (entity.Dish, bool) {
	i, ok := c.dishIndex[name]
	if !ok {
		return entity.Dish{}, false
	}
	return c.raw.Dishes[i], true
}

func (c *Catalog) HasDish(name string) bool {
	_, ok := c.dishIndex[name]
	return ok
}

func (c *Catalog) Categories() []string { return c.raw.Categories }

func (c *Catalog) DishesInCategory(category string) []string {
	var names []string
	for _, d := range c.raw.Dishes {
		if d.InCategory(category) {
			names = append(names, d.Name)
		}
	}
	return names
}

func (c *Catalog) DishesUpTo(price int) []string {
	var names []string
	for _, d := range c.raw.Dishes {
		if d.Price <= price {
			names = append(names, d.Name)
		}
	}
	return names
}

func (c *Catalog) Intent(name string) (entity.Intent, bool) {
	i, ok := c.intentIndex[name]
	if !ok {
		return entity.Intent{}, false
	}
	return c.raw.Intents[i], true
}

func (c *Catalog) Intents() []entity.Intent { return c.raw.Intents }

// IsKnownPhrase reports whether normalized text equals a normalized intent example.
func (c *Catalog) IsKnownPhrase(normalized string) bool { return c.knownPhrases[normalized] }

func (c *Catalog) FailurePhrases() []string { return c.raw.FailurePhrases }

func (c *Catalog) AdMessages() []string { return c.raw.AdMessages }

func (c *Catalog) StartMessage() string { return c.raw.StartMessage }

func (c *Catalog) HelpMessage() string { return c.raw.HelpMessage }
