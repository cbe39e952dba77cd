package entity

type Dish struct {
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Price       int      `yaml:"price" json:"price" validate:"min=0"`
	Description string   `yaml:"description" json:"description"`
	Categories  []string `yaml:"categories" json:"categories" validate:"dive,required"`
	Synonyms    []string `yaml:"synonyms" json:"synonyms" validate:"dive,required"`
}

func (d Dish) InCategory(category string) bool {
	for _, c := range d.Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Intent struct {
	Name      string   `yaml:"name" json:"name" validate:"required"`
	Examples  []string `yaml:"examples" json:"examples" validate:"dive,required"`
	Responses []string `yaml:"responses" json:"responses"`
}

type DialogueEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const (
	AdvertisingHint    = "advertising_hint"
	AdvertisingNeutral = "neutral"
)

type AdvertisingExample struct {
	Label    string `json:"label"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Catalog is the static menu and phrase book. Slice order is the matching order.
type Catalog struct {
	Dishes         []Dish   `yaml:"dishes" validate:"required,min=1,dive"`
	Categories     []string `yaml:"categories" validate:"required,min=1,dive,required"`
	Intents        []Intent `yaml:"intents" validate:"required,min=1,dive"`
	FailurePhrases []string `yaml:"failure_phrases" validate:"required,min=1,dive,required"`
	AdMessages     []string `yaml:"ad_messages" validate:"dive,required"`
	StartMessage   string   `yaml:"start_message" validate:"required"`
	HelpMessage    string   `yaml:"help_message" validate:"required"`
}
