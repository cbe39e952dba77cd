package dialogue

import (
	"strings"

	"restobot/pkg/nlp"
)

// Extractor finds dish, category and price slots in free text.
// Catalog order is the tie-break for every slot.
type Extractor struct {
	catalog          *Catalog
	lemmatizer       nlp.ILemmatizer
	fuzzyThreshold   float64
	dishForms        [][]string
	categoryVariants [][]string
}

func NewExtractor(catalog *Catalog, lemmatizer nlp.ILemmatizer, fuzzyThreshold float64) *Extractor {
	e := &Extractor{
		catalog:        catalog,
		lemmatizer:     lemmatizer,
		fuzzyThreshold: fuzzyThreshold,
	}

	for _, dish := range catalog.Dishes() {
		var forms []string
		for _, name := range append([]string{dish.Name}, dish.Synonyms...) {
			if form := lemmatizer.Lemmatize(name); form != "" {
				forms = append(forms, form)
			}
		}
		e.dishForms = append(e.dishForms, forms)
	}

	for _, category := range catalog.Categories() {
		e.categoryVariants = append(e.categoryVariants, categoryVariants(lemmatizer.Lemmatize(category)))
	}

	return e
}

func categoryVariants(lemma string) []string {
	if lemma == "" {
		return nil
	}
	variants := []string{lemma, lemma + "ы"}
	if strings.HasSuffix(lemma, "а") {
		stem := strings.TrimSuffix(lemma, "а")
		variants = append(variants, stem+"ая", stem+"и")
	}
	return variants
}

// Dish returns the first dish whose lemmatized name or synonym occurs in the text and
// otherwise the best fuzzy candidate scoring above the threshold.
func (e *Extractor) Dish(text string) (string, bool) {
	lemmatized := e.lemmatizer.Lemmatize(text)
	if lemmatized == "" {
		return "", false
	}

	dishes := e.catalog.Dishes()
	for i, forms := range e.dishForms {
		for _, form := range forms {
			if strings.Contains(lemmatized, form) {
				return dishes[i].Name, true
			}
		}
	}

	best, bestScore := -1, 0.0
	for i, forms := range e.dishForms {
		for _, form := range forms {
			if score := nlp.PartialRatio(lemmatized, form); score > bestScore {
				best, bestScore = i, score
			}
		}
	}
	if best >= 0 && bestScore > e.fuzzyThreshold {
		return dishes[best].Name, true
	}

	return "", false
}

func (e *Extractor) Category(text string) (string, bool) {
	lemmatized := e.lemmatizer.Lemmatize(text)
	if lemmatized == "" {
		return "", false
	}

	categories := e.catalog.Categories()
	for i, variants := range e.categoryVariants {
		for _, variant := range variants {
			if strings.Contains(lemmatized, variant) {
				return categories[i], true
			}
		}
	}
	return "", false
}

// Price reads digits from the non-lemmatized text.
func (e *Extractor) Price(text string) (int, bool) {
	return nlp.FirstNumber(text)
}

func (e *Extractor) Lemmatize(text string) string {
	return e.lemmatizer.Lemmatize(text)
}
