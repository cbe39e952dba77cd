package dialogue

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

const (
	askDishOrCategory = "Какое блюдо или категорию вы имеете в виду?"
	askDishAgain      = "Пожалуйста, уточните название блюда или категорию."
	dishProposal      = "Вы имеете в виду %s? Хотите узнать цену, состав или наличие?"
	categoryProposal  = "Из %s есть %s. Хотите узнать цену, состав или наличие?"
	emptyCategory     = "У нас нет блюд в категории %s. Попробуйте другую категорию!"
	reaskIntent       = "Что хотите узнать про %s: цену, состав или наличие?"
	priceStatement    = "Цена на %s — %d рублей. Что ещё интересует?"
	nextDishPrompt    = "Хорошо, какое блюдо обсудим теперь?"
	unnamedDish       = "блюдо"
)

// Reply is the outcome of one turn.
type Reply struct {
	Text       string               `json:"reply"`
	Intent     string               `json:"intent,omitempty"`
	Category   string               `json:"category"`
	State      entity.DialogueState `json:"state"`
	FocusDish  string               `json:"focus_dish,omitempty"`
	Advertised bool                 `json:"advertised"`
}

// Engine resolves utterances against a shared Registry. It keeps no per-session state, so
// one Engine serves every conversation; callers serialize turns of the same session.
type Engine struct {
	reg   *Registry
	rng   Random
	log   *logrus.Logger
	stats *StatsRecorder
}

func NewEngine(reg *Registry, rng Random, log *logrus.Logger) *Engine {
	return &Engine{
		reg:   reg,
		rng:   rng,
		log:   log,
		stats: NewStatsRecorder(log),
	}
}

func (e *Engine) Registry() *Registry { return e.reg }

// turn carries the slots of the current utterance through the cascade.
type turn struct {
	s           Session
	text        string
	price       int
	hasPrice    bool
	category    string
	hasCategory bool
	intent      string
	advertised  bool
}

// Process runs one utterance through the state machine and returns the reply. The
// utterance is appended to the session history before anything else happens.
func (e *Engine) Process(s Session, text string) Reply {
	started := time.Now()
	defer e.stats.Observe(started)

	s.AppendHistory(text)

	t := &turn{s: s, text: text}
	answer, category := e.resolve(t)

	s.SetLastResponse(answer)
	e.stats.Record(s, category, text, answer)
	if t.advertised {
		e.stats.Record(s, StatAdvertising, text, answer)
	}

	reply := Reply{
		Text:       answer,
		Intent:     t.intent,
		Category:   category,
		State:      s.GetState(),
		FocusDish:  s.GetFocusDish(),
		Advertised: t.advertised,
	}

	e.log.WithFields(logrus.Fields{
		"state":    reply.State,
		"intent":   reply.Intent,
		"category": reply.Category,
		"focus":    reply.FocusDish,
	}).Debug("utterance resolved")

	return reply
}

func (e *Engine) resolve(t *turn) (string, string) {
	s := t.s

	if !nlp.IsMeaningful(t.text) && !e.reg.Catalog.IsKnownPhrase(nlp.Normalize(t.text)) {
		s.SetState(entity.StateNone)
		s.SetFocusDish("")
		return e.failurePhrase(), StatFailure
	}

	if focus := s.GetFocusDish(); focus != "" && !e.reg.Catalog.HasDish(focus) {
		e.log.WithFields(logrus.Fields{
			"focus": focus,
			"error": ErrInvalidFocusDish.Error(),
		}).Warn("clearing focus dish")
		s.SetFocusDish("")
		if s.GetState() == entity.StateWaitingForIntent {
			s.SetState(entity.StateWaitingForDish)
			return askDishOrCategory, StatFailure
		}
	}

	t.price, t.hasPrice = e.reg.Extractor.Price(t.text)
	t.category, t.hasCategory = e.reg.Extractor.Category(t.text)

	if (t.hasPrice && t.price > 0) || t.hasCategory {
		if answer, ok := e.answerIntent(t, IntentFilterDishes); ok {
			return answer, StatIntent
		}
	}

	switch s.GetState() {
	case entity.StateWaitingForDish:
		return e.waitingForDish(t)
	case entity.StateWaitingForIntent:
		return e.waitingForIntent(t)
	default:
		return e.open(t)
	}
}

func (e *Engine) waitingForDish(t *turn) (string, string) {
	if dish, ok := e.reg.Extractor.Dish(t.text); ok {
		return e.proposeDish(t.s, dish), StatIntent
	}
	if t.hasCategory {
		if answer, ok := e.proposeFromCategory(t.s, t.category); ok {
			return answer, StatIntent
		}
	}
	return askDishAgain, StatFailure
}

func (e *Engine) waitingForIntent(t *turn) (string, string) {
	s := t.s
	intent, _ := e.reg.Classifier.Classify(t.text)

	if isSlotIntent(intent) {
		s.SetState(entity.StateNone)
		if answer, ok := e.answerIntent(t, intent); ok {
			return answer, StatIntent
		}
		s.SetState(entity.StateWaitingForIntent)
	}

	focus := s.GetFocusDish()
	switch {
	case intent == IntentYes && focus != "":
		dish, _ := e.reg.Catalog.Dish(focus)
		s.SetState(entity.StateNone)
		t.intent = IntentYes
		return fmt.Sprintf(priceStatement, dish.Name, dish.Price), StatIntent
	case intent == IntentNo:
		s.SetFocusDish("")
		s.SetState(entity.StateNone)
		t.intent = IntentNo
		return nextDishPrompt, StatIntent
	}

	if focus == "" {
		focus = unnamedDish
	}
	return fmt.Sprintf(reaskIntent, focus), StatFailure
}

func (e *Engine) open(t *turn) (string, string) {
	s := t.s

	if dish, ok := e.reg.Extractor.Dish(t.text); ok {
		return e.proposeDish(s, dish), StatIntent
	}

	if t.hasCategory {
		if answer, ok := e.proposeFromCategory(s, t.category); ok {
			return answer, StatIntent
		}
		return fmt.Sprintf(emptyCategory, t.category), StatFailure
	}

	if intent, ok := e.reg.Classifier.Classify(t.text); ok {
		if answer, ok := e.answerIntent(t, intent); ok {
			return answer, StatIntent
		}
	}

	if e.reg.HintsEnabled {
		answer, ok, err := e.reg.Hints.Reply(t.text)
		if err != nil {
			e.log.WithFields(logrus.Fields{"error": err.Error()}).Error("advertising hint lookup failed")
		} else if ok {
			return answer, StatAdvertising
		}
	}

	if match, ok := e.reg.Corpus.Match(t.text); ok {
		answer, advertised := e.reg.Ads.ForCorpus(match.Answer, s.GetFocusDish(), t.text)
		t.advertised = advertised
		t.intent = IntentOfftopic
		s.SetLastIntent(IntentOfftopic)
		return answer, StatGenerate
	}

	return e.failurePhrase(), StatFailure
}

func (e *Engine) proposeDish(s Session, dish string) string {
	s.SetFocusDish(dish)
	s.SetState(entity.StateWaitingForIntent)
	return fmt.Sprintf(dishProposal, dish)
}

func (e *Engine) proposeFromCategory(s Session, category string) (string, bool) {
	dishes := e.reg.Catalog.DishesInCategory(category)
	if len(dishes) == 0 {
		return "", false
	}
	dish := choice(e.rng, dishes)
	s.SetFocusDish(dish)
	s.SetState(entity.StateWaitingForIntent)
	return fmt.Sprintf(categoryProposal, category, dish), true
}

// Start answers the /start command.
func (e *Engine) Start(s Session) Reply {
	return e.command(s, e.reg.Catalog.StartMessage(), IntentHello)
}

// Help answers the /help command.
func (e *Engine) Help(s Session) Reply {
	return e.command(s, e.reg.Catalog.HelpMessage(), IntentHelp)
}

func (e *Engine) command(s Session, text, intent string) Reply {
	s.SetLastResponse(text)
	s.SetLastIntent(intent)
	return Reply{
		Text:      text,
		Intent:    intent,
		Category:  StatIntent,
		State:     s.GetState(),
		FocusDish: s.GetFocusDish(),
	}
}

// Analysis exposes every stage of the pipeline for one utterance without touching any
// session.
type Analysis struct {
	Normalized     string         `json:"normalized"`
	Lemmatized     string         `json:"lemmatized"`
	Meaningful     bool           `json:"meaningful"`
	KnownPhrase    bool           `json:"known_phrase"`
	Dish           string         `json:"dish,omitempty"`
	Category       string         `json:"category,omitempty"`
	Price          *int           `json:"price,omitempty"`
	Classification Classification `json:"classification"`
	Corpus         *CorpusMatch   `json:"corpus,omitempty"`
}

func (e *Engine) Analyze(text string) Analysis {
	normalized := nlp.Normalize(text)
	a := Analysis{
		Normalized:     normalized,
		Lemmatized:     e.reg.Extractor.Lemmatize(text),
		Meaningful:     nlp.IsMeaningful(text),
		KnownPhrase:    e.reg.Catalog.IsKnownPhrase(normalized),
		Classification: e.reg.Classifier.Explain(text),
	}
	if dish, ok := e.reg.Extractor.Dish(text); ok {
		a.Dish = dish
	}
	if category, ok := e.reg.Extractor.Category(text); ok {
		a.Category = category
	}
	if price, ok := e.reg.Extractor.Price(text); ok {
		a.Price = &price
	}
	if match, ok := e.reg.Corpus.Match(text); ok {
		a.Corpus = &match
	}
	return a
}
