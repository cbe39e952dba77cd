package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"restobot/internal/dialogue"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// AppConfig is read from the environment after .env has been loaded.
type AppConfig struct {
	Port string `envconfig:"APP_PORT" default:"3000"`
	Env  string `envconfig:"APP_ENV" default:"development"`

	CatalogPath     string `envconfig:"CATALOG_PATH" default:"configs/catalog.yaml" validate:"required"`
	DialoguesPath   string `envconfig:"DIALOGUES_PATH" default:"configs/dialogues.txt"`
	AdsPath         string `envconfig:"ADS_PATH" default:"configs/ads_dialogues_tagged.txt"`
	IntentModelPath string `envconfig:"INTENT_MODEL_PATH"`
	HintModelPath   string `envconfig:"HINT_MODEL_PATH"`

	CorpusMode     string `envconfig:"CORPUS_MODE" default:"vector" validate:"oneof=vector edit"`
	AdMode         string `envconfig:"AD_MODE" default:"random" validate:"oneof=random keyword off"`
	AdHintsEnabled bool   `envconfig:"AD_HINTS_ENABLED" default:"false"`
	Lemmatizer     string `envconfig:"LEMMATIZER" default:"snowball" validate:"oneof=snowball none"`
	RandomSeed     int64  `envconfig:"RANDOM_SEED" default:"0"`

	SessionStore    string        `envconfig:"SESSION_STORE" default:"memory" validate:"oneof=redis memory"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	ChatLogEnabled  bool          `envconfig:"CHAT_LOG_ENABLED" default:"false"`
	WhatsappEnabled bool          `envconfig:"WHATSAPP_ENABLED" default:"false"`

	AdminUsername     string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	AdminTokenTTL     time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"1h"`
	TokenSecret       string        `envconfig:"JWT_ACCESS_TOKEN_SECRET"`
}

func LoadAppConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func (c AppConfig) LoadOptions() dialogue.LoadOptions {
	opts := dialogue.LoadOptions{
		CatalogPath:     c.CatalogPath,
		DialoguesPath:   c.DialoguesPath,
		IntentModelPath: c.IntentModelPath,
		RegistryOptions: dialogue.RegistryOptions{
			CorpusMode:   c.CorpusMode,
			AdMode:       c.AdMode,
			HintsEnabled: c.AdHintsEnabled,
			Lemmatizer:   c.Lemmatizer,
		},
	}
	// The tagged corpus and hint model only matter to the hint responder.
	if c.AdHintsEnabled {
		opts.AdsPath = c.AdsPath
		opts.HintModelPath = c.HintModelPath
	}
	return opts
}
