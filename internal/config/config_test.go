package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/dialogue"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, dialogue.CorpusModeVector, cfg.CorpusMode)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, "configs/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, time.Hour, cfg.AdminTokenTTL)

	opts := cfg.LoadOptions()
	assert.Empty(t, opts.AdsPath)
	assert.False(t, opts.HintsEnabled)
}

func TestLoadAppConfigRejectsUnknownModes(t *testing.T) {
	t.Setenv("AD_MODE", "always")

	_, err := LoadAppConfig()
	assert.Error(t, err)
}

func TestLoadOptionsWithHints(t *testing.T) {
	cfg := AppConfig{
		CatalogPath:    "c.yaml",
		AdsPath:        "ads.txt",
		HintModelPath:  "s3://models/hint.json",
		AdHintsEnabled: true,
		AdMode:         dialogue.AdModeKeyword,
	}

	opts := cfg.LoadOptions()
	assert.Equal(t, "ads.txt", opts.AdsPath)
	assert.Equal(t, "s3://models/hint.json", opts.HintModelPath)
	assert.True(t, opts.HintsEnabled)
	assert.Equal(t, dialogue.AdModeKeyword, opts.AdMode)
}

type fakeBucket struct {
	objects map[string][]byte
}

func (f fakeBucket) Download(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (f fakeBucket) Upload(_ context.Context, bucket, key string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[bucket+"/"+key] = data
	return "s3://" + bucket + "/" + key, nil
}

func TestArtifactReader(t *testing.T) {
	ctx := context.Background()
	bucket := fakeBucket{objects: map[string][]byte{"models/intent.json": []byte(`{}`)}}

	reader := NewArtifactReader(bucket)
	data, err := reader.Read(ctx, "s3://models/intent.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)

	_, err = reader.Read(ctx, "s3://models/missing.json")
	assert.Error(t, err)

	data, err = reader.Read(ctx, "../../configs/dialogues.txt")
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("\n")))

	_, err = NewArtifactReader(nil).Read(ctx, "s3://models/intent.json")
	assert.Error(t, err)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := AppConfig{
		Port:          "0",
		CatalogPath:   "../../configs/catalog.yaml",
		DialoguesPath: "../../configs/dialogues.txt",
		CorpusMode:    dialogue.CorpusModeVector,
		AdMode:        dialogue.AdModeOff,
		SessionStore:  SessionStoreMemory,
	}

	server, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithAppConfig(cfg),
		WithValidator(NewValidator()),
		WithDatabase(),
		WithMiddleware(),
		WithWhatsappClient(context.Background()),
		WithDialogueEngine(context.Background()),
		WithBcryptUtils(),
		WithUtils(),
	)
	require.NoError(t, err)
	require.NoError(t, server.RegisterHandler(context.Background()))
	server.Mount()

	return server
}

func TestServerRoutes(t *testing.T) {
	server := newTestServer(t)

	for _, target := range []string{"/", "/metrics", "/api/v1/menu/categories"} {
		resp, err := server.engine.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, target)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), target)
	}

	resp, err := server.engine.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/chat/sessions/nobody", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// No password hash configured.
	login := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"admin","password":"x"}`)))
	login.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = server.engine.Test(login)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNewServerRequiresEngine(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewServer(WithFiber(NewFiber(logger)), WithLogger(logger), WithMiddleware())
	assert.Error(t, err)
}

func TestRedisSessionStoreNeedsClient(t *testing.T) {
	server := newTestServer(t)
	server.cfg.SessionStore = SessionStoreRedis

	assert.Error(t, server.RegisterHandler(context.Background()))
}

func TestDialogueEngineRejectsBrokenCatalog(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithAppConfig(AppConfig{CatalogPath: "../../configs/missing.yaml"}),
		WithMiddleware(),
		WithDialogueEngine(context.Background()),
	)
	assert.ErrorIs(t, err, dialogue.ErrConfiguration)
}
