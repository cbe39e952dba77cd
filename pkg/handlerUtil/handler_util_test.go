package handlerUtil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/dialogue"
	"restobot/pkg/response"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func serve(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := New(logger)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", err, c.Path(), "test")
	})

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleResponseError(t *testing.T) {
	status, body := serve(t, fmt.Errorf("lookup: %w", response.NewError(fiber.StatusNotFound, "dish not found")))

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "dish not found", body.Error)
}

func TestHandleKnownErrors(t *testing.T) {
	status, body := serve(t, fmt.Errorf("%w: catalog is empty", dialogue.ErrConfiguration))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "CONFIGURATION_ERROR", body.Code)

	status, body = serve(t, dialogue.ErrAdvertisingClassifierUnavailable)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "ADVERTISING_UNAVAILABLE", body.Code)
}

func TestHandleUnexpectedErrorCarriesTraceID(t *testing.T) {
	status, body := serve(t, errors.New("boom"))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "req-1", body.TraceID)
}
