package handlerUtil

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"restobot/internal/dialogue"
	"restobot/pkg/log"
	"restobot/pkg/redis"
	"restobot/pkg/response"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// knownError maps a sentinel error that is not a response.Error to an HTTP answer.
type knownError struct {
	target  error
	status  int
	code    string
	message string
	level   logrus.Level
}

var knownErrors = []knownError{
	{
		target:  dialogue.ErrConfiguration,
		status:  fiber.StatusInternalServerError,
		code:    "CONFIGURATION_ERROR",
		message: "Dialogue engine is misconfigured",
		level:   logrus.ErrorLevel,
	},
	{
		target:  dialogue.ErrAdvertisingClassifierUnavailable,
		status:  fiber.StatusServiceUnavailable,
		code:    "ADVERTISING_UNAVAILABLE",
		message: "Advertising classifier is not loaded",
		level:   logrus.WarnLevel,
	},
	{
		target:  redis.ErrNotFound,
		status:  fiber.StatusNotFound,
		code:    "NOT_FOUND",
		message: "Resource not found",
		level:   logrus.WarnLevel,
	},
	{
		target:  context.DeadlineExceeded,
		status:  fiber.StatusRequestTimeout,
		code:    "REQUEST_TIMEOUT",
		message: "Request timed out",
		level:   logrus.WarnLevel,
	},
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: respErr.Error()})
	}

	for _, known := range knownErrors {
		if errors.Is(err, known.target) {
			h.logger.WithFields(fields).Log(known.level, known.message)
			return c.Status(known.status).JSON(ErrorResponse{
				Error: known.message,
				Code:  known.code,
			})
		}
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
