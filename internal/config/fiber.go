package config

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"restobot/pkg/handlerUtil"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "restobot",
			BodyLimit:         1 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: false,
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				if fe, ok := err.(*fiber.Error); ok {
					code = fe.Code
				}
				if code >= fiber.StatusInternalServerError {
					logger.WithField("path", c.Path()).WithError(err).Error("Unhandled error")
				}
				return c.Status(code).JSON(handlerUtil.ErrorResponse{Error: err.Error()})
			},
		})

	return app
}
