package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	jwtPkg "restobot/pkg/jwt"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

// NewTokenMiddleware admits only bearer tokens with the admin role.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	unauthorized := func(reason string, err error) error {
		fields := logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"method":     ctx.Method(),
			"client_ip":  ctx.IP(),
			"reason":     reason,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		m.log.WithFields(fields).Warn("Admin token rejected")

		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, m.secretEnvKey)
	if err != nil {
		return unauthorized("verification failed", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized("invalid claims", nil)
	}

	admin, ok := jwtPkg.AdminFromClaims(claims)
	if !ok {
		return unauthorized("admin role required", nil)
	}
	ctx.Locals(jwtPkg.AdminLocalsKey, admin)

	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"subject":    admin.Subject,
	}).Debug("Admin authenticated")
	return ctx.Next()
}
