package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"restobot/internal/entity"
)

const AdminLocalsKey = "admin"

var (
	ErrEmptyHeader   = errors.New("empty Authorization header")
	ErrInvalidFormat = errors.New("invalid Authorization format")
	ErrNoSecret      = errors.New("JWT secret not configured")
)

// Sign issues an HS256 token with the secret from JWT_ACCESS_TOKEN_SECRET.
func Sign(data map[string]interface{}, expiresIn time.Duration) (string, int64, error) {
	secret := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if secret == "" {
		return "", 0, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET not set")
	}
	return SignWithSecret(data, expiresIn, secret)
}

func SignWithSecret(data map[string]interface{}, expiresIn time.Duration, secret string) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	claims := jwt.MapClaims{}
	for k, v := range data {
		claims[k] = v
	}
	claims["exp"] = expiredAt

	logrus.WithField("claims", claims).Debug("Creating token with claims")

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// SignAdmin issues an operator token for cmd tooling and tests.
func SignAdmin(subject string, expiresIn time.Duration, secret string) (string, error) {
	token, _, err := SignWithSecret(map[string]interface{}{
		"sub":  subject,
		"role": entity.RoleAdmin,
	}, expiresIn, secret)
	return token, err
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return nil, ErrEmptyHeader
	}

	accessToken, ok := strings.CutPrefix(header, "Bearer ")
	accessToken = strings.TrimSpace(accessToken)
	if !ok || accessToken == "" {
		return nil, ErrInvalidFormat
	}

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		logrus.WithField("env", secretEnvKey).Error("JWT secret environment variable not set")
		return nil, ErrNoSecret
	}

	return ParseToken(accessToken, secret)
}

func ParseToken(accessToken, secret string) (*jwt.Token, error) {
	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
}

// AdminFromClaims accepts only tokens that carry a subject and the admin role.
func AdminFromClaims(claims jwt.MapClaims) (entity.AdminLoginData, bool) {
	subject, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if subject == "" || role != entity.RoleAdmin {
		return entity.AdminLoginData{}, false
	}
	return entity.AdminLoginData{Subject: subject, Role: role}, true
}

func GetAdminLoginData(c *fiber.Ctx) (entity.AdminLoginData, error) {
	admin, ok := c.Locals(AdminLocalsKey).(entity.AdminLoginData)
	if !ok {
		return entity.AdminLoginData{}, fiber.ErrUnauthorized
	}
	return admin, nil
}
