package authService

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/auth"
	"restobot/internal/entity"
	contextPkg "restobot/pkg/context"
	jwtPkg "restobot/pkg/jwt"
)

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	if s.creds.PasswordHash == "" || s.creds.TokenSecret == "" {
		return auth.LoginResponse{}, auth.ErrLoginDisabled
	}

	// The hash is always compared so a wrong username costs as much as a wrong password.
	sameUser := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.creds.Username)) == 1
	ok, err := s.hash.Matches(s.creds.PasswordHash, req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Stored admin password hash is malformed")
		return auth.LoginResponse{}, auth.ErrLoginDisabled
	}
	if !ok || !sameUser {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Rejected admin login")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := jwtPkg.SignWithSecret(map[string]interface{}{
		"sub":  s.creds.Username,
		"role": entity.RoleAdmin,
	}, s.creds.TokenTTL, s.creds.TokenSecret)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign admin token")
		return auth.LoginResponse{}, auth.ErrTokenNotIssued
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"username":   req.Username,
	}).Info("Admin logged in")

	return auth.LoginResponse{
		AccessToken:      token,
		ExpiresAt:        expiresAt,
		ExpiresInMinutes: time.Until(time.Unix(expiresAt, 0)).Round(time.Minute).Minutes(),
	}, nil
}
