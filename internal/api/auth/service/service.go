package authService

import (
	"context"

	"github.com/sirupsen/logrus"

	"restobot/internal/api/auth"
	"restobot/pkg/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
}

type authService struct {
	log   *logrus.Logger
	hash  bcrypt.IBcrypt
	creds auth.Credentials
}

// NewAuthService disables login when creds carries no password hash or token secret.
func NewAuthService(log *logrus.Logger, hash bcrypt.IBcrypt, creds auth.Credentials) IAuthService {
	return &authService{
		log:   log,
		hash:  hash,
		creds: creds,
	}
}
