package auth

import (
	"net/http"

	"restobot/pkg/response"
)

var (
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "username or password is wrong")
	ErrLoginDisabled      = response.NewError(http.StatusNotFound, "admin login is not configured")
	ErrTokenNotIssued     = response.NewError(http.StatusInternalServerError, "failed to issue token")
)
