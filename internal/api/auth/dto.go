package auth

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	// bcrypt ignores everything past 72 bytes.
	Password string `json:"password" validate:"required,max=72"`
}

type LoginResponse struct {
	AccessToken      string  `json:"access_token"`
	ExpiresAt        int64   `json:"expires_at"`
	ExpiresInMinutes float64 `json:"expires_in_minutes"`
}

// Credentials describe the single operator account guarding the admin routes.
type Credentials struct {
	Username     string
	PasswordHash string
	TokenSecret  string
	TokenTTL     time.Duration
}
