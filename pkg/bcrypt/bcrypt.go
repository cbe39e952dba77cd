package bcrypt

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// IBcrypt hashes and verifies operator passwords.
type IBcrypt interface {
	HashPassword(password string) (string, error)
	// Matches reports false for a wrong password and an error only for a malformed hash.
	Matches(hashPassword string, password string) (bool, error)
}

type bcryptService struct {
	cost int
}

func New() IBcrypt {
	return NewWithCost(bcrypt.DefaultCost)
}

// NewWithCost clamps cost into the range the algorithm accepts.
func NewWithCost(cost int) IBcrypt {
	switch {
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &bcryptService{cost: cost}
}

func (b *bcryptService) HashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func (b *bcryptService) Matches(hashPassword string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
