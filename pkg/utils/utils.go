package utils

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	// NewULIDFromTimestamp ids sort by t; ids minted in the same millisecond stay ordered.
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewULID() (string, error)
}

type utils struct {
	mu      sync.Mutex
	entropy io.Reader
}

func New() IUtils {
	return &utils{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	u.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(t), u.entropy)
	u.mu.Unlock()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) NewULID() (string, error) {
	return u.NewULIDFromTimestamp(time.Now())
}
