package dialogue

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks a missing or malformed catalog, corpus or model artifact.
	// The process must not start with it.
	ErrConfiguration = errors.New("dialogue: configuration error")

	ErrInvalidFocusDish = errors.New("dialogue: focus dish is not in the catalog")

	// ErrAdvertisingClassifierUnavailable is returned by the hint responder when no
	// advertising classifier was loaded.
	ErrAdvertisingClassifierUnavailable = errors.New("dialogue: advertising classifier unavailable")
)

func configError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
