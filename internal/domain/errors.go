package domain

import "errors"

// ErrDataUnavailable is returned when a dataset cannot be read or parsed.
// Callers turn it into a user-visible message instead of failing the turn.
var ErrDataUnavailable = errors.New("data unavailable")
