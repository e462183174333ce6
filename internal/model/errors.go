package model

import "errors"

// ErrInvalidInput is returned (wrapped) for malformed signals or configuration.
// It is always raised before the first simulation step runs.
var ErrInvalidInput = errors.New("invalid input")
