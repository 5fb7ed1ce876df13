package repository

import "errors"

// ErrConstraintViolation is returned when the store rejects a write that
// breaks one of its own constraints, e.g. an unknown status value.
var ErrConstraintViolation = errors.New("store constraint violated")
