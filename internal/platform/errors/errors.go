package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrInvalidRoutine      = errors.New("invalid routine")
	// ErrEmptyRoutine is the start-time refusal; it is also an ErrInvalidRoutine.
	ErrEmptyRoutine = fmt.Errorf("%w: routine has no blocks", ErrInvalidRoutine)
)
