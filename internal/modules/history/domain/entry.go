package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "cronos/internal/platform/errors"
)

type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusAborted   Status = "ABORTED"
)

func (s Status) Validate() error {
	switch s {
	case StatusCompleted, StatusAborted:
		return nil
	default:
		return fmt.Errorf("%w: unsupported history status %q", apperrors.ErrInvalidInput, string(s))
	}
}

// Entry is immutable once appended. TotalTime is the routine's planned duration for
// completed sessions and zero for aborted ones.
type Entry struct {
	ID          string    `json:"id"`
	RoutineName string    `json:"routineName"`
	Date        time.Time `json:"date"`
	TotalTime   int       `json:"totalTime"`
	Status      Status    `json:"status"`
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: history id is required", apperrors.ErrInvalidInput)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: history date is required", apperrors.ErrInvalidInput)
	}
	if e.TotalTime < 0 {
		return fmt.Errorf("%w: total time must be non-negative", apperrors.ErrInvalidInput)
	}
	if e.Status == StatusAborted && e.TotalTime != 0 {
		return fmt.Errorf("%w: aborted sessions record zero time", apperrors.ErrInvalidInput)
	}
	return e.Status.Validate()
}
