package domain

import (
	"fmt"
	"time"

	apperrors "cronos/internal/platform/errors"
)

// Snapshot is the persisted form of a live session. Only the authoritative time field is
// meaningful, which is what makes a restore after restart exact.
type Snapshot struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	Plan      Plan      `json:"plan"`
	Index     int       `json:"index"`
	Paused    bool      `json:"paused"`
	Deadline  time.Time `json:"deadline,omitempty"`
	Remaining int       `json:"remaining"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Version:   SchemaVersion,
		ID:        s.id,
		Plan:      s.plan,
		Index:     s.index,
		Paused:    s.paused,
		Deadline:  s.deadline,
		Remaining: s.remaining,
		StartedAt: s.startedAt,
	}
}

func Restore(snap Snapshot, opts Options) (*Session, error) {
	if err := validateSteps(snap.Plan); err != nil {
		return nil, err
	}
	total := 0
	for _, step := range snap.Plan.Steps {
		total += step.Duration
	}
	if total != snap.Plan.Total {
		return nil, fmt.Errorf("%w: snapshot total %d does not match its steps (%d)", apperrors.ErrInvalidInput, snap.Plan.Total, total)
	}
	if snap.Index < 0 || snap.Index > snap.Plan.Last() {
		return nil, fmt.Errorf("%w: snapshot index %d out of range", apperrors.ErrInvalidInput, snap.Index)
	}
	if snap.Paused && (snap.Remaining < 0 || snap.Remaining > MaxStepSeconds) {
		return nil, fmt.Errorf("%w: paused remainder %d out of range", apperrors.ErrInvalidInput, snap.Remaining)
	}
	if !snap.Paused && snap.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: running snapshot without deadline", apperrors.ErrInvalidInput)
	}
	return &Session{
		id:        snap.ID,
		plan:      snap.Plan,
		opts:      opts,
		index:     snap.Index,
		paused:    snap.Paused,
		deadline:  snap.Deadline,
		remaining: snap.Remaining,
		startedAt: snap.StartedAt,
	}, nil
}
