package out

import (
	"context"
	"time"

	"cronos/internal/modules/session/domain"
)

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, snapshot domain.Snapshot) error
	LoadActive(ctx context.Context) (domain.Snapshot, error)
	ClearActive(ctx context.Context) error
}

// RoutineSource resolves the plan a session will run.
type RoutineSource interface {
	LoadPlan(ctx context.Context, routineID string) (domain.Plan, error)
	MarkPlayed(ctx context.Context, routineID string, at time.Time) error
}

type HistoryRecorder interface {
	Record(ctx context.Context, routineName string, totalTime int, outcome domain.Outcome, at time.Time) error
}

// The ports below are best-effort. Callers log their errors and move on.

type CuePlayer interface {
	Play(ctx context.Context, kind domain.CueKind) error
}

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

type WakeLock interface {
	Acquire(ctx context.Context) (WakeLockHandle, error)
}

type WakeLockHandle interface {
	Release() error
}
