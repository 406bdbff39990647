package out

import (
	"context"

	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
)

type NoopCuePlayer struct{}

func (NoopCuePlayer) Play(context.Context, domain.CueKind) error { return nil }

type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string, string) error { return nil }

type NoopWakeLock struct{}

func (NoopWakeLock) Acquire(context.Context) (sessionout.WakeLockHandle, error) {
	return noopHandle{}, nil
}

type noopHandle struct{}

func (noopHandle) Release() error { return nil }
