package service_test

import (
	"context"
	"testing"
	"time"

	"cronos/internal/modules/session/domain"
	"cronos/internal/modules/session/service"
)

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func runDriver(t *testing.T, h *harness, lock *recordingWakeLock) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	driver := service.NewDriver(h.runner, lock, 5*time.Millisecond, nil)
	go func() { done <- driver.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("driver: %v", err)
		}
	})
}

func TestDriverCompletesOncePerDeadline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)
	lock := &recordingWakeLock{}
	runDriver(t, h, lock)

	if lock.Held() {
		t.Fatalf("idle driver must not hold the wake lock")
	}
	if _, err := h.runner.Start(ctx, plan(2, 2)); err != nil {
		t.Fatalf("start: %v", err)
	}
	eventually(t, "wake lock acquired", lock.Held)

	h.clock.Advance(2 * time.Second)
	eventually(t, "first block completed", func() bool { return h.runner.Current().Index == 1 })
	time.Sleep(30 * time.Millisecond)
	if got := h.runner.Current(); !got.Active || got.Index != 1 || got.Remaining != 2 {
		t.Fatalf("one crossing must complete exactly one block, got %+v", got)
	}

	if _, err := h.runner.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	eventually(t, "wake lock released on pause", func() bool { return !lock.Held() })
	h.clock.Advance(time.Hour)
	time.Sleep(30 * time.Millisecond)
	if !h.runner.Current().Active {
		t.Fatalf("paused session must not complete")
	}

	if _, err := h.runner.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	eventually(t, "wake lock reacquired", lock.Held)
	h.clock.Advance(2 * time.Second)
	eventually(t, "session finished", func() bool { return !h.runner.Current().Active })
	eventually(t, "wake lock released on finish", func() bool { return !lock.Held() })

	entries := h.history.Entries()
	if len(entries) != 1 || entries[0].outcome != domain.OutcomeCompleted || entries[0].total != 4 {
		t.Fatalf("expected one completed entry, got %+v", entries)
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.acquired != 2 || lock.released != 2 {
		t.Fatalf("expected 2 acquisitions and releases, got %d/%d", lock.acquired, lock.released)
	}
}

func TestDriverIgnoresWakeLockFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t)
	runDriver(t, h, &recordingWakeLock{fail: true})

	if _, err := h.runner.Start(ctx, plan(1)); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(time.Second)
	eventually(t, "session finished without wake lock", func() bool { return !h.runner.Current().Active })
	if len(h.history.Entries()) != 1 {
		t.Fatalf("expected one history entry")
	}
}
