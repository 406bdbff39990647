package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
	apperrors "cronos/internal/platform/errors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type seqID struct {
	mu sync.Mutex
	n  int
}

func (g *seqID) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("s-%d", g.n)
}

type recordingCues struct {
	mu    sync.Mutex
	kinds []domain.CueKind
	err   error
}

func (r *recordingCues) Play(_ context.Context, kind domain.CueKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
	return r.err
}

func (r *recordingCues) Kinds() []domain.CueKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CueKind(nil), r.kinds...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (r *recordingNotifier) Notify(_ context.Context, _, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies = append(r.bodies, body)
	return fmt.Errorf("notifications disabled")
}

type historyEntry struct {
	name    string
	total   int
	outcome domain.Outcome
}

type recordingHistory struct {
	mu      sync.Mutex
	entries []historyEntry
}

func (r *recordingHistory) Record(_ context.Context, routineName string, totalTime int, outcome domain.Outcome, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, historyEntry{name: routineName, total: totalTime, outcome: outcome})
	return nil
}

func (r *recordingHistory) Entries() []historyEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]historyEntry(nil), r.entries...)
}

type memoryActiveStore struct {
	mu   sync.Mutex
	snap *domain.Snapshot
}

func (s *memoryActiveStore) SaveActive(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snapshot
	return nil
}

func (s *memoryActiveStore) LoadActive(context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.Snapshot{}, apperrors.ErrNoActiveSession
	}
	return *s.snap, nil
}

func (s *memoryActiveStore) ClearActive(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
	return nil
}

type recordingWakeLock struct {
	mu       sync.Mutex
	held     bool
	acquired int
	released int
	fail     bool
}

func (l *recordingWakeLock) Acquire(context.Context) (sessionout.WakeLockHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return nil, fmt.Errorf("no inhibitor available")
	}
	l.acquired++
	l.held = true
	return lockHandle{l: l}, nil
}

func (l *recordingWakeLock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

type lockHandle struct{ l *recordingWakeLock }

func (h lockHandle) Release() error {
	h.l.mu.Lock()
	defer h.l.mu.Unlock()
	h.l.released++
	h.l.held = false
	return nil
}

func plan(durations ...int) domain.Plan {
	steps := make([]domain.Step, 0, len(durations))
	for i, d := range durations {
		steps = append(steps, domain.Step{ID: fmt.Sprintf("b%d", i), Name: fmt.Sprintf("Block %d", i), Duration: d, Kind: "WORK"})
	}
	return domain.NewPlan("r1", "Routine", steps)
}
