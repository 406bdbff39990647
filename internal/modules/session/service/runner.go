package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
	"cronos/internal/platform/clock"
	apperrors "cronos/internal/platform/errors"
	"cronos/internal/platform/id"
)

type EventKind string

const (
	EventStarted  EventKind = "started"
	EventRestored EventKind = "restored"
	EventPaused   EventKind = "paused"
	EventResumed  EventKind = "resumed"
	EventAdjusted EventKind = "adjusted"
	EventAdvanced EventKind = "advanced"
	EventTick     EventKind = "tick"
	EventFinished EventKind = "finished"
)

type Event struct {
	Kind    EventKind
	Outcome domain.Outcome
	State   State
	At      time.Time
}

// State is a read-only view of the session slot at one instant.
type State struct {
	Active    bool
	SessionID string
	Plan      domain.Plan
	Index     int
	Status    domain.Status
	Remaining int
	StartedAt time.Time
}

func (s State) Step() domain.Step {
	if !s.Active {
		return domain.Step{}
	}
	return s.Plan.Steps[s.Index]
}

func (s State) Next() (domain.Step, bool) {
	if !s.Active || s.Index >= s.Plan.Last() {
		return domain.Step{}, false
	}
	return s.Plan.Steps[s.Index+1], true
}

type Ports struct {
	Cues     sessionout.CuePlayer
	Notifier sessionout.Notifier
	History  sessionout.HistoryRecorder
	Active   sessionout.ActiveSessionStore
}

// Runner owns the single session slot. Every command and every driver poll goes through
// its mutex, so a completion always finishes before the next command is looked at.
type Runner struct {
	mu      sync.Mutex
	clock   clock.Clock
	idGen   id.Generator
	opts    domain.Options
	ports   Ports
	logger  hclog.Logger
	session *domain.Session
	changes chan struct{}
	subs    map[int]chan Event
	nextSub int
	timers  map[*time.Timer]struct{}
	closed  bool
}

func NewRunner(clock clock.Clock, idGen id.Generator, opts domain.Options, ports Ports, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{
		clock:   clock,
		idGen:   idGen,
		opts:    opts,
		ports:   ports,
		logger:  logger,
		changes: make(chan struct{}, 1),
		subs:    map[int]chan Event{},
		timers:  map[*time.Timer]struct{}{},
	}
}

// Restore reloads a session persisted by a previous process. A running session whose
// deadline passed while nothing was polling completes on the driver's first poll.
func (r *Runner) Restore(ctx context.Context) (bool, error) {
	if r.ports.Active == nil {
		return false, nil
	}
	snap, err := r.ports.Active.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	session, err := domain.Restore(snap, r.opts)
	if err != nil {
		r.logger.Warn("discarding unreadable active session", "error", err)
		_ = r.ports.Active.ClearActive(ctx)
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		return false, apperrors.ErrActiveSessionExists
	}
	r.session = session
	r.logger.Info("restored session", "id", session.ID(), "routine", session.Plan().RoutineName, "index", session.Index())
	r.emitLocked(EventRestored, "")
	r.signal()
	return true, nil
}

func (r *Runner) Start(ctx context.Context, plan domain.Plan) (State, error) {
	r.mu.Lock()
	if r.session != nil {
		r.mu.Unlock()
		return State{}, apperrors.ErrActiveSessionExists
	}
	session, tr, err := domain.Start(r.idGen.New(), plan, r.clock.Now(), r.opts)
	if err != nil {
		r.mu.Unlock()
		return State{}, err
	}
	r.session = session
	r.logger.Info("session started", "id", session.ID(), "routine", plan.RoutineName, "blocks", len(plan.Steps))
	r.persistLocked(ctx)
	state := r.emitLocked(EventStarted, "")
	r.signal()
	r.mu.Unlock()

	r.perform(ctx, tr.Effects)
	return state, nil
}

func (r *Runner) Pause(ctx context.Context) (State, error) {
	return r.command(ctx, EventPaused, func(s *domain.Session, now time.Time) domain.Transition {
		return s.Pause(now)
	})
}

func (r *Runner) Resume(ctx context.Context) (State, error) {
	return r.command(ctx, EventResumed, func(s *domain.Session, now time.Time) domain.Transition {
		return s.Resume(now)
	})
}

// TogglePause decides under the same lock it transitions under.
func (r *Runner) TogglePause(ctx context.Context) (State, error) {
	return r.command(ctx, "", func(s *domain.Session, now time.Time) domain.Transition {
		return s.TogglePause(now)
	})
}

func (r *Runner) Adjust(ctx context.Context, delta int) (State, error) {
	return r.command(ctx, EventAdjusted, func(s *domain.Session, now time.Time) domain.Transition {
		return s.Adjust(delta, now)
	})
}

func (r *Runner) Skip(ctx context.Context) (State, error) {
	return r.command(ctx, EventAdvanced, func(s *domain.Session, now time.Time) domain.Transition {
		return s.Skip(now)
	})
}

func (r *Runner) Quit(ctx context.Context) (State, error) {
	return r.command(ctx, EventFinished, func(s *domain.Session, _ time.Time) domain.Transition {
		return s.Quit()
	})
}

// Tick is called by the driver on every poll. It reports whether anything changed.
func (r *Runner) Tick(ctx context.Context) bool {
	r.mu.Lock()
	if r.session == nil {
		r.mu.Unlock()
		return false
	}
	tr := r.session.Poll(r.clock.Now())
	if !tr.Changed() {
		r.mu.Unlock()
		return false
	}
	kind := EventAdvanced
	if !tr.Finished && len(tr.Effects) == 1 && tr.Effects[0].Cue == domain.CueTick {
		kind = EventTick
	}
	if err := r.applyLocked(ctx, kind, tr); err != nil {
		r.logger.Warn("record history", "error", err)
	}
	r.mu.Unlock()

	r.perform(ctx, tr.Effects)
	return true
}

func (r *Runner) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// Polling reports whether a running session exists, which is exactly when the driver
// must poll and hold the wake lock.
func (r *Runner) Polling() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil && !r.session.Paused()
}

// Changes fires after any transition that may flip Polling. It is meant for one reader.
func (r *Runner) Changes() <-chan struct{} {
	return r.changes
}

func (r *Runner) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	r.mu.Lock()
	key := r.nextSub
	r.nextSub++
	r.subs[key] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			if _, ok := r.subs[key]; ok {
				delete(r.subs, key)
				close(ch)
			}
			r.mu.Unlock()
		})
	}
}

// Close stops pending delayed cues and closes every subscriber.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for t := range r.timers {
		t.Stop()
	}
	r.timers = map[*time.Timer]struct{}{}
	for key, ch := range r.subs {
		delete(r.subs, key)
		close(ch)
	}
}

func (r *Runner) command(ctx context.Context, kind EventKind, fn func(*domain.Session, time.Time) domain.Transition) (State, error) {
	r.mu.Lock()
	if r.session == nil {
		r.mu.Unlock()
		return State{}, apperrors.ErrNoActiveSession
	}
	tr := fn(r.session, r.clock.Now())
	if kind == "" {
		kind = EventResumed
		if r.session.Paused() {
			kind = EventPaused
		}
	}
	err := r.applyLocked(ctx, kind, tr)
	state := r.stateLocked()
	r.mu.Unlock()

	r.perform(ctx, tr.Effects)
	return state, err
}

// applyLocked settles a transition: on finish the slot is emptied and history written,
// otherwise the new state is persisted.
func (r *Runner) applyLocked(ctx context.Context, kind EventKind, tr domain.Transition) error {
	now := r.clock.Now()
	if !tr.Finished {
		r.persistLocked(ctx)
		r.emitLocked(kind, "")
		r.signal()
		return nil
	}

	finished := r.session
	r.session = nil
	r.logger.Info("session finished", "id", finished.ID(), "routine", finished.Plan().RoutineName, "outcome", tr.Outcome)
	if r.ports.Active != nil {
		if err := r.ports.Active.ClearActive(ctx); err != nil {
			r.logger.Warn("clear active session", "error", err)
		}
	}
	var err error
	if r.ports.History != nil {
		err = r.ports.History.Record(ctx, finished.Plan().RoutineName, tr.TotalTime, tr.Outcome, now)
	}
	r.emitLocked(EventFinished, tr.Outcome)
	r.signal()
	return err
}

func (r *Runner) persistLocked(ctx context.Context) {
	if r.ports.Active == nil || r.session == nil {
		return
	}
	if err := r.ports.Active.SaveActive(ctx, r.session.Snapshot()); err != nil {
		r.logger.Warn("persist active session", "error", err)
	}
}

func (r *Runner) stateLocked() State {
	if r.session == nil {
		return State{}
	}
	s := r.session
	return State{
		Active:    true,
		SessionID: s.ID(),
		Plan:      s.Plan(),
		Index:     s.Index(),
		Status:    s.Status(),
		Remaining: s.Remaining(r.clock.Now()),
		StartedAt: s.StartedAt(),
	}
}

func (r *Runner) emitLocked(kind EventKind, outcome domain.Outcome) State {
	state := r.stateLocked()
	event := Event{Kind: kind, Outcome: outcome, State: state, At: r.clock.Now()}
	for _, ch := range r.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return state
}

func (r *Runner) signal() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

// perform runs side effects outside the lock. Failures are logged and never reach the
// state machine.
func (r *Runner) perform(ctx context.Context, effects []domain.Effect) {
	for _, effect := range effects {
		if effect.Delay > 0 {
			r.schedule(effect)
			continue
		}
		r.performOne(ctx, effect)
	}
}

func (r *Runner) schedule(effect domain.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(effect.Delay, func() {
		r.mu.Lock()
		delete(r.timers, timer)
		r.mu.Unlock()
		r.performOne(context.Background(), effect)
	})
	r.timers[timer] = struct{}{}
}

func (r *Runner) performOne(ctx context.Context, effect domain.Effect) {
	switch effect.Kind {
	case domain.EffectCue:
		if r.ports.Cues == nil {
			return
		}
		if err := r.ports.Cues.Play(ctx, effect.Cue); err != nil {
			r.logger.Debug("cue failed", "cue", effect.Cue, "error", err)
		}
	case domain.EffectNotify:
		if r.ports.Notifier == nil {
			return
		}
		if err := r.ports.Notifier.Notify(ctx, effect.Title, effect.Body); err != nil {
			r.logger.Debug("notification failed", "title", effect.Title, "error", err)
		}
	}
}
