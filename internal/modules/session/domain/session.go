package domain

import (
	"fmt"
	"time"

	apperrors "cronos/internal/platform/errors"
)

const SchemaVersion = 1

// MaxStepSeconds caps the length of a block, including any adjustment of it, at one day.
const MaxStepSeconds = 24 * 60 * 60

type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusPaused  Status = "PAUSED"
)

type Options struct {
	// StartCueDelay separates the start cue of the next block from the end cue of the
	// previous one.
	StartCueDelay time.Duration
	// CountdownTicks requests a tick cue on each of the final N seconds of a block. Zero
	// disables ticks.
	CountdownTicks int
}

// Session is one live run of a Plan. While running, deadline is authoritative; while
// paused, remaining is. The index only ever moves forward.
type Session struct {
	id        string
	plan      Plan
	opts      Options
	index     int
	paused    bool
	deadline  time.Time
	remaining int
	startedAt time.Time
	lastTick  int
}

func Start(id string, plan Plan, now time.Time, opts Options) (*Session, Transition, error) {
	if err := validateSteps(plan); err != nil {
		return nil, Transition{}, err
	}
	first := plan.Steps[0].Duration
	s := &Session{
		id:        id,
		plan:      plan,
		opts:      opts,
		deadline:  now.Add(seconds(first)),
		remaining: first,
		startedAt: now,
	}
	return s, Transition{Effects: []Effect{cue(CueStart, 0)}}, nil
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Plan() Plan           { return s.plan }
func (s *Session) Index() int           { return s.index }
func (s *Session) Paused() bool         { return s.paused }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) Step() Step           { return s.plan.Steps[s.index] }

func (s *Session) Status() Status {
	if s.paused {
		return StatusPaused
	}
	return StatusRunning
}

// Deadline is meaningful only while running.
func (s *Session) Deadline() (time.Time, bool) {
	if s.paused {
		return time.Time{}, false
	}
	return s.deadline, true
}

// Remaining is the whole seconds left in the current block, rounded up, never negative.
func (s *Session) Remaining(now time.Time) int {
	if s.paused {
		return s.remaining
	}
	return ceilSeconds(s.deadline.Sub(now))
}

// Due reports whether a running block has reached its deadline.
func (s *Session) Due(now time.Time) bool {
	return !s.paused && !now.Before(s.deadline)
}

func (s *Session) Pause(now time.Time) Transition {
	if s.paused {
		return Transition{}
	}
	s.remaining = ceilSeconds(s.deadline.Sub(now))
	s.deadline = time.Time{}
	s.paused = true
	return Transition{}
}

func (s *Session) Resume(now time.Time) Transition {
	if !s.paused {
		return Transition{}
	}
	s.deadline = now.Add(seconds(s.remaining))
	s.paused = false
	return Transition{}
}

func (s *Session) TogglePause(now time.Time) Transition {
	if s.paused {
		return s.Resume(now)
	}
	return s.Pause(now)
}

// Adjust shifts the current block by delta seconds. The result never drops below one
// second so an adjustment can not complete a block by itself.
func (s *Session) Adjust(delta int, now time.Time) Transition {
	delta = max(-MaxStepSeconds, min(delta, MaxStepSeconds))
	next := max(1, min(s.Remaining(now)+delta, MaxStepSeconds))
	if s.paused {
		s.remaining = next
	} else {
		s.deadline = now.Add(seconds(next))
	}
	s.lastTick = 0
	return Transition{}
}

// Skip is Complete under another name; both go through the same path.
func (s *Session) Skip(now time.Time) Transition {
	return s.Complete(now)
}

// Complete finishes the current block regardless of time left or pause state. On the last
// block the session is over and the returned transition is Finished.
func (s *Session) Complete(now time.Time) Transition {
	finished := s.plan.Steps[s.index]
	effects := []Effect{cue(CueEnd, 0), blockFinished(finished.Name)}
	if s.index >= s.plan.Last() {
		return Transition{Effects: effects, Finished: true, Outcome: OutcomeCompleted, TotalTime: s.plan.Total}
	}
	s.index++
	next := s.plan.Steps[s.index].Duration
	s.deadline = now.Add(seconds(next))
	s.remaining = next
	s.paused = false
	s.lastTick = 0
	effects = append(effects, cue(CueStart, s.opts.StartCueDelay))
	return Transition{Effects: effects}
}

func (s *Session) Quit() Transition {
	return Transition{Finished: true, Outcome: OutcomeAborted, TotalTime: 0}
}

// Poll is the driver's single entry point: it completes the block when due, and otherwise
// asks for a countdown tick once per second inside the final CountdownTicks seconds.
func (s *Session) Poll(now time.Time) Transition {
	if s.paused {
		return Transition{}
	}
	if s.Due(now) {
		return s.Complete(now)
	}
	rem := s.Remaining(now)
	if s.opts.CountdownTicks > 0 && rem <= s.opts.CountdownTicks && rem != s.lastTick {
		s.lastTick = rem
		return Transition{Effects: []Effect{cue(CueTick, 0)}}
	}
	return Transition{}
}

func validateSteps(plan Plan) error {
	if len(plan.Steps) == 0 {
		return apperrors.ErrEmptyRoutine
	}
	for _, step := range plan.Steps {
		if step.Duration <= 0 || step.Duration > MaxStepSeconds {
			return fmt.Errorf("%w: step %q duration must be between 1 and %d seconds", apperrors.ErrInvalidRoutine, step.Name, MaxStepSeconds)
		}
	}
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
