package domain_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"cronos/internal/modules/session/domain"
	apperrors "cronos/internal/platform/errors"
)

var t0 = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func plan(durations ...int) domain.Plan {
	steps := make([]domain.Step, 0, len(durations))
	for i, d := range durations {
		steps = append(steps, domain.Step{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Duration: d, Kind: "WORK"})
	}
	return domain.NewPlan("r", "Routine", steps)
}

func start(t *testing.T, p domain.Plan, opts domain.Options) *domain.Session {
	t.Helper()
	s, _, err := domain.Start("s", p, t0, opts)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func cues(tr domain.Transition) []domain.CueKind {
	var out []domain.CueKind
	for _, e := range tr.Effects {
		if e.Kind == domain.EffectCue {
			out = append(out, e.Cue)
		}
	}
	return out
}

func TestStartRunsFirstBlock(t *testing.T) {
	t.Parallel()
	s, tr, err := domain.Start("s", plan(60, 20), t0, domain.Options{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Index() != 0 || s.Paused() || s.Remaining(t0) != 60 {
		t.Fatalf("unexpected start state: index=%d paused=%t remaining=%d", s.Index(), s.Paused(), s.Remaining(t0))
	}
	if deadline, ok := s.Deadline(); !ok || !deadline.Equal(t0.Add(60*time.Second)) {
		t.Fatalf("unexpected deadline %s", deadline)
	}
	if got := cues(tr); !reflect.DeepEqual(got, []domain.CueKind{domain.CueStart}) {
		t.Fatalf("expected one start cue, got %v", got)
	}
}

func TestNaturalCompletionAdvances(t *testing.T) {
	t.Parallel()
	s := start(t, plan(60, 20), domain.Options{StartCueDelay: 500 * time.Millisecond})
	if tr := s.Poll(t0.Add(59 * time.Second)); tr.Changed() {
		t.Fatalf("block must not complete before its deadline")
	}
	now := t0.Add(60 * time.Second)
	tr := s.Poll(now)
	if tr.Finished {
		t.Fatalf("first block must not finish the session")
	}
	if s.Index() != 1 || s.Remaining(now) != 20 {
		t.Fatalf("expected block 1 with 20s, got index=%d remaining=%d", s.Index(), s.Remaining(now))
	}
	if got := cues(tr); !reflect.DeepEqual(got, []domain.CueKind{domain.CueEnd, domain.CueStart}) {
		t.Fatalf("expected end then start cue, got %v", got)
	}
	last := tr.Effects[len(tr.Effects)-1]
	if last.Delay != 500*time.Millisecond {
		t.Fatalf("start cue should be delayed, got %s", last.Delay)
	}
	if tr.Effects[1].Kind != domain.EffectNotify || tr.Effects[1].Body != "A finished." {
		t.Fatalf("expected block finished notification, got %+v", tr.Effects[1])
	}
	if again := s.Poll(now); again.Changed() {
		t.Fatalf("one deadline crossing must complete exactly once")
	}
}

func TestSkipOnLastBlockCompletesRoutine(t *testing.T) {
	t.Parallel()
	s := start(t, plan(60, 20), domain.Options{})
	s.Poll(t0.Add(60 * time.Second))
	tr := s.Skip(t0.Add(61 * time.Second))
	if !tr.Finished || tr.Outcome != domain.OutcomeCompleted || tr.TotalTime != 80 {
		t.Fatalf("expected completed with 80s, got %+v", tr)
	}
	if got := cues(tr); !reflect.DeepEqual(got, []domain.CueKind{domain.CueEnd}) {
		t.Fatalf("final block should only ring the end cue, got %v", got)
	}
}

func TestAdjustWhilePausedClampsToOne(t *testing.T) {
	t.Parallel()
	s := start(t, plan(30), domain.Options{})
	s.Pause(t0)
	if s.Remaining(t0) != 30 {
		t.Fatalf("expected 30 after pause, got %d", s.Remaining(t0))
	}
	s.Adjust(-40, t0.Add(time.Hour))
	if got := s.Remaining(t0.Add(2 * time.Hour)); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}

func TestAdjustLowerBoundWhileRunning(t *testing.T) {
	t.Parallel()
	s := start(t, plan(30), domain.Options{})
	now := t0.Add(5 * time.Second)
	s.Adjust(-999999, now)
	if got := s.Remaining(now); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if s.Due(now) {
		t.Fatalf("an adjustment must never complete a block by itself")
	}
	s.Adjust(15, now)
	if got := s.Remaining(now); got != 16 {
		t.Fatalf("expected 16 after +15, got %d", got)
	}
}

func TestAdjustHugePositiveDoesNotComplete(t *testing.T) {
	t.Parallel()
	s := start(t, plan(30, 20), domain.Options{})
	now := t0.Add(5 * time.Second)
	s.Adjust(10_000_000_000, now)
	if got := s.Remaining(now); got != domain.MaxStepSeconds {
		t.Fatalf("expected remaining capped at %d, got %d", domain.MaxStepSeconds, got)
	}
	if s.Due(now) {
		t.Fatalf("a large adjustment must not make the block due")
	}
	if tr := s.Poll(now); tr.Changed() || s.Index() != 0 {
		t.Fatalf("poll after adjust advanced the session: index=%d", s.Index())
	}

	s.Pause(now)
	s.Adjust(10_000_000_000, now)
	if got := s.Remaining(now); got != domain.MaxStepSeconds {
		t.Fatalf("expected paused remaining capped at %d, got %d", domain.MaxStepSeconds, got)
	}
}

func TestStartRejectsOversizedStep(t *testing.T) {
	t.Parallel()
	_, _, err := domain.Start("s", plan(30, 10_000_000_000), t0, domain.Options{})
	if !errors.Is(err, apperrors.ErrInvalidRoutine) {
		t.Fatalf("expected invalid routine for an oversized step, got %v", err)
	}
	if _, _, err := domain.Start("s", plan(domain.MaxStepSeconds), t0, domain.Options{}); err != nil {
		t.Fatalf("a one day step should start: %v", err)
	}
}

func TestStartEmptyPlanFails(t *testing.T) {
	t.Parallel()
	s, tr, err := domain.Start("s", domain.NewPlan("r", "Empty", nil), t0, domain.Options{})
	if !errors.Is(err, apperrors.ErrEmptyRoutine) {
		t.Fatalf("expected empty routine, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrInvalidRoutine) {
		t.Fatalf("empty routine should also be an invalid routine")
	}
	if s != nil || len(tr.Effects) != 0 {
		t.Fatalf("no session and no cue expected")
	}
}

func TestQuitAbortsWithZeroTime(t *testing.T) {
	t.Parallel()
	for _, paused := range []bool{false, true} {
		s := start(t, plan(60, 20), domain.Options{})
		if paused {
			s.Pause(t0.Add(3 * time.Second))
		}
		tr := s.Quit()
		if !tr.Finished || tr.Outcome != domain.OutcomeAborted || tr.TotalTime != 0 {
			t.Fatalf("paused=%t: expected aborted with 0, got %+v", paused, tr)
		}
	}
}

func TestPauseResumeRoundTrip(t *testing.T) {
	t.Parallel()
	s := start(t, plan(60), domain.Options{})
	at := t0.Add(12300 * time.Millisecond)
	before := s.Remaining(at)
	s.Pause(at)
	s.Pause(at.Add(time.Second))
	if got := s.Remaining(at.Add(time.Minute)); got != before {
		t.Fatalf("paused remaining drifted: %d != %d", got, before)
	}
	resumeAt := at.Add(10 * time.Minute)
	s.Resume(resumeAt)
	if got := s.Remaining(resumeAt); got != before {
		t.Fatalf("resume changed remaining: %d != %d", got, before)
	}
	if s.Poll(resumeAt.Add(time.Duration(before-1) * time.Second)).Finished {
		t.Fatalf("pause time must not count against the block")
	}
}

func TestPausedSessionNeverCompletesOnPoll(t *testing.T) {
	t.Parallel()
	s := start(t, plan(5, 5), domain.Options{CountdownTicks: 3})
	s.Pause(t0)
	if tr := s.Poll(t0.Add(time.Hour)); tr.Changed() || s.Index() != 0 {
		t.Fatalf("paused session changed on poll")
	}
}

func TestSkipMatchesNaturalCompletion(t *testing.T) {
	t.Parallel()
	p := plan(10, 20, 30)
	deadline := t0.Add(10 * time.Second)

	natural := start(t, p, domain.Options{})
	skipped := start(t, p, domain.Options{})
	naturalTr := natural.Poll(deadline)
	skippedTr := skipped.Skip(deadline)

	if !reflect.DeepEqual(naturalTr, skippedTr) {
		t.Fatalf("transitions differ:\n%+v\n%+v", naturalTr, skippedTr)
	}
	if !reflect.DeepEqual(natural.Snapshot(), skipped.Snapshot()) {
		t.Fatalf("states differ:\n%+v\n%+v", natural.Snapshot(), skipped.Snapshot())
	}
}

func TestIndexIsMonotonic(t *testing.T) {
	t.Parallel()
	s := start(t, plan(3, 3, 3, 3), domain.Options{})
	now := t0
	prev := s.Index()
	for i := 0; i < 3; i++ {
		now = now.Add(time.Second)
		if i%2 == 0 {
			s.Skip(now)
		} else {
			now = now.Add(3 * time.Second)
			s.Poll(now)
		}
		if s.Index() < prev || s.Index() > 3 {
			t.Fatalf("index went from %d to %d", prev, s.Index())
		}
		prev = s.Index()
	}
	if prev != 3 {
		t.Fatalf("expected to reach the last block, got %d", prev)
	}
	if tr := s.Skip(now); !tr.Finished {
		t.Fatalf("skip on last block must finish")
	}
}

func TestLargeOvershootAdvancesOneBlock(t *testing.T) {
	t.Parallel()
	s := start(t, plan(10, 10, 10), domain.Options{})
	late := t0.Add(1000 * time.Second)
	tr := s.Poll(late)
	if tr.Finished || s.Index() != 1 {
		t.Fatalf("expected one advance, got index=%d finished=%t", s.Index(), tr.Finished)
	}
	if got := s.Remaining(late); got != 10 {
		t.Fatalf("next block should start fresh from detection, got %d", got)
	}
}

func TestCountdownTicks(t *testing.T) {
	t.Parallel()
	s := start(t, plan(5, 5), domain.Options{CountdownTicks: 3})
	steps := []struct {
		offset time.Duration
		tick   bool
	}{
		{1500 * time.Millisecond, false},
		{2100 * time.Millisecond, true},
		{2500 * time.Millisecond, false},
		{3100 * time.Millisecond, true},
		{4200 * time.Millisecond, true},
		{4900 * time.Millisecond, false},
	}
	for _, step := range steps {
		got := cues(s.Poll(t0.Add(step.offset)))
		if step.tick != reflect.DeepEqual(got, []domain.CueKind{domain.CueTick}) {
			t.Fatalf("at %s: tick=%t, cues=%v", step.offset, step.tick, got)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	t.Parallel()
	s := start(t, plan(30, 40), domain.Options{})
	s.Poll(t0.Add(30 * time.Second))
	now := t0.Add(35 * time.Second)

	restored, err := domain.Restore(s.Snapshot(), domain.Options{})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Index() != 1 || restored.Remaining(now) != s.Remaining(now) {
		t.Fatalf("restored state differs: index=%d remaining=%d", restored.Index(), restored.Remaining(now))
	}

	s.Pause(now)
	pausedRestore, err := domain.Restore(s.Snapshot(), domain.Options{})
	if err != nil {
		t.Fatalf("restore paused: %v", err)
	}
	if !pausedRestore.Paused() || pausedRestore.Remaining(now.Add(time.Hour)) != 35 {
		t.Fatalf("paused restore lost remainder: %d", pausedRestore.Remaining(now))
	}

	bad := s.Snapshot()
	bad.Index = 7
	if _, err := domain.Restore(bad, domain.Options{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for out of range index, got %v", err)
	}
}

func TestRestoreRejectsCorruptPlan(t *testing.T) {
	t.Parallel()
	s := start(t, plan(30, 40), domain.Options{})

	zero := s.Snapshot()
	zero.Plan.Steps = append([]domain.Step(nil), zero.Plan.Steps...)
	zero.Plan.Steps[1].Duration = 0
	zero.Plan.Total = 30
	if _, err := domain.Restore(zero, domain.Options{}); !errors.Is(err, apperrors.ErrInvalidRoutine) {
		t.Fatalf("expected invalid routine for a zero length step, got %v", err)
	}

	huge := s.Snapshot()
	huge.Plan.Steps = append([]domain.Step(nil), huge.Plan.Steps...)
	huge.Plan.Steps[0].Duration = 10_000_000_000
	huge.Plan.Total = 10_000_000_040
	if _, err := domain.Restore(huge, domain.Options{}); !errors.Is(err, apperrors.ErrInvalidRoutine) {
		t.Fatalf("expected invalid routine for an oversized step, got %v", err)
	}

	total := s.Snapshot()
	total.Plan.Total = 999
	if _, err := domain.Restore(total, domain.Options{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for a mismatched total, got %v", err)
	}
}
