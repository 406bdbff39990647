package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"cronos/internal/modules/session/domain"
	sessiondto "cronos/internal/modules/session/dto"
	"cronos/internal/modules/session/service"
	sessionusecase "cronos/internal/modules/session/usecase"
)

type brokenPlayedSource struct{}

func (brokenPlayedSource) LoadPlan(context.Context, string) (domain.Plan, error) {
	return domain.NewPlan("r1", "Sprints", []domain.Step{{ID: "a", Name: "Go", Duration: 20, Kind: "WORK"}}), nil
}

func (brokenPlayedSource) MarkPlayed(context.Context, string, time.Time) error {
	return errors.New("disk full")
}

func TestStartLogsMarkPlayedFailure(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Warn})
	runner := service.NewRunner(fixedClock{now: time.Date(2026, 7, 1, 6, 30, 0, 0, time.UTC)}, &seqID{prefix: "s"}, domain.Options{}, service.Ports{}, nil)
	defer runner.Close()
	uc := sessionusecase.NewInteractor(runner, brokenPlayedSource{}, logger)

	state, err := uc.Start(context.Background(), sessiondto.StartInput{RoutineID: "r1"})
	if err != nil {
		t.Fatalf("start should not fail on a last-played error: %v", err)
	}
	if !state.Active || state.RoutineName != "Sprints" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if out := logs.String(); !strings.Contains(out, "mark routine played") || !strings.Contains(out, "disk full") {
		t.Fatalf("expected the failure in the log, got %q", out)
	}
}

func TestOutputsUseDTOConstants(t *testing.T) {
	t.Parallel()
	runner := service.NewRunner(fixedClock{now: time.Date(2026, 7, 1, 6, 30, 0, 0, time.UTC)}, &seqID{prefix: "s"}, domain.Options{}, service.Ports{}, nil)
	defer runner.Close()
	uc := sessionusecase.NewInteractor(runner, brokenPlayedSource{}, nil)
	events, cancel := uc.Subscribe(16)
	defer cancel()
	ctx := context.Background()

	state, err := uc.Start(ctx, sessiondto.StartInput{RoutineID: "r1"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.Status != sessiondto.StatusRunning {
		t.Fatalf("expected %s, got %s", sessiondto.StatusRunning, state.Status)
	}
	if state, err = uc.Pause(ctx); err != nil || state.Status != sessiondto.StatusPaused {
		t.Fatalf("pause: %+v %v", state, err)
	}
	if _, err := uc.Quit(ctx); err != nil {
		t.Fatalf("quit: %v", err)
	}

	var kinds []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			kinds = append(kinds, event.Kind)
			if event.Kind != sessiondto.EventFinished {
				continue
			}
			if event.Outcome != sessiondto.OutcomeAborted {
				t.Fatalf("expected %s, got %s", sessiondto.OutcomeAborted, event.Outcome)
			}
			want := []string{sessiondto.EventStarted, sessiondto.EventPaused, sessiondto.EventFinished}
			if strings.Join(kinds, ",") != strings.Join(want, ",") {
				t.Fatalf("expected %v, got %v", want, kinds)
			}
			return
		case <-timeout:
			t.Fatalf("no finished event, saw %v", kinds)
		}
	}
}
