package usecase

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"cronos/internal/modules/session/dto"
	sessionin "cronos/internal/modules/session/port/in"
	sessionout "cronos/internal/modules/session/port/out"
	"cronos/internal/modules/session/service"
	apperrors "cronos/internal/platform/errors"
)

type Interactor struct {
	runner   *service.Runner
	routines sessionout.RoutineSource
	logger   hclog.Logger
}

func NewInteractor(runner *service.Runner, routines sessionout.RoutineSource, logger hclog.Logger) sessionin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{runner: runner, routines: routines, logger: logger}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error) {
	if i.runner.Current().Active {
		return dto.StateOutput{}, apperrors.ErrActiveSessionExists
	}
	plan, err := i.routines.LoadPlan(ctx, input.RoutineID)
	if err != nil {
		return dto.StateOutput{}, err
	}
	state, err := i.runner.Start(ctx, plan)
	if err != nil {
		return dto.StateOutput{}, err
	}
	if err := i.routines.MarkPlayed(ctx, plan.RoutineID, state.StartedAt); err != nil {
		i.logger.Warn("mark routine played", "routine", plan.RoutineID, "error", err)
	}
	return ToOutput(state), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.StateOutput, error) {
	return output(i.runner.Pause(ctx))
}

func (i *Interactor) Resume(ctx context.Context) (dto.StateOutput, error) {
	return output(i.runner.Resume(ctx))
}

func (i *Interactor) TogglePause(ctx context.Context) (dto.StateOutput, error) {
	return output(i.runner.TogglePause(ctx))
}

func (i *Interactor) Adjust(ctx context.Context, input dto.AdjustInput) (dto.StateOutput, error) {
	return output(i.runner.Adjust(ctx, input.DeltaSeconds))
}

func (i *Interactor) Skip(ctx context.Context) (dto.StateOutput, error) {
	return output(i.runner.Skip(ctx))
}

func (i *Interactor) Quit(ctx context.Context) (dto.StateOutput, error) {
	return output(i.runner.Quit(ctx))
}

func (i *Interactor) Current(_ context.Context) (dto.StateOutput, error) {
	return ToOutput(i.runner.Current()), nil
}

func (i *Interactor) Subscribe(buffer int) (<-chan dto.EventOutput, func()) {
	events, cancel := i.runner.Subscribe(buffer)
	out := make(chan dto.EventOutput, cap(events))
	go func() {
		defer close(out)
		for event := range events {
			select {
			case out <- dto.EventOutput{Kind: string(event.Kind), Outcome: string(event.Outcome), State: ToOutput(event.State)}:
			default:
			}
		}
	}()
	return out, cancel
}

func output(state service.State, err error) (dto.StateOutput, error) {
	return ToOutput(state), err
}

func ToOutput(state service.State) dto.StateOutput {
	if !state.Active {
		return dto.StateOutput{}
	}
	step := state.Step()
	out := dto.StateOutput{
		Active:      true,
		SessionID:   state.SessionID,
		RoutineID:   state.Plan.RoutineID,
		RoutineName: state.Plan.RoutineName,
		Status:      string(state.Status),
		Index:       state.Index,
		Count:       len(state.Plan.Steps),
		Current:     dto.StepOutput{ID: step.ID, Name: step.Name, Duration: step.Duration, Kind: step.Kind},
		Remaining:   state.Remaining,
		Total:       state.Plan.Total,
		StartedAt:   state.StartedAt,
	}
	for _, done := range state.Plan.Steps[:state.Index] {
		out.Completed += done.Duration
	}
	if next, ok := state.Next(); ok {
		out.Next = &dto.StepOutput{ID: next.ID, Name: next.Name, Duration: next.Duration, Kind: next.Kind}
	}
	return out
}
