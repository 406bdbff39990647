package out

import (
	"context"
	"time"

	routinein "cronos/internal/modules/routine/port/in"
	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
)

type RoutineSourceAdapter struct {
	routines routinein.Usecase
}

func NewRoutineSourceAdapter(routines routinein.Usecase) sessionout.RoutineSource {
	return &RoutineSourceAdapter{routines: routines}
}

func (a *RoutineSourceAdapter) LoadPlan(ctx context.Context, routineID string) (domain.Plan, error) {
	routine, err := a.routines.GetRoutine(ctx, routineID)
	if err != nil {
		return domain.Plan{}, err
	}
	steps := make([]domain.Step, 0, len(routine.Blocks))
	for _, b := range routine.Blocks {
		steps = append(steps, domain.Step{ID: b.ID, Name: b.Name, Duration: b.Duration, Kind: b.Type})
	}
	return domain.NewPlan(routine.ID, routine.Name, steps), nil
}

func (a *RoutineSourceAdapter) MarkPlayed(ctx context.Context, routineID string, at time.Time) error {
	return a.routines.MarkPlayed(ctx, routineID, at)
}
