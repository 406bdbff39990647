package usecase

import (
	"context"
	"time"

	"cronos/internal/modules/routine/domain"
	"cronos/internal/modules/routine/dto"
	routinein "cronos/internal/modules/routine/port/in"
	"cronos/internal/modules/routine/service"
)

type Interactor struct {
	svc *service.RoutineService
}

func NewInteractor(svc *service.RoutineService) routinein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListRoutines(ctx context.Context) ([]dto.RoutineOutput, error) {
	routines, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoutineOutput, 0, len(routines))
	for _, r := range routines {
		out = append(out, dto.RoutineOutput{
			ID:            r.ID,
			Name:          r.Name,
			BlockCount:    len(r.Blocks),
			TotalDuration: r.TotalDuration,
			LastPlayed:    r.LastPlayed,
		})
	}
	return out, nil
}

func (i *Interactor) GetRoutine(ctx context.Context, id string) (dto.RoutineDetailOutput, error) {
	return detail(i.svc.Get(ctx, id))
}

func (i *Interactor) CreateRoutine(ctx context.Context, input dto.CreateRoutineInput) (dto.RoutineDetailOutput, error) {
	specs := make([]service.BlockSpec, 0, len(input.Blocks))
	for _, b := range input.Blocks {
		spec, err := toSpec(b)
		if err != nil {
			return dto.RoutineDetailOutput{}, err
		}
		specs = append(specs, spec)
	}
	return detail(i.svc.Create(ctx, input.Name, specs))
}

func (i *Interactor) RenameRoutine(ctx context.Context, input dto.RenameRoutineInput) (dto.RoutineDetailOutput, error) {
	return detail(i.svc.Rename(ctx, input.RoutineID, input.Name))
}

func (i *Interactor) DeleteRoutine(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) AddBlock(ctx context.Context, input dto.AddBlockInput) (dto.RoutineDetailOutput, error) {
	spec, err := toSpec(input.Block)
	if err != nil {
		return dto.RoutineDetailOutput{}, err
	}
	return detail(i.svc.AddBlock(ctx, input.RoutineID, spec, input.At))
}

func (i *Interactor) UpdateBlock(ctx context.Context, input dto.UpdateBlockInput) (dto.RoutineDetailOutput, error) {
	patch := domain.BlockPatch{Name: input.Name, Duration: input.Duration}
	if input.Type != nil {
		kind, err := domain.ParseBlockKind(*input.Type)
		if err != nil {
			return dto.RoutineDetailOutput{}, err
		}
		patch.Kind = &kind
	}
	return detail(i.svc.UpdateBlock(ctx, input.RoutineID, input.BlockID, patch))
}

func (i *Interactor) RemoveBlock(ctx context.Context, input dto.BlockRefInput) (dto.RoutineDetailOutput, error) {
	return detail(i.svc.RemoveBlock(ctx, input.RoutineID, input.BlockID))
}

func (i *Interactor) DuplicateBlock(ctx context.Context, input dto.BlockRefInput) (dto.RoutineDetailOutput, error) {
	return detail(i.svc.DuplicateBlock(ctx, input.RoutineID, input.BlockID))
}

func (i *Interactor) MoveBlock(ctx context.Context, input dto.MoveBlockInput) (dto.RoutineDetailOutput, error) {
	return detail(i.svc.MoveBlock(ctx, input.RoutineID, input.Index, input.Direction))
}

func (i *Interactor) MarkPlayed(ctx context.Context, id string, at time.Time) error {
	return i.svc.MarkPlayed(ctx, id, at)
}

func toSpec(b dto.BlockInput) (service.BlockSpec, error) {
	kind, err := domain.ParseBlockKind(b.Type)
	if err != nil {
		return service.BlockSpec{}, err
	}
	return service.BlockSpec{Name: b.Name, Duration: b.Duration, Kind: kind}, nil
}

func detail(r domain.Routine, err error) (dto.RoutineDetailOutput, error) {
	if err != nil {
		return dto.RoutineDetailOutput{}, err
	}
	blocks := make([]dto.BlockOutput, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		blocks = append(blocks, dto.BlockOutput{ID: b.ID, Name: b.Name, Duration: b.Duration, Type: string(b.Kind)})
	}
	return dto.RoutineDetailOutput{
		ID:            r.ID,
		Name:          r.Name,
		TotalDuration: r.TotalDuration,
		LastPlayed:    r.LastPlayed,
		Blocks:        blocks,
	}, nil
}
