package in

import (
	"context"
	"time"

	"cronos/internal/modules/routine/dto"
)

type Usecase interface {
	ListRoutines(ctx context.Context) ([]dto.RoutineOutput, error)
	GetRoutine(ctx context.Context, id string) (dto.RoutineDetailOutput, error)
	CreateRoutine(ctx context.Context, input dto.CreateRoutineInput) (dto.RoutineDetailOutput, error)
	RenameRoutine(ctx context.Context, input dto.RenameRoutineInput) (dto.RoutineDetailOutput, error)
	DeleteRoutine(ctx context.Context, id string) error
	AddBlock(ctx context.Context, input dto.AddBlockInput) (dto.RoutineDetailOutput, error)
	UpdateBlock(ctx context.Context, input dto.UpdateBlockInput) (dto.RoutineDetailOutput, error)
	RemoveBlock(ctx context.Context, input dto.BlockRefInput) (dto.RoutineDetailOutput, error)
	DuplicateBlock(ctx context.Context, input dto.BlockRefInput) (dto.RoutineDetailOutput, error)
	MoveBlock(ctx context.Context, input dto.MoveBlockInput) (dto.RoutineDetailOutput, error)
	MarkPlayed(ctx context.Context, id string, at time.Time) error
}
