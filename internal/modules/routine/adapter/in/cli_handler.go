package in

import (
	"context"

	"cronos/internal/modules/routine/dto"
	routinein "cronos/internal/modules/routine/port/in"
)

type CLIHandler struct {
	usecase routinein.Usecase
}

func NewCLIHandler(usecase routinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.RoutineOutput, error) {
	return h.usecase.ListRoutines(ctx)
}

func (h CLIHandler) Show(ctx context.Context, routineID string) (dto.RoutineDetailOutput, error) {
	return h.usecase.GetRoutine(ctx, routineID)
}

func (h CLIHandler) Create(ctx context.Context, name string, blocks []dto.BlockInput) (dto.RoutineDetailOutput, error) {
	return h.usecase.CreateRoutine(ctx, dto.CreateRoutineInput{Name: name, Blocks: blocks})
}

func (h CLIHandler) Rename(ctx context.Context, routineID, name string) (dto.RoutineDetailOutput, error) {
	return h.usecase.RenameRoutine(ctx, dto.RenameRoutineInput{RoutineID: routineID, Name: name})
}

func (h CLIHandler) Delete(ctx context.Context, routineID string) error {
	return h.usecase.DeleteRoutine(ctx, routineID)
}

func (h CLIHandler) AddBlock(ctx context.Context, routineID, name string, duration int, blockType string, at *int) (dto.RoutineDetailOutput, error) {
	return h.usecase.AddBlock(ctx, dto.AddBlockInput{
		RoutineID: routineID,
		Block:     dto.BlockInput{Name: name, Duration: duration, Type: blockType},
		At:        at,
	})
}

func (h CLIHandler) UpdateBlock(ctx context.Context, input dto.UpdateBlockInput) (dto.RoutineDetailOutput, error) {
	return h.usecase.UpdateBlock(ctx, input)
}

func (h CLIHandler) RemoveBlock(ctx context.Context, routineID, blockID string) (dto.RoutineDetailOutput, error) {
	return h.usecase.RemoveBlock(ctx, dto.BlockRefInput{RoutineID: routineID, BlockID: blockID})
}

func (h CLIHandler) DuplicateBlock(ctx context.Context, routineID, blockID string) (dto.RoutineDetailOutput, error) {
	return h.usecase.DuplicateBlock(ctx, dto.BlockRefInput{RoutineID: routineID, BlockID: blockID})
}

func (h CLIHandler) MoveBlock(ctx context.Context, routineID string, index, direction int) (dto.RoutineDetailOutput, error) {
	return h.usecase.MoveBlock(ctx, dto.MoveBlockInput{RoutineID: routineID, Index: index, Direction: direction})
}
