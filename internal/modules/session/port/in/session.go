package in

import (
	"context"

	"cronos/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Resume(ctx context.Context) (dto.StateOutput, error)
	TogglePause(ctx context.Context) (dto.StateOutput, error)
	Adjust(ctx context.Context, input dto.AdjustInput) (dto.StateOutput, error)
	Skip(ctx context.Context) (dto.StateOutput, error)
	Quit(ctx context.Context) (dto.StateOutput, error)
	Current(ctx context.Context) (dto.StateOutput, error)
	Subscribe(buffer int) (<-chan dto.EventOutput, func())
}
