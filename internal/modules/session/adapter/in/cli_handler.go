package in

import (
	"context"

	sessiondto "cronos/internal/modules/session/dto"
	sessionin "cronos/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, routineID string) (sessiondto.StateOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{RoutineID: routineID})
}

func (h CLIHandler) TogglePause(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.TogglePause(ctx)
}

func (h CLIHandler) Adjust(ctx context.Context, deltaSeconds int) (sessiondto.StateOutput, error) {
	return h.usecase.Adjust(ctx, sessiondto.AdjustInput{DeltaSeconds: deltaSeconds})
}

func (h CLIHandler) Skip(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) Quit(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.Quit(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (sessiondto.StateOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Subscribe(buffer int) (<-chan sessiondto.EventOutput, func()) {
	return h.usecase.Subscribe(buffer)
}
