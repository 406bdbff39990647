package in

import (
	"context"

	"cronos/internal/modules/history/dto"
	historyin "cronos/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Summary(ctx context.Context) (dto.Summary, error) {
	return h.usecase.Summarize(ctx)
}
