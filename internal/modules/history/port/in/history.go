package in

import (
	"context"

	"cronos/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.EntryOutput, error)
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Summarize(ctx context.Context) (dto.Summary, error)
}
