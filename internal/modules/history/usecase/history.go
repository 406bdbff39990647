package usecase

import (
	"context"

	"cronos/internal/modules/history/domain"
	"cronos/internal/modules/history/dto"
	historyin "cronos/internal/modules/history/port/in"
	"cronos/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.EntryOutput, error) {
	entry, err := i.svc.Record(ctx, domain.Entry{
		RoutineName: input.RoutineName,
		Date:        input.Date,
		TotalTime:   input.TotalTime,
		Status:      domain.Status(input.Status),
	})
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toOutput(entry), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.EntryOutput, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, toOutput(e))
	}
	return out, nil
}

func (i *Interactor) Summarize(ctx context.Context) (dto.Summary, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return dto.Summary{}, err
	}
	summary := dto.Summary{Sessions: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case domain.StatusCompleted:
			summary.Completed++
			summary.TotalTime += e.TotalTime
		case domain.StatusAborted:
			summary.Aborted++
		}
	}
	return summary, nil
}

func toOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{ID: e.ID, RoutineName: e.RoutineName, Date: e.Date, TotalTime: e.TotalTime, Status: string(e.Status)}
}
