package out

import (
	"context"
	"time"

	historydto "cronos/internal/modules/history/dto"
	historyin "cronos/internal/modules/history/port/in"
	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
)

type HistoryRecorderAdapter struct {
	history historyin.Usecase
}

func NewHistoryRecorderAdapter(history historyin.Usecase) sessionout.HistoryRecorder {
	return &HistoryRecorderAdapter{history: history}
}

func (a *HistoryRecorderAdapter) Record(ctx context.Context, routineName string, totalTime int, outcome domain.Outcome, at time.Time) error {
	_, err := a.history.Record(ctx, historydto.RecordInput{
		RoutineName: routineName,
		TotalTime:   totalTime,
		Status:      string(outcome),
		Date:        at,
	})
	return err
}
