package service

import (
	"context"
	"sort"
	"strings"

	"cronos/internal/modules/history/domain"
	historyout "cronos/internal/modules/history/port/out"
	"cronos/internal/platform/clock"
	"cronos/internal/platform/id"
)

type HistoryService struct {
	clock clock.Clock
	idGen id.Generator
	store historyout.EntryStore
}

func NewHistoryService(clock clock.Clock, idGen id.Generator, store historyout.EntryStore) *HistoryService {
	return &HistoryService{clock: clock, idGen: idGen, store: store}
}

func (s *HistoryService) Record(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	entry.ID = s.idGen.New()
	entry.RoutineName = strings.TrimSpace(entry.RoutineName)
	if entry.Date.IsZero() {
		entry.Date = s.clock.Now()
	}
	if entry.Status == domain.StatusAborted {
		entry.TotalTime = 0
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// List returns newest first; entries sharing a timestamp come back in reverse append order.
func (s *HistoryService) List(ctx context.Context) ([]domain.Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
