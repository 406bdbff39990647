package out

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"cronos/internal/modules/history/domain"
	historyout "cronos/internal/modules/history/port/out"
	"cronos/internal/platform/kv"
)

const historyKey = "history"

type KVEntryStore struct {
	mu    sync.Mutex
	store kv.Store
}

func NewKVEntryStore(store kv.Store) historyout.EntryStore {
	return &KVEntryStore{store: store}
}

func (s *KVEntryStore) Append(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return s.store.Save(ctx, historyKey, raw)
}

func (s *KVEntryStore) List(ctx context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *KVEntryStore) loadLocked(ctx context.Context) ([]domain.Entry, error) {
	raw, found, err := s.store.Load(ctx, historyKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Entry{}, nil
	}
	var entries []domain.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}
