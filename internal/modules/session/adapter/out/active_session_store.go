package out

import (
	"context"
	"encoding/json"
	"fmt"

	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
	apperrors "cronos/internal/platform/errors"
	"cronos/internal/platform/kv"
)

const activeSessionKey = "active_session"

type KVActiveSessionStore struct {
	store kv.Store
}

func NewKVActiveSessionStore(store kv.Store) sessionout.ActiveSessionStore {
	return &KVActiveSessionStore{store: store}
}

func (s *KVActiveSessionStore) SaveActive(ctx context.Context, snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	return s.store.Save(ctx, activeSessionKey, payload)
}

func (s *KVActiveSessionStore) LoadActive(ctx context.Context) (domain.Snapshot, error) {
	payload, found, err := s.store.Load(ctx, activeSessionKey)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read active session: %w", err)
	}
	if !found {
		return domain.Snapshot{}, apperrors.ErrNoActiveSession
	}
	snapshot := domain.Snapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode active session: %w", err)
	}
	if snapshot.ID == "" {
		return domain.Snapshot{}, apperrors.ErrNoActiveSession
	}
	return snapshot, nil
}

func (s *KVActiveSessionStore) ClearActive(ctx context.Context) error {
	return s.store.Delete(ctx, activeSessionKey)
}
