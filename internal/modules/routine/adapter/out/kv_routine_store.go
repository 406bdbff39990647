package out

import (
	"context"
	"encoding/json"
	"fmt"

	"cronos/internal/modules/routine/domain"
	routineout "cronos/internal/modules/routine/port/out"
	"cronos/internal/platform/kv"
)

const routinesKey = "routines"

type routineDocument struct {
	Version  int              `json:"version"`
	Routines []domain.Routine `json:"routines"`
}

type KVRoutineStore struct {
	store kv.Store
}

func NewKVRoutineStore(store kv.Store) routineout.RoutineStore {
	return &KVRoutineStore{store: store}
}

func (s *KVRoutineStore) Load(ctx context.Context) ([]domain.Routine, bool, error) {
	raw, found, err := s.store.Load(ctx, routinesKey)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	var doc routineDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("decode routines: %w", err)
	}
	for i := range doc.Routines {
		// totals are derived, never trusted from disk
		doc.Routines[i] = domain.New(doc.Routines[i].ID, doc.Routines[i].Name, doc.Routines[i].Blocks).MarkPlayed(doc.Routines[i].LastPlayed)
	}
	return doc.Routines, true, nil
}

func (s *KVRoutineStore) Save(ctx context.Context, routines []domain.Routine) error {
	raw, err := json.Marshal(routineDocument{Version: domain.SchemaVersion, Routines: routines})
	if err != nil {
		return fmt.Errorf("encode routines: %w", err)
	}
	return s.store.Save(ctx, routinesKey, raw)
}
