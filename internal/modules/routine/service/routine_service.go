package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cronos/internal/modules/routine/domain"
	routineout "cronos/internal/modules/routine/port/out"
	"cronos/internal/platform/clock"
	apperrors "cronos/internal/platform/errors"
	"cronos/internal/platform/id"
)

type RoutineService struct {
	mu    sync.Mutex
	clock clock.Clock
	idGen id.Generator
	store routineout.RoutineStore
}

func NewRoutineService(clock clock.Clock, idGen id.Generator, store routineout.RoutineStore) *RoutineService {
	return &RoutineService{clock: clock, idGen: idGen, store: store}
}

func (s *RoutineService) List(ctx context.Context) ([]domain.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *RoutineService) Get(ctx context.Context, routineID string) (domain.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	routines, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Routine{}, err
	}
	idx := indexOf(routines, routineID)
	if idx < 0 {
		return domain.Routine{}, fmt.Errorf("routine %s: %w", routineID, apperrors.ErrNotFound)
	}
	return routines[idx], nil
}

type BlockSpec struct {
	Name     string
	Duration int
	Kind     domain.BlockKind
}

func (s *RoutineService) Create(ctx context.Context, name string, blocks []BlockSpec) (domain.Routine, error) {
	built := make([]domain.Block, 0, len(blocks))
	for _, b := range blocks {
		built = append(built, s.newBlock(b))
	}
	routine := domain.New(s.idGen.New(), name, built)
	if err := routine.Validate(); err != nil {
		return domain.Routine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	routines, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Routine{}, err
	}
	routines = append(routines, routine)
	if err := s.store.Save(ctx, routines); err != nil {
		return domain.Routine{}, err
	}
	return routine, nil
}

func (s *RoutineService) Delete(ctx context.Context, routineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	routines, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(routines, routineID)
	if idx < 0 {
		return fmt.Errorf("routine %s: %w", routineID, apperrors.ErrNotFound)
	}
	routines = append(routines[:idx], routines[idx+1:]...)
	return s.store.Save(ctx, routines)
}

func (s *RoutineService) Rename(ctx context.Context, routineID, name string) (domain.Routine, error) {
	return s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		return r.Rename(name), nil
	})
}

func (s *RoutineService) AddBlock(ctx context.Context, routineID string, spec BlockSpec, at *int) (domain.Routine, error) {
	block := s.newBlock(spec)
	return s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		if at == nil {
			return r.AppendBlock(block), nil
		}
		return r.InsertBlock(*at, block), nil
	})
}

func (s *RoutineService) UpdateBlock(ctx context.Context, routineID, blockID string, patch domain.BlockPatch) (domain.Routine, error) {
	return s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		return r.UpdateBlock(blockID, patch)
	})
}

func (s *RoutineService) RemoveBlock(ctx context.Context, routineID, blockID string) (domain.Routine, error) {
	return s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		return r.RemoveBlock(blockID)
	})
}

func (s *RoutineService) DuplicateBlock(ctx context.Context, routineID, blockID string) (domain.Routine, error) {
	newID := s.idGen.New()
	return s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		return r.DuplicateBlock(blockID, newID)
	})
}

func (s *RoutineService) MoveBlock(ctx context.Context, routineID string, index, direction int) (domain.Routine, error) {
	if direction != -1 && direction != 1 {
		return domain.Routine{}, fmt.Errorf("%w: direction must be -1 or 1", apperrors.ErrInvalidInput)
	}
	return s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		return r.MoveBlock(index, direction), nil
	})
}

func (s *RoutineService) MarkPlayed(ctx context.Context, routineID string, at time.Time) error {
	if at.IsZero() {
		at = s.clock.Now()
	}
	_, err := s.edit(ctx, routineID, func(r domain.Routine) (domain.Routine, error) {
		return r.MarkPlayed(at), nil
	})
	return err
}

// edit applies fn to one routine and persists the collection only if the result validates.
func (s *RoutineService) edit(ctx context.Context, routineID string, fn func(domain.Routine) (domain.Routine, error)) (domain.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	routines, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Routine{}, err
	}
	idx := indexOf(routines, routineID)
	if idx < 0 {
		return domain.Routine{}, fmt.Errorf("routine %s: %w", routineID, apperrors.ErrNotFound)
	}
	updated, err := fn(routines[idx])
	if err != nil {
		return domain.Routine{}, err
	}
	if err := updated.Validate(); err != nil {
		return domain.Routine{}, err
	}
	routines[idx] = updated
	if err := s.store.Save(ctx, routines); err != nil {
		return domain.Routine{}, err
	}
	return updated, nil
}

func (s *RoutineService) loadLocked(ctx context.Context) ([]domain.Routine, error) {
	routines, found, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.SeedRoutines(), nil
	}
	return routines, nil
}

func (s *RoutineService) newBlock(spec BlockSpec) domain.Block {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		name = string(spec.Kind)
	}
	return domain.Block{ID: s.idGen.New(), Name: name, Duration: spec.Duration, Kind: spec.Kind}
}

func indexOf(routines []domain.Routine, routineID string) int {
	for i, r := range routines {
		if r.ID == routineID {
			return i
		}
	}
	return -1
}
