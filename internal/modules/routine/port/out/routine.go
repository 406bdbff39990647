package out

import (
	"context"

	"cronos/internal/modules/routine/domain"
)

// RoutineStore persists the whole routine collection as one unit. Load reports found=false
// when nothing has ever been saved.
type RoutineStore interface {
	Load(ctx context.Context) ([]domain.Routine, bool, error)
	Save(ctx context.Context, routines []domain.Routine) error
}
