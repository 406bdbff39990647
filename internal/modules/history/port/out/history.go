package out

import (
	"context"

	"cronos/internal/modules/history/domain"
)

// EntryStore is append-only: there is no way to rewrite or drop an entry.
type EntryStore interface {
	Append(ctx context.Context, entry domain.Entry) error
	List(ctx context.Context) ([]domain.Entry, error)
}
