package stock

import (
	"context"

	"stockorders/internal/domain"
)

// Repository resolves catalog entries. Only active stock is visible; both
// queries exclude soft-deleted rows.
type Repository interface {
	ListActive(ctx context.Context) ([]domain.Stock, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Stock, error)
}
