package address

import (
	"context"

	"stockorders/internal/domain"
)

// Repository fetches customer-owned addresses.
type Repository interface {
	ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Address, error)
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
}
