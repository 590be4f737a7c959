package order

import (
	"context"

	"stockorders/internal/domain"
)

// CancelResult carries the fields broadcast after a successful cancel.
type CancelResult struct {
	OrderID      string
	OrderNo      string
	CustomerName string
}

// Repository persists orders and serves the joined order graph that the
// reporting engine projects from.
type Repository interface {
	// Create persists the order and its lines as a single transaction.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	// Cancel flips the active flag of an active order owned by the given
	// customer. Returns domain.ErrNotFound when no such order exists.
	Cancel(ctx context.Context, orderID, customerID string) (*CancelResult, error)
	// ListGraph loads every order, active or not, with customer, both
	// addresses, and lines with their stock attached.
	ListGraph(ctx context.Context) ([]domain.Order, error)
	// ListGraphByCustomer is ListGraph restricted to one customer.
	ListGraphByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	// ListWithCustomer loads every order row with the customer attached,
	// lines omitted.
	ListWithCustomer(ctx context.Context) ([]domain.Order, error)
	// ListActiveByCustomer loads one customer's active orders, newest
	// first, lines omitted.
	ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}
