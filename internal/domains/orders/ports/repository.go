package ports

import (
	"context"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
)

// Repository loads and persists order aggregates. Every call is its own unit of work.
type Repository interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	// GetOrders returns at most count orders after skipping skip, ordered by id.
	// Listing is not implemented yet; implementations return ErrNotImplemented.
	GetOrders(ctx context.Context, skip, count int) ([]*domain.Order, error)
	AddOrder(ctx context.Context, order *domain.Order) (int64, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	RemoveOrder(ctx context.Context, id int64) error
}
