package ports

import (
	"context"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order) (int64, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, id int64) error
}
