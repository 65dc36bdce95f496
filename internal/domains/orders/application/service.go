package application

import (
	"context"
	"fmt"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

// DefaultPageSize applies when a listing request does not name a count.
const DefaultPageSize = 20

// Service orchestrates order use cases on top of the repository.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, skip, count int) ([]*domain.Order, error) {
	if count == 0 {
		count = DefaultPageSize
	}
	return s.repo.GetOrders(ctx, skip, count)
}

// CreateOrder persists a new order and returns its identifier. The caller's
// aggregate is not modified.
func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if order == nil {
		return 0, fmt.Errorf("%w: order is nil", ports.ErrInvalidArgument)
	}
	return s.repo.AddOrder(ctx, order.Clone())
}

func (s *Service) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", ports.ErrInvalidArgument)
	}
	if order.ID <= 0 {
		return fmt.Errorf("%w: order id must be positive", ports.ErrInvalidArgument)
	}
	return s.repo.UpdateOrder(ctx, order.Clone())
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.RemoveOrder(ctx, id)
}

var _ ports.Service = (*Service)(nil)
