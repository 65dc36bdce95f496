package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/schema"
	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Display names are
// re-populated from the reference catalog on every read, and references the
// catalog does not know are refused the way foreign keys would refuse them.
type Repository struct {
	mu      sync.RWMutex
	catalog catalogIndex
	orders  map[int64]*domain.Order
	nextID  int64
}

func NewRepository(catalog *schema.Catalog) *Repository {
	return &Repository{
		catalog: indexCatalog(catalog),
		orders:  map[int64]*domain.Order{},
	}
}

func (r *Repository) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.NotFound(id)
	}
	return r.catalog.hydrate(order)
}

func (r *Repository) GetOrders(_ context.Context, skip, count int) ([]*domain.Order, error) {
	if skip < 0 || count < 0 {
		return nil, fmt.Errorf("%w: skip and count must not be negative", ports.ErrInvalidArgument)
	}
	return nil, ports.ErrNotImplemented
}

func (r *Repository) AddOrder(_ context.Context, order *domain.Order) (int64, error) {
	if err := ports.CheckAggregate(order); err != nil {
		return 0, err
	}
	if err := r.catalog.checkReferences(order); err != nil {
		return 0, ports.OperationFailed("add order", err)
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if _, exists := r.orders[clone.ID]; exists {
		return 0, ports.OperationFailed("add order", fmt.Errorf("duplicate order id %d", clone.ID))
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.orders[clone.ID] = clone
	return clone.ID, nil
}

func (r *Repository) UpdateOrder(_ context.Context, order *domain.Order) error {
	if err := ports.CheckAggregate(order); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return ports.NotFound(order.ID)
	}
	if err := r.catalog.checkReferences(order); err != nil {
		return ports.OperationFailed("update order", err)
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *Repository) RemoveOrder(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.NotFound(id)
	}
	delete(r.orders, id)
	return nil
}
