package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/schema"
	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

var errNotConfigured = errors.New("postgres order repository not configured")

// Repository persists order aggregates in the Northwind relational schema using GORM.
// It holds no state besides the connection pool; every call is its own transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrder loads the fully hydrated order graph.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, ports.OperationFailed("get order", err)
	}
	rows, err := loadOrderGraph(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, ports.OperationFailed("get order", err)
	}
	if len(rows) == 0 {
		return nil, ports.NotFound(id)
	}
	return assembleOrder(rows)
}

// GetOrders is the listing contract. Listing is not implemented.
func (r *Repository) GetOrders(_ context.Context, skip, count int) ([]*domain.Order, error) {
	if skip < 0 || count < 0 {
		return nil, fmt.Errorf("%w: skip and count must not be negative", ports.ErrInvalidArgument)
	}
	return nil, ports.ErrNotImplemented
}

// AddOrder inserts the order row and its line items atomically and returns the order id.
func (r *Repository) AddOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if err := ports.CheckAggregate(order); err != nil {
		return 0, err
	}
	if err := r.ensureDB(); err != nil {
		return 0, ports.OperationFailed("add order", err)
	}
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := toOrderRecord(order)
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if order.ID > 0 {
			if err := syncOrderSequence(tx); err != nil {
				return err
			}
		}
		if err := insertDetails(tx, record.ID, order.OrderDetails); err != nil {
			return err
		}
		id = record.ID
		return nil
	})
	if err != nil {
		return 0, ports.OperationFailed("add order", err)
	}
	return id, nil
}

// UpdateOrder overwrites the order row and replaces its line items with the
// aggregate's. The order row stays locked until the transaction ends.
func (r *Repository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if err := ports.CheckAggregate(order); err != nil {
		return err
	}
	if err := r.ensureDB(); err != nil {
		return ports.OperationFailed("update order", err)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := lockOrder(tx, order.ID)
		if err != nil {
			return err
		}
		record := toOrderRecord(order)
		if err := tx.Model(&schema.Order{}).
			Where("id = ?", existing.ID).
			Updates(orderAssignments(record)).Error; err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if err := tx.Where("order_id = ?", existing.ID).Delete(&schema.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("delete order details: %w", err)
		}
		return insertDetails(tx, existing.ID, order.OrderDetails)
	})
	return ports.OperationFailed("update order", err)
}

// RemoveOrder deletes the line items and then the order row in one transaction.
func (r *Repository) RemoveOrder(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return ports.OperationFailed("remove order", err)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOrder(tx, id); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&schema.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("delete order details: %w", err)
		}
		result := tx.Delete(&schema.Order{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ports.NotFound(id)
		}
		return nil
	})
	return ports.OperationFailed("remove order", err)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errNotConfigured
	}
	return nil
}

// lockOrder loads the orders row, taking a row lock where the dialect supports it.
func lockOrder(tx *gorm.DB, id int64) (*schema.Order, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record schema.Order
	if err := q.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.NotFound(id)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &record, nil
}

// syncOrderSequence moves the orders id sequence past explicitly supplied ids
// so later inserts without an id do not collide. Only Postgres keeps a sequence.
func syncOrderSequence(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	err := tx.Exec(`SELECT setval(pg_get_serial_sequence('orders', 'id'), GREATEST((SELECT MAX(id) FROM orders), 1))`).Error
	if err != nil {
		return fmt.Errorf("advance order id sequence: %w", err)
	}
	return nil
}

func insertDetails(tx *gorm.DB, orderID int64, details []domain.OrderDetail) error {
	records := toDetailRecords(orderID, details)
	if err := tx.Omit(clause.Associations).Create(&records).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("order details reference a missing product: %w", err)
		}
		return fmt.Errorf("insert order details: %w", err)
	}
	return nil
}
