package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
)

func TestOperationFailed_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := OperationFailed("add order", cause)

	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.ErrorIs(t, err, cause)

	var opErr *OperationError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, "add order", opErr.Op)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestOperationFailed_KeepsTypedErrors(t *testing.T) {
	notFound := NotFound(42)
	assert.Same(t, notFound, OperationFailed("remove order", notFound))
	assert.ErrorIs(t, notFound, ErrOrderNotFound)
	assert.Contains(t, notFound.Error(), "42")

	assert.Nil(t, OperationFailed("get order", nil))
}

func TestInvariantViolation_KeepsRule(t *testing.T) {
	rule := errors.New("an order must contain at least one line item")
	err := InvariantViolation(rule)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.ErrorIs(t, err, rule)
}

func TestCheckAggregate(t *testing.T) {
	assert.ErrorIs(t, CheckAggregate(nil), ErrInvalidArgument)

	empty := &domain.Order{Customer: domain.Customer{Code: "ALFKI"}, Employee: domain.Employee{ID: 1}, Shipper: domain.Shipper{ID: 1}}
	err := CheckAggregate(empty)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.ErrorIs(t, err, domain.ErrNoLineItems)
}

func TestSentinels_AreDistinct(t *testing.T) {
	sentinels := []error{ErrOrderNotFound, ErrInvalidArgument, ErrInvariantViolation, ErrOperationFailed, ErrStorageCorrupted, ErrNotImplemented}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
