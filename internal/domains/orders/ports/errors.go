package ports

import (
	"errors"
	"fmt"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
)

var (
	// ErrOrderNotFound is returned when no order exists for the requested identifier.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidArgument is returned for nil or malformed input, before any storage access.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvariantViolation is returned when an aggregate rule is broken, before any storage access.
	ErrInvariantViolation = errors.New("repository invariant violation")
	// ErrOperationFailed matches every *OperationError.
	ErrOperationFailed = errors.New("repository operation failed")
	// ErrStorageCorrupted signals a missing row that a foreign key guarantees to exist.
	ErrStorageCorrupted = errors.New("order graph is inconsistent with its foreign keys")
	// ErrNotImplemented is returned by operations that exist only as a contract, such as order listing.
	ErrNotImplemented = errors.New("not implemented")
)

// OperationError wraps a storage failure with the repository operation that hit it.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, ErrOperationFailed)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrOperationFailed, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) Is(target error) bool { return target == ErrOperationFailed }

// OperationFailed wraps err unless it already carries one of the typed repository errors.
func OperationFailed(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvariantViolation) ||
		errors.Is(err, ErrStorageCorrupted) ||
		errors.Is(err, ErrOperationFailed) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}

// NotFound reports a missing order together with its identifier.
func NotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
}

// InvariantViolation tags a domain rule failure with ErrInvariantViolation.
func InvariantViolation(err error) error {
	return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
}

// CheckAggregate rejects input a repository must refuse before touching storage.
func CheckAggregate(order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", ErrInvalidArgument)
	}
	if err := order.Validate(); err != nil {
		return InvariantViolation(err)
	}
	return nil
}
