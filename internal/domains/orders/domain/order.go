package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoLineItems        = errors.New("an order must contain at least one line item")
	ErrDuplicateProduct   = errors.New("a product may appear at most once per order")
	ErrInvalidProductID   = errors.New("product id must be greater than zero")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidDiscount    = errors.New("discount must be between 0 and 1")
	ErrInvalidUnitPrice   = errors.New("unit price must be non-negative with at most two decimal places")
	ErrInvalidFreight     = errors.New("freight must be non-negative with at most two decimal places")
	ErrInvalidEmployeeID  = errors.New("employee id must be greater than zero")
	ErrInvalidShipperID   = errors.New("shipper id must be greater than zero")
	ErrInvalidOrderID     = errors.New("order id must not be negative")
	ErrShippedBeforeOrder = errors.New("shipped date precedes order date")
)

// Customer is the display snapshot of the ordering customer.
type Customer struct {
	Code        CustomerCode
	CompanyName string
}

// Employee is the display snapshot of the employee who took the order.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Country   string
}

// Shipper is the display snapshot of the carrier.
type Shipper struct {
	ID          int64
	CompanyName string
}

// Product is the denormalized product snapshot carried by a line item.
type Product struct {
	ID         int64
	Name       string
	CategoryID int64
	Category   string
	SupplierID int64
	Supplier   string
}

// OrderDetailKey is the natural identity of a line item.
type OrderDetailKey struct {
	OrderID   int64
	ProductID int64
}

// OrderDetail is a single product entry of an order.
type OrderDetail struct {
	Product   Product
	UnitPrice decimal.Decimal
	Quantity  int64
	Discount  float64
}

// Key returns the compound key of the line item within the given order.
func (d OrderDetail) Key(orderID int64) OrderDetailKey {
	return OrderDetailKey{OrderID: orderID, ProductID: d.Product.ID}
}

// Validate checks the line-item level rules.
func (d OrderDetail) Validate() error {
	if d.Product.ID <= 0 {
		return ErrInvalidProductID
	}
	if d.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if d.Discount < 0 || d.Discount > 1 {
		return ErrInvalidDiscount
	}
	if d.UnitPrice.IsNegative() || !isCents(d.UnitPrice) {
		return ErrInvalidUnitPrice
	}
	return nil
}

// Order models the purchase order aggregate.
type Order struct {
	ID              int64
	Customer        Customer
	Employee        Employee
	Shipper         Shipper
	OrderDate       time.Time
	RequiredDate    time.Time
	ShippedDate     *time.Time
	Freight         decimal.Decimal
	ShipName        string
	ShippingAddress ShippingAddress
	OrderDetails    []OrderDetail
}

// Validate enforces the aggregate invariants required before persisting.
func (o *Order) Validate() error {
	if o.ID < 0 {
		return ErrInvalidOrderID
	}
	if err := o.Customer.Code.Validate(); err != nil {
		return err
	}
	if o.Employee.ID <= 0 {
		return ErrInvalidEmployeeID
	}
	if o.Shipper.ID <= 0 {
		return ErrInvalidShipperID
	}
	if o.Freight.IsNegative() || !isCents(o.Freight) {
		return ErrInvalidFreight
	}
	if o.ShippedDate != nil && !o.OrderDate.IsZero() && o.ShippedDate.Before(o.OrderDate) {
		return ErrShippedBeforeOrder
	}
	if len(o.OrderDetails) == 0 {
		return ErrNoLineItems
	}
	seen := make(map[OrderDetailKey]struct{}, len(o.OrderDetails))
	for _, d := range o.OrderDetails {
		if err := d.Validate(); err != nil {
			return err
		}
		key := d.Key(o.ID)
		if _, dup := seen[key]; dup {
			return ErrDuplicateProduct
		}
		seen[key] = struct{}{}
	}
	return nil
}

// IsShipped reports whether the order carries a shipped date.
func (o *Order) IsShipped() bool {
	return o.ShippedDate != nil
}

// Clone returns a deep copy so callers never share mutable state with a store.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.ShippedDate != nil {
		shipped := *o.ShippedDate
		clone.ShippedDate = &shipped
	}
	clone.ShippingAddress = o.ShippingAddress.Clone()
	if o.OrderDetails != nil {
		clone.OrderDetails = append([]OrderDetail(nil), o.OrderDetails...)
	}
	return &clone
}

// isCents reports whether d fits the two-digit scale of the money columns.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}
