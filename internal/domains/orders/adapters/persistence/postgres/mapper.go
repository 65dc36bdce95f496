package postgres

import (
	"time"

	"github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/schema"
	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
)

// toOrderRecord maps the aggregate onto the orders row. References are carried
// as foreign keys only; customer, employee and shipper rows are never written.
func toOrderRecord(order *domain.Order) schema.Order {
	addr := order.ShippingAddress.Clone()
	return schema.Order{
		ID:             order.ID,
		CustomerID:     order.Customer.Code.String(),
		EmployeeID:     order.Employee.ID,
		ShipperID:      order.Shipper.ID,
		OrderDate:      order.OrderDate,
		RequiredDate:   order.RequiredDate,
		ShippedDate:    cloneTime(order.ShippedDate),
		Freight:        order.Freight,
		ShipName:       order.ShipName,
		ShipAddress:    addr.Address,
		ShipCity:       addr.City,
		ShipRegion:     addr.Region,
		ShipPostalCode: addr.PostalCode,
		ShipCountry:    addr.Country,
	}
}

// orderAssignments lists the columns an update overwrites.
func orderAssignments(rec schema.Order) map[string]any {
	return map[string]any{
		"customer_id":      rec.CustomerID,
		"employee_id":      rec.EmployeeID,
		"shipper_id":       rec.ShipperID,
		"order_date":       rec.OrderDate,
		"required_date":    rec.RequiredDate,
		"shipped_date":     rec.ShippedDate,
		"freight":          rec.Freight,
		"ship_name":        rec.ShipName,
		"ship_address":     rec.ShipAddress,
		"ship_city":        rec.ShipCity,
		"ship_region":      rec.ShipRegion,
		"ship_postal_code": rec.ShipPostalCode,
		"ship_country":     rec.ShipCountry,
	}
}

func toDetailRecords(orderID int64, details []domain.OrderDetail) []schema.OrderDetail {
	records := make([]schema.OrderDetail, 0, len(details))
	for _, d := range details {
		key := d.Key(orderID)
		records = append(records, schema.OrderDetail{
			OrderID:   key.OrderID,
			ProductID: key.ProductID,
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
			Discount:  d.Discount,
		})
	}
	return records
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
