package postgres

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

// orderGraphRow is one row of the order read model: the order joined with its
// references and one line item (or none) with the item's product, category and supplier.
type orderGraphRow struct {
	OrderID        int64           `gorm:"column:order_id"`
	CustomerID     string          `gorm:"column:customer_id"`
	EmployeeID     int64           `gorm:"column:employee_id"`
	ShipperID      int64           `gorm:"column:shipper_id"`
	OrderDate      time.Time       `gorm:"column:order_date"`
	RequiredDate   time.Time       `gorm:"column:required_date"`
	ShippedDate    *time.Time      `gorm:"column:shipped_date"`
	Freight        decimal.Decimal `gorm:"column:freight"`
	ShipName       string          `gorm:"column:ship_name"`
	ShipAddress    string          `gorm:"column:ship_address"`
	ShipCity       string          `gorm:"column:ship_city"`
	ShipRegion     *string         `gorm:"column:ship_region"`
	ShipPostalCode string          `gorm:"column:ship_postal_code"`
	ShipCountry    string          `gorm:"column:ship_country"`

	CustomerKey         *string `gorm:"column:customer_key"`
	CustomerCompanyName *string `gorm:"column:customer_company_name"`
	EmployeeKey         *int64  `gorm:"column:employee_key"`
	EmployeeFirstName   *string `gorm:"column:employee_first_name"`
	EmployeeLastName    *string `gorm:"column:employee_last_name"`
	EmployeeCountry     *string `gorm:"column:employee_country"`
	ShipperKey          *int64  `gorm:"column:shipper_key"`
	ShipperCompanyName  *string `gorm:"column:shipper_company_name"`

	DetailProductID *int64              `gorm:"column:detail_product_id"`
	DetailUnitPrice decimal.NullDecimal `gorm:"column:detail_unit_price"`
	DetailQuantity  *int64              `gorm:"column:detail_quantity"`
	DetailDiscount  *float64            `gorm:"column:detail_discount"`

	ProductKey          *int64  `gorm:"column:product_key"`
	ProductName         *string `gorm:"column:product_name"`
	ProductCategoryID   *int64  `gorm:"column:product_category_id"`
	ProductSupplierID   *int64  `gorm:"column:product_supplier_id"`
	CategoryKey         *int64  `gorm:"column:category_key"`
	CategoryName        *string `gorm:"column:category_name"`
	SupplierKey         *int64  `gorm:"column:supplier_key"`
	SupplierCompanyName *string `gorm:"column:supplier_company_name"`
}

const orderGraphColumns = `o.id AS order_id, o.customer_id, o.employee_id, o.shipper_id,
	o.order_date, o.required_date, o.shipped_date, o.freight, o.ship_name,
	o.ship_address, o.ship_city, o.ship_region, o.ship_postal_code, o.ship_country,
	c.id AS customer_key, c.company_name AS customer_company_name,
	e.id AS employee_key, e.first_name AS employee_first_name, e.last_name AS employee_last_name, e.country AS employee_country,
	s.id AS shipper_key, s.company_name AS shipper_company_name,
	od.product_id AS detail_product_id, od.unit_price AS detail_unit_price, od.quantity AS detail_quantity, od.discount AS detail_discount,
	p.id AS product_key, p.product_name AS product_name, p.category_id AS product_category_id, p.supplier_id AS product_supplier_id,
	cat.id AS category_key, cat.category_name AS category_name,
	sup.id AS supplier_key, sup.company_name AS supplier_company_name`

// loadOrderGraph reads the whole order graph in a single statement so the order
// and its related rows come from the same snapshot. Outer joins keep dangling
// references visible instead of dropping the order.
func loadOrderGraph(tx *gorm.DB, id int64) ([]orderGraphRow, error) {
	var rows []orderGraphRow
	err := tx.Table("orders AS o").
		Select(orderGraphColumns).
		Joins("LEFT JOIN customers AS c ON c.id = o.customer_id").
		Joins("LEFT JOIN employees AS e ON e.id = o.employee_id").
		Joins("LEFT JOIN shippers AS s ON s.id = o.shipper_id").
		Joins("LEFT JOIN order_details AS od ON od.order_id = o.id").
		Joins("LEFT JOIN products AS p ON p.id = od.product_id").
		Joins("LEFT JOIN categories AS cat ON cat.id = p.category_id").
		Joins("LEFT JOIN suppliers AS sup ON sup.id = p.supplier_id").
		Where("o.id = ?", id).
		Order("od.product_id").
		Scan(&rows).Error
	return rows, err
}

// assembleOrder folds the joined rows into an aggregate. rows must be non-empty.
func assembleOrder(rows []orderGraphRow) (*domain.Order, error) {
	head := rows[0]
	if head.CustomerKey == nil {
		return nil, corrupted(head.OrderID, "customer %q", head.CustomerID)
	}
	if head.EmployeeKey == nil {
		return nil, corrupted(head.OrderID, "employee %d", head.EmployeeID)
	}
	if head.ShipperKey == nil {
		return nil, corrupted(head.OrderID, "shipper %d", head.ShipperID)
	}

	order := &domain.Order{
		ID:       head.OrderID,
		Customer: domain.Customer{Code: domain.CustomerCode(head.CustomerID), CompanyName: deref(head.CustomerCompanyName)},
		Employee: domain.Employee{
			ID:        head.EmployeeID,
			FirstName: deref(head.EmployeeFirstName),
			LastName:  deref(head.EmployeeLastName),
			Country:   deref(head.EmployeeCountry),
		},
		Shipper:      domain.Shipper{ID: head.ShipperID, CompanyName: deref(head.ShipperCompanyName)},
		OrderDate:    head.OrderDate,
		RequiredDate: head.RequiredDate,
		ShippedDate:  head.ShippedDate,
		Freight:      head.Freight,
		ShipName:     head.ShipName,
		ShippingAddress: domain.NewShippingAddress(
			head.ShipAddress, head.ShipCity, head.ShipRegion, head.ShipPostalCode, head.ShipCountry),
	}

	details := make([]domain.OrderDetail, 0, len(rows))
	for _, row := range rows {
		if row.DetailProductID == nil {
			continue
		}
		productID := *row.DetailProductID
		if row.ProductKey == nil {
			return nil, corrupted(order.ID, "product %d", productID)
		}
		if row.CategoryKey == nil {
			return nil, corrupted(order.ID, "category %d of product %d", deref(row.ProductCategoryID), productID)
		}
		if row.SupplierKey == nil {
			return nil, corrupted(order.ID, "supplier %d of product %d", deref(row.ProductSupplierID), productID)
		}
		details = append(details, domain.OrderDetail{
			Product: domain.Product{
				ID:         productID,
				Name:       deref(row.ProductName),
				CategoryID: *row.CategoryKey,
				Category:   deref(row.CategoryName),
				SupplierID: *row.SupplierKey,
				Supplier:   deref(row.SupplierCompanyName),
			},
			UnitPrice: row.DetailUnitPrice.Decimal,
			Quantity:  deref(row.DetailQuantity),
			Discount:  deref(row.DetailDiscount),
		})
	}
	order.OrderDetails = details
	return order, nil
}

func corrupted(orderID int64, format string, args ...any) error {
	return fmt.Errorf("%w: order %d references missing %s", ports.ErrStorageCorrupted, orderID, fmt.Sprintf(format, args...))
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
