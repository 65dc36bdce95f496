package mapper

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

// FullOrder is the read shape of an order with every display snapshot resolved.
type FullOrder struct {
	ID              int64             `json:"id"`
	Customer        Customer          `json:"customer"`
	Employee        Employee          `json:"employee"`
	OrderDate       time.Time         `json:"orderDate"`
	RequiredDate    time.Time         `json:"requiredDate"`
	ShippedDate     *time.Time        `json:"shippedDate,omitempty"`
	Shipper         Shipper           `json:"shipper"`
	Freight         decimal.Decimal   `json:"freight"`
	ShipName        string            `json:"shipName"`
	ShippingAddress ShippingAddress   `json:"shippingAddress"`
	OrderDetails    []FullOrderDetail `json:"orderDetails"`
}

type Customer struct {
	Code        string `json:"code"`
	CompanyName string `json:"companyName"`
}

type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country"`
}

type Shipper struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
}

type ShippingAddress struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Region     *string `json:"region,omitempty"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
}

type FullOrderDetail struct {
	ProductID           int64           `json:"productId"`
	ProductName         string          `json:"productName"`
	CategoryID          int64           `json:"categoryId"`
	CategoryName        string          `json:"categoryName"`
	SupplierID          int64           `json:"supplierId"`
	SupplierCompanyName string          `json:"supplierCompanyName"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Quantity            int64           `json:"quantity"`
	Discount            float64         `json:"discount"`
}

// BriefOrder is the write shape: references by identifier, address flattened.
type BriefOrder struct {
	ID             int64              `json:"id"`
	CustomerID     string             `json:"customerId" binding:"required"`
	EmployeeID     int64              `json:"employeeId"`
	OrderDate      time.Time          `json:"orderDate"`
	RequiredDate   time.Time          `json:"requiredDate"`
	ShippedDate    *time.Time         `json:"shippedDate,omitempty"`
	ShipperID      int64              `json:"shipperId"`
	Freight        decimal.Decimal    `json:"freight"`
	ShipName       string             `json:"shipName"`
	ShipAddress    string             `json:"shipAddress"`
	ShipCity       string             `json:"shipCity"`
	ShipRegion     *string            `json:"shipRegion,omitempty"`
	ShipPostalCode string             `json:"shipPostalCode"`
	ShipCountry    string             `json:"shipCountry"`
	OrderDetails   []BriefOrderDetail `json:"orderDetails"`
}

type BriefOrderDetail struct {
	ProductID int64           `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int64           `json:"quantity"`
	Discount  float64         `json:"discount"`
}

// AddOrderResult carries the identifier assigned to a created order.
type AddOrderResult struct {
	OrderID int64 `json:"orderId"`
}

// ToDomainOrder converts a write request into an aggregate identified by id.
// Only the customer code is checked here; aggregate rules are left to the repository.
func ToDomainOrder(id int64, order BriefOrder) (*domain.Order, error) {
	code, err := domain.NewCustomerCode(order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidArgument, err)
	}
	details := make([]domain.OrderDetail, 0, len(order.OrderDetails))
	for _, d := range order.OrderDetails {
		details = append(details, domain.OrderDetail{
			Product:   domain.Product{ID: d.ProductID},
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
			Discount:  d.Discount,
		})
	}
	return &domain.Order{
		ID:           id,
		Customer:     domain.Customer{Code: code},
		Employee:     domain.Employee{ID: order.EmployeeID},
		Shipper:      domain.Shipper{ID: order.ShipperID},
		OrderDate:    order.OrderDate,
		RequiredDate: order.RequiredDate,
		ShippedDate:  order.ShippedDate,
		Freight:      order.Freight,
		ShipName:     order.ShipName,
		ShippingAddress: domain.NewShippingAddress(
			order.ShipAddress, order.ShipCity, order.ShipRegion, order.ShipPostalCode, order.ShipCountry),
		OrderDetails: details,
	}, nil
}

// FromDomainOrder converts an aggregate into the read shape.
func FromDomainOrder(order *domain.Order) FullOrder {
	if order == nil {
		return FullOrder{}
	}
	addr := order.ShippingAddress.Clone()
	details := make([]FullOrderDetail, 0, len(order.OrderDetails))
	for _, d := range order.OrderDetails {
		details = append(details, FullOrderDetail{
			ProductID:           d.Product.ID,
			ProductName:         d.Product.Name,
			CategoryID:          d.Product.CategoryID,
			CategoryName:        d.Product.Category,
			SupplierID:          d.Product.SupplierID,
			SupplierCompanyName: d.Product.Supplier,
			UnitPrice:           d.UnitPrice,
			Quantity:            d.Quantity,
			Discount:            d.Discount,
		})
	}
	return FullOrder{
		ID:       order.ID,
		Customer: Customer{Code: order.Customer.Code.String(), CompanyName: order.Customer.CompanyName},
		Employee: Employee{
			ID:        order.Employee.ID,
			FirstName: order.Employee.FirstName,
			LastName:  order.Employee.LastName,
			Country:   order.Employee.Country,
		},
		OrderDate:    order.OrderDate,
		RequiredDate: order.RequiredDate,
		ShippedDate:  order.ShippedDate,
		Shipper:      Shipper{ID: order.Shipper.ID, CompanyName: order.Shipper.CompanyName},
		Freight:      order.Freight,
		ShipName:     order.ShipName,
		ShippingAddress: ShippingAddress{
			Address:    addr.Address,
			City:       addr.City,
			Region:     addr.Region,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		},
		OrderDetails: details,
	}
}

// FromDomainOrders converts a page of aggregates into brief shapes.
func FromDomainOrders(orders []*domain.Order) []BriefOrder {
	list := make([]BriefOrder, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		list = append(list, toBriefOrder(o))
	}
	return list
}

func toBriefOrder(order *domain.Order) BriefOrder {
	addr := order.ShippingAddress.Clone()
	details := make([]BriefOrderDetail, 0, len(order.OrderDetails))
	for _, d := range order.OrderDetails {
		details = append(details, BriefOrderDetail{
			ProductID: d.Product.ID,
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
			Discount:  d.Discount,
		})
	}
	return BriefOrder{
		ID:             order.ID,
		CustomerID:     order.Customer.Code.String(),
		EmployeeID:     order.Employee.ID,
		OrderDate:      order.OrderDate,
		RequiredDate:   order.RequiredDate,
		ShippedDate:    order.ShippedDate,
		ShipperID:      order.Shipper.ID,
		Freight:        order.Freight,
		ShipName:       order.ShipName,
		ShipAddress:    addr.Address,
		ShipCity:       addr.City,
		ShipRegion:     addr.Region,
		ShipPostalCode: addr.PostalCode,
		ShipCountry:    addr.Country,
		OrderDetails:   details,
	}
}
