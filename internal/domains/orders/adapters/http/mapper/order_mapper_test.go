package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

const briefJSON = `{
  "customerId": "VINET",
  "employeeId": 5,
  "orderDate": "1996-07-04T00:00:00Z",
  "requiredDate": "1996-08-01T00:00:00Z",
  "shipperId": 3,
  "freight": 32.38,
  "shipName": "Vins et alcools Chevalier",
  "shipAddress": "59 rue de l'Abbaye",
  "shipCity": "Reims",
  "shipRegion": "",
  "shipPostalCode": "51100",
  "shipCountry": "France",
  "orderDetails": [
    {"productId": 11, "unitPrice": 14, "quantity": 12, "discount": 0},
    {"productId": 42, "unitPrice": "9.80", "quantity": 10, "discount": 0.1}
  ]
}`

func TestToDomainOrder(t *testing.T) {
	var brief BriefOrder
	require.NoError(t, json.Unmarshal([]byte(briefJSON), &brief))

	order, err := ToDomainOrder(10248, brief)
	require.NoError(t, err)

	assert.Equal(t, int64(10248), order.ID)
	assert.Equal(t, domain.CustomerCode("VINET"), order.Customer.Code)
	assert.Equal(t, int64(5), order.Employee.ID)
	assert.Equal(t, int64(3), order.Shipper.ID)
	assert.True(t, decimal.RequireFromString("32.38").Equal(order.Freight))
	assert.Nil(t, order.ShippingAddress.Region)
	require.Len(t, order.OrderDetails, 2)
	assert.True(t, decimal.RequireFromString("9.8").Equal(order.OrderDetails[1].UnitPrice))
	assert.NoError(t, order.Validate())
}

func TestToDomainOrder_BadCustomerCode(t *testing.T) {
	_, err := ToDomainOrder(0, BriefOrder{CustomerID: "TOO-LONG"})
	assert.ErrorIs(t, err, ports.ErrInvalidArgument)
	assert.ErrorIs(t, err, domain.ErrInvalidCustomerCode)
}

func TestFromDomainOrder(t *testing.T) {
	shipped := time.Date(1996, 7, 16, 0, 0, 0, 0, time.UTC)
	region := "RJ"
	order := &domain.Order{
		ID:              10250,
		Customer:        domain.Customer{Code: "HANAR", CompanyName: "Hanari Carnes"},
		Employee:        domain.Employee{ID: 1, FirstName: "Nancy", LastName: "Davolio", Country: "USA"},
		Shipper:         domain.Shipper{ID: 2, CompanyName: "United Package"},
		OrderDate:       time.Date(1996, 7, 8, 0, 0, 0, 0, time.UTC),
		RequiredDate:    time.Date(1996, 8, 5, 0, 0, 0, 0, time.UTC),
		ShippedDate:     &shipped,
		Freight:         decimal.RequireFromString("65.83"),
		ShipName:        "Hanari Carnes",
		ShippingAddress: domain.NewShippingAddress("Rua do Paço, 67", "Rio de Janeiro", &region, "05454-876", "Brazil"),
		OrderDetails: []domain.OrderDetail{{
			Product: domain.Product{
				ID: 72, Name: "Mozzarella di Giovanni",
				CategoryID: 4, Category: "Dairy Products",
				SupplierID: 5, Supplier: "Cooperativa de Quesos 'Las Cabras'",
			},
			UnitPrice: decimal.RequireFromString("34.8"),
			Quantity:  10,
			Discount:  0.15,
		}},
	}

	full := FromDomainOrder(order)
	assert.Equal(t, int64(10250), full.ID)
	assert.Equal(t, "HANAR", full.Customer.Code)
	assert.Equal(t, "Davolio", full.Employee.LastName)
	assert.Equal(t, "United Package", full.Shipper.CompanyName)
	require.NotNil(t, full.ShippingAddress.Region)
	assert.Equal(t, "RJ", *full.ShippingAddress.Region)
	require.Len(t, full.OrderDetails, 1)
	assert.Equal(t, "Dairy Products", full.OrderDetails[0].CategoryName)
	assert.Equal(t, "Mozzarella di Giovanni", full.OrderDetails[0].ProductName)

	*full.ShippingAddress.Region = "SP"
	assert.Equal(t, "RJ", *order.ShippingAddress.Region)

	brief := FromDomainOrders([]*domain.Order{order, nil})
	require.Len(t, brief, 1)
	assert.Equal(t, "HANAR", brief[0].CustomerID)
	assert.Equal(t, int64(72), brief[0].OrderDetails[0].ProductID)
}
