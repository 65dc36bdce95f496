package memory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/schema"
	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
)

type catalogIndex struct {
	customers  map[string]schema.Customer
	employees  map[int64]schema.Employee
	shippers   map[int64]schema.Shipper
	products   map[int64]schema.Product
	categories map[int64]schema.Category
	suppliers  map[int64]schema.Supplier
}

func indexCatalog(c *schema.Catalog) catalogIndex {
	idx := catalogIndex{
		customers:  map[string]schema.Customer{},
		employees:  map[int64]schema.Employee{},
		shippers:   map[int64]schema.Shipper{},
		products:   map[int64]schema.Product{},
		categories: map[int64]schema.Category{},
		suppliers:  map[int64]schema.Supplier{},
	}
	if c == nil {
		return idx
	}
	for _, v := range c.Customers {
		idx.customers[v.ID] = v
	}
	for _, v := range c.Employees {
		idx.employees[v.ID] = v
	}
	for _, v := range c.Shippers {
		idx.shippers[v.ID] = v
	}
	for _, v := range c.Products {
		idx.products[v.ID] = v
	}
	for _, v := range c.Categories {
		idx.categories[v.ID] = v
	}
	for _, v := range c.Suppliers {
		idx.suppliers[v.ID] = v
	}
	return idx
}

func (idx catalogIndex) checkReferences(order *domain.Order) error {
	if _, ok := idx.customers[order.Customer.Code.String()]; !ok {
		return fmt.Errorf("unknown customer %q", order.Customer.Code)
	}
	if _, ok := idx.employees[order.Employee.ID]; !ok {
		return fmt.Errorf("unknown employee %d", order.Employee.ID)
	}
	if _, ok := idx.shippers[order.Shipper.ID]; !ok {
		return fmt.Errorf("unknown shipper %d", order.Shipper.ID)
	}
	for _, d := range order.OrderDetails {
		if _, ok := idx.products[d.Product.ID]; !ok {
			return fmt.Errorf("order details reference a missing product %d", d.Product.ID)
		}
	}
	return nil
}

// hydrate returns a copy of the stored order with display snapshots taken from the catalog.
func (idx catalogIndex) hydrate(stored *domain.Order) (*domain.Order, error) {
	order := stored.Clone()
	customer, ok := idx.customers[order.Customer.Code.String()]
	if !ok {
		return nil, corrupted(order.ID, "customer %q", order.Customer.Code)
	}
	order.Customer.CompanyName = customer.CompanyName

	employee, ok := idx.employees[order.Employee.ID]
	if !ok {
		return nil, corrupted(order.ID, "employee %d", order.Employee.ID)
	}
	order.Employee = domain.Employee{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Country:   employee.Country,
	}

	shipper, ok := idx.shippers[order.Shipper.ID]
	if !ok {
		return nil, corrupted(order.ID, "shipper %d", order.Shipper.ID)
	}
	order.Shipper.CompanyName = shipper.CompanyName

	for i := range order.OrderDetails {
		d := &order.OrderDetails[i]
		product, ok := idx.products[d.Product.ID]
		if !ok {
			return nil, corrupted(order.ID, "product %d", d.Product.ID)
		}
		d.Product = domain.Product{
			ID:         product.ID,
			Name:       product.Name,
			CategoryID: product.CategoryID,
			Category:   idx.categories[product.CategoryID].Name,
			SupplierID: product.SupplierID,
			Supplier:   idx.suppliers[product.SupplierID].CompanyName,
		}
	}
	slices.SortFunc(order.OrderDetails, func(a, b domain.OrderDetail) int {
		return cmp.Compare(a.Product.ID, b.Product.ID)
	})
	return order, nil
}

func corrupted(orderID int64, format string, args ...any) error {
	return fmt.Errorf("%w: order %d references missing %s", ports.ErrStorageCorrupted, orderID, fmt.Sprintf(format, args...))
}
