// Package schema holds the relational entities of the Northwind order schema.
//
// The entities are shaped after the tables, not after the order aggregate: the
// repositories translate between the two and never hand these values out.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64  `gorm:"primaryKey;column:id" yaml:"id"`
	Name        string `gorm:"column:category_name;size:15;not null" yaml:"name"`
	Description string `gorm:"column:description" yaml:"description"`
}

func (Category) TableName() string { return "categories" }

type Supplier struct {
	ID          int64  `gorm:"primaryKey;column:id" yaml:"id"`
	CompanyName string `gorm:"column:company_name;size:40;not null" yaml:"companyName"`
	ContactName string `gorm:"column:contact_name;size:30" yaml:"contactName"`
	City        string `gorm:"column:city;size:15" yaml:"city"`
	Country     string `gorm:"column:country;size:15" yaml:"country"`
	Phone       string `gorm:"column:phone;size:24" yaml:"phone"`
}

func (Supplier) TableName() string { return "suppliers" }

type Product struct {
	ID              int64           `gorm:"primaryKey;column:id" yaml:"id"`
	Name            string          `gorm:"column:product_name;size:40;not null" yaml:"name"`
	SupplierID      int64           `gorm:"column:supplier_id;not null;index" yaml:"supplierId"`
	CategoryID      int64           `gorm:"column:category_id;not null;index" yaml:"categoryId"`
	QuantityPerUnit string          `gorm:"column:quantity_per_unit;size:20" yaml:"quantityPerUnit"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null;default:0" yaml:"unitPrice"`
	UnitsInStock    int64           `gorm:"column:units_in_stock" yaml:"unitsInStock"`
	UnitsOnOrder    int64           `gorm:"column:units_on_order" yaml:"unitsOnOrder"`
	ReorderLevel    int64           `gorm:"column:reorder_level" yaml:"reorderLevel"`
	Discontinued    bool            `gorm:"column:discontinued" yaml:"discontinued"`
	Supplier        Supplier        `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" yaml:"-"`
	Category        Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" yaml:"-"`
}

func (Product) TableName() string { return "products" }

type Customer struct {
	ID           string `gorm:"primaryKey;column:id;size:5" yaml:"id"`
	CompanyName  string `gorm:"column:company_name;size:40;not null" yaml:"companyName"`
	ContactName  string `gorm:"column:contact_name;size:30" yaml:"contactName"`
	ContactTitle string `gorm:"column:contact_title;size:30" yaml:"contactTitle"`
	Address      string `gorm:"column:address;size:60" yaml:"address"`
	City         string `gorm:"column:city;size:15" yaml:"city"`
	Region       string `gorm:"column:region;size:15" yaml:"region"`
	PostalCode   string `gorm:"column:postal_code;size:10" yaml:"postalCode"`
	Country      string `gorm:"column:country;size:15" yaml:"country"`
	Phone        string `gorm:"column:phone;size:24" yaml:"phone"`
}

func (Customer) TableName() string { return "customers" }

type Employee struct {
	ID              int64      `gorm:"primaryKey;column:id" yaml:"id"`
	LastName        string     `gorm:"column:last_name;size:20;not null" yaml:"lastName"`
	FirstName       string     `gorm:"column:first_name;size:10;not null" yaml:"firstName"`
	Title           string     `gorm:"column:title;size:30" yaml:"title"`
	TitleOfCourtesy string     `gorm:"column:title_of_courtesy;size:25" yaml:"titleOfCourtesy"`
	BirthDate       *time.Time `gorm:"column:birth_date" yaml:"birthDate"`
	HireDate        *time.Time `gorm:"column:hire_date" yaml:"hireDate"`
	City            string     `gorm:"column:city;size:15" yaml:"city"`
	Country         string     `gorm:"column:country;size:15" yaml:"country"`
	ReportsTo       *int64     `gorm:"column:reports_to" yaml:"reportsTo"`
}

func (Employee) TableName() string { return "employees" }

type Shipper struct {
	ID          int64  `gorm:"primaryKey;column:id" yaml:"id"`
	CompanyName string `gorm:"column:company_name;size:40;not null" yaml:"companyName"`
	Phone       string `gorm:"column:phone;size:24" yaml:"phone"`
}

func (Shipper) TableName() string { return "shippers" }

// Order is the orders row. Customer, Employee and Shipper are belongs-to
// relations; OrderDetails is the owned has-many side.
type Order struct {
	ID             int64           `gorm:"primaryKey;column:id"`
	CustomerID     string          `gorm:"column:customer_id;size:5;not null;index"`
	EmployeeID     int64           `gorm:"column:employee_id;not null;index"`
	ShipperID      int64           `gorm:"column:shipper_id;not null;index"`
	OrderDate      time.Time       `gorm:"column:order_date"`
	RequiredDate   time.Time       `gorm:"column:required_date"`
	ShippedDate    *time.Time      `gorm:"column:shipped_date"`
	Freight        decimal.Decimal `gorm:"column:freight;type:numeric(10,2);not null;default:0"`
	ShipName       string          `gorm:"column:ship_name;size:40"`
	ShipAddress    string          `gorm:"column:ship_address;size:60"`
	ShipCity       string          `gorm:"column:ship_city;size:15"`
	ShipRegion     *string         `gorm:"column:ship_region;size:15"`
	ShipPostalCode string          `gorm:"column:ship_postal_code;size:10"`
	ShipCountry    string          `gorm:"column:ship_country;size:15"`
	Customer       Customer        `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Employee       Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Shipper        Shipper         `gorm:"foreignKey:ShipperID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	OrderDetails   []OrderDetail   `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is keyed by (order_id, product_id).
type OrderDetail struct {
	OrderID   int64           `gorm:"primaryKey;column:order_id;autoIncrement:false"`
	ProductID int64           `gorm:"primaryKey;column:product_id;autoIncrement:false;index"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity  int64           `gorm:"column:quantity;not null"`
	Discount  float64         `gorm:"column:discount;not null;default:0"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (OrderDetail) TableName() string { return "order_details" }

// Models lists every entity in dependency order for migrations.
func Models() []any {
	return []any{
		&Category{},
		&Supplier{},
		&Product{},
		&Customer{},
		&Employee{},
		&Shipper{},
		&Order{},
		&OrderDetail{},
	}
}
