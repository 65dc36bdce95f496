package migrations

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/schema"
)

//go:embed northwind.yaml
var defaultCatalog []byte

// Run applies the Northwind schema. Intended as the only place the schema is migrated.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(schema.Models()...)
}

// DefaultCatalog decodes the sample reference data shipped with the binary.
func DefaultCatalog() (*schema.Catalog, error) {
	return schema.LoadCatalog(bytes.NewReader(defaultCatalog))
}

// LoadCatalogFile decodes the catalog at path, or the bundled sample when path is empty.
func LoadCatalogFile(path string) (*schema.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return schema.LoadCatalog(f)
}

// Seed inserts the catalog rows, leaving rows that already exist untouched.
func Seed(ctx context.Context, db *gorm.DB, catalog *schema.Catalog) error {
	if db == nil || catalog == nil {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batches := []struct {
			table string
			rows  any
			n     int
		}{
			{"categories", &catalog.Categories, len(catalog.Categories)},
			{"suppliers", &catalog.Suppliers, len(catalog.Suppliers)},
			{"products", &catalog.Products, len(catalog.Products)},
			{"customers", &catalog.Customers, len(catalog.Customers)},
			{"employees", &catalog.Employees, len(catalog.Employees)},
			{"shippers", &catalog.Shippers, len(catalog.Shippers)},
		}
		for _, b := range batches {
			if b.n == 0 {
				continue
			}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Omit(clause.Associations).
				Create(b.rows).Error
			if err != nil {
				return fmt.Errorf("seed %s: %w", b.table, err)
			}
		}
		return nil
	})
}
