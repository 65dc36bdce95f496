package schema

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Catalog is the reference data an order points at.
type Catalog struct {
	Categories []Category `yaml:"categories"`
	Suppliers  []Supplier `yaml:"suppliers"`
	Products   []Product  `yaml:"products"`
	Customers  []Customer `yaml:"customers"`
	Employees  []Employee `yaml:"employees"`
	Shippers   []Shipper  `yaml:"shippers"`
}

// LoadCatalog decodes a YAML catalog and checks its internal references.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		if err == io.EOF {
			return &catalog, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks that every product references a known category and supplier.
func (c *Catalog) Validate() error {
	categories := make(map[int64]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat.ID] = struct{}{}
	}
	suppliers := make(map[int64]struct{}, len(c.Suppliers))
	for _, sup := range c.Suppliers {
		suppliers[sup.ID] = struct{}{}
	}
	for _, p := range c.Products {
		if _, ok := categories[p.CategoryID]; !ok {
			return fmt.Errorf("product %d references unknown category %d", p.ID, p.CategoryID)
		}
		if _, ok := suppliers[p.SupplierID]; !ok {
			return fmt.Errorf("product %d references unknown supplier %d", p.ID, p.SupplierID)
		}
	}
	return nil
}
