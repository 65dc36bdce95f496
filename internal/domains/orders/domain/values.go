package domain

import (
	"errors"
	"strings"
)

// MaxCustomerCodeLength mirrors the nchar(5) customer key of the Northwind schema.
const MaxCustomerCodeLength = 5

var ErrInvalidCustomerCode = errors.New("customer code must be 1 to 5 characters")

// CustomerCode is the short immutable key identifying a customer.
type CustomerCode string

// NewCustomerCode trims and validates a raw customer key.
func NewCustomerCode(raw string) (CustomerCode, error) {
	code := CustomerCode(strings.TrimSpace(raw))
	if err := code.Validate(); err != nil {
		return "", err
	}
	return code, nil
}

func (c CustomerCode) Validate() error {
	n := len([]rune(string(c)))
	if n == 0 || n > MaxCustomerCodeLength {
		return ErrInvalidCustomerCode
	}
	return nil
}

func (c CustomerCode) String() string { return string(c) }

// ShippingAddress is the destination snapshot captured when the order is placed.
type ShippingAddress struct {
	Address    string
	City       string
	Region     *string
	PostalCode string
	Country    string
}

// NewShippingAddress builds an address; an empty region is stored as absent.
func NewShippingAddress(address, city string, region *string, postalCode, country string) ShippingAddress {
	a := ShippingAddress{
		Address:    address,
		City:       city,
		PostalCode: postalCode,
		Country:    country,
	}
	if region != nil && strings.TrimSpace(*region) != "" {
		r := *region
		a.Region = &r
	}
	return a
}

// Clone returns a copy that shares no pointers with a.
func (a ShippingAddress) Clone() ShippingAddress {
	if a.Region != nil {
		r := *a.Region
		a.Region = &r
	}
	return a
}
