package product

import "errors"

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
)

// Product is a catalog item offered by a vendor.
type Product struct {
	ID        string
	VendorID  string
	Name      string
	Category  string
	Price     float64
	Stock     int
	ImageUrl  string
	Available bool
}

func (p Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProduct
	}
	if p.Price < 0 {
		return ErrInvalidProduct
	}
	if p.Stock < 0 {
		return ErrInvalidProduct
	}
	return nil
}
