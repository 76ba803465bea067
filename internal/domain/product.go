package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is fixed-point money; Stock is the
// number of units currently available.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Validate checks the catalog constraints: non-empty name, strictly
// positive price, non-negative stock.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationErrorf("name", "name is required")
	}
	if !p.Price.IsPositive() {
		return validationErrorf("price", "price must be greater than zero")
	}
	if p.Stock < 0 {
		return validationErrorf("stock", "stock cannot be negative")
	}
	return nil
}

// ProductFilter describes the query predicates for a catalog listing.
// Pointer fields are skipped when nil.
type ProductFilter struct {
	Name         string
	NameContains string
	Price        *decimal.Decimal
	PriceLT      *decimal.Decimal
	PriceGT      *decimal.Decimal
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	Search       string
	Ordering     string
	InStockOnly  bool
}

// CreateProductRequest is the write payload for the catalog.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int64           `json:"stock" validate:"min=0"`
}

// ToProduct converts the request to a catalog record.
func (r CreateProductRequest) ToProduct() *Product {
	return &Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}
