package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPrice is the exclusive upper bound on a product price. Stores keep
// prices with ten integer digits and two decimals.
var MaxPrice = decimal.New(1, 10)

// Product is a financial product of the catalog that clients can request quotes for.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries the fields of a partial product update. Nil means "leave unchanged".
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
}

// Empty reports whether the patch would change nothing but updated_at.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil
}

// Apply writes the provided fields onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
}
