// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents one recorded purchase event within a Category.
// PurchasedQuantity is the unit count this record represents, not a running
// total; summing it across a category's products gives the purchased total.
type Product struct {
	ID                uuid.UUID
	CategoryID        uuid.UUID
	Name              string
	Brand             string
	Price             decimal.Decimal
	PurchasedQuantity int
	Notes             string
	IsPurchased       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProduct creates a new Product entity. A negative price or quantity is
// coerced to zero.
func NewProduct(categoryID uuid.UUID, name, brand string, price decimal.Decimal, purchasedQuantity int, notes string, isPurchased bool) *Product {
	now := time.Now().UTC()

	if price.IsNegative() {
		price = decimal.Zero
	}
	if purchasedQuantity < 0 {
		purchasedQuantity = 0
	}

	return &Product{
		ID:                uuid.New(),
		CategoryID:        categoryID,
		Name:              name,
		Brand:             brand,
		Price:             price,
		PurchasedQuantity: purchasedQuantity,
		Notes:             notes,
		IsPurchased:       isPurchased,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
