// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MinTargetQuantity is the lowest valid purchase target for a category.
const MinTargetQuantity = 1

// Category represents a purchase goal within a Group (e.g. "Pot Set").
// IsCompleted is a manually set marker; it is never derived from purchased
// totals, even when purchased >= target.
type Category struct {
	ID             uuid.UUID
	GroupID        uuid.UUID
	Name           string
	Description    string
	TargetQuantity int
	IsCompleted    bool
	Products       []*Product
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCategory creates a new Category entity. A non-positive target quantity
// is coerced to MinTargetQuantity.
func NewCategory(groupID uuid.UUID, name, description string, targetQuantity int) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:             uuid.New(),
		GroupID:        groupID,
		Name:           name,
		Description:    description,
		TargetQuantity: ClampTargetQuantity(targetQuantity),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ClampTargetQuantity coerces a target quantity into the valid range.
func ClampTargetQuantity(quantity int) int {
	if quantity < MinTargetQuantity {
		return MinTargetQuantity
	}
	return quantity
}

// PurchasedTotal sums the purchased quantity across the category's products.
func (c *Category) PurchasedTotal() int {
	total := 0
	for _, p := range c.Products {
		total += p.PurchasedQuantity
	}
	return total
}
