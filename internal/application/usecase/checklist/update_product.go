// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/application/adapter"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// UpdateProductInput represents the input for a partial product update.
// Nil fields are left untouched.
type UpdateProductInput struct {
	Owner             string
	GroupID           uuid.UUID
	CategoryID        uuid.UUID
	ProductID         uuid.UUID
	Name              *string
	Brand             *string
	Price             *decimal.Decimal
	PurchasedQuantity *int
	Notes             *string
	IsPurchased       *bool
}

// UpdateProductOutput represents the output of a product update.
type UpdateProductOutput struct {
	Success bool
}

// UpdateProductUseCase applies partial updates to a product.
type UpdateProductUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewUpdateProductUseCase creates a new UpdateProductUseCase instance.
func NewUpdateProductUseCase(checklistRepo adapter.ChecklistRepository) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute validates and persists the update. Negative prices and quantities
// are coerced to zero, matching creation.
func (uc *UpdateProductUseCase) Execute(ctx context.Context, input UpdateProductInput) (*UpdateProductOutput, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"product name is required",
			domainerror.ErrNameRequired,
		)
	}

	updates := adapter.ProductUpdates{
		Name:              input.Name,
		Brand:             input.Brand,
		Price:             input.Price,
		PurchasedQuantity: input.PurchasedQuantity,
		Notes:             input.Notes,
		IsPurchased:       input.IsPurchased,
	}
	if updates.Price != nil && updates.Price.IsNegative() {
		zero := decimal.Zero
		updates.Price = &zero
	}
	if updates.PurchasedQuantity != nil && *updates.PurchasedQuantity < 0 {
		zero := 0
		updates.PurchasedQuantity = &zero
	}

	if err := uc.checklistRepo.UpdateProduct(ctx, normalizeOwner(input.Owner), input.GroupID, input.CategoryID, input.ProductID, updates); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &UpdateProductOutput{Success: true}, nil
}
