// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// AddProductInput represents the input for adding a product to a category.
type AddProductInput struct {
	Owner             string
	GroupID           uuid.UUID
	CategoryID        uuid.UUID
	Name              string
	Brand             string
	Price             decimal.Decimal
	PurchasedQuantity int
	Notes             string
	IsPurchased       bool
}

// AddProductOutput represents the output of a product creation.
type AddProductOutput struct {
	Product *entity.Product
}

// AddProductUseCase creates a product under a category while enforcing the
// category's target quantity.
type AddProductUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewAddProductUseCase creates a new AddProductUseCase instance.
func NewAddProductUseCase(checklistRepo adapter.ChecklistRepository) *AddProductUseCase {
	return &AddProductUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute validates the input against the category's remaining capacity and
// persists the new product. A purchased quantity that would push the category
// past its target is rejected with the remaining head-room in the error.
func (uc *AddProductUseCase) Execute(ctx context.Context, input AddProductInput) (*AddProductOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"product name is required",
			domainerror.ErrNameRequired,
		)
	}

	owner := normalizeOwner(input.Owner)

	category, err := uc.checklistRepo.FindCategory(ctx, owner, input.GroupID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	purchased := category.PurchasedTotal()
	if purchased+input.PurchasedQuantity > category.TargetQuantity {
		return nil, domainerror.NewQuantityLimitError(category.TargetQuantity, purchased, input.PurchasedQuantity)
	}

	product := entity.NewProduct(input.CategoryID, input.Name, input.Brand, input.Price, input.PurchasedQuantity, input.Notes, input.IsPurchased)

	if err := uc.checklistRepo.AddProduct(ctx, owner, input.GroupID, input.CategoryID, product); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	return &AddProductOutput{Product: product}, nil
}
