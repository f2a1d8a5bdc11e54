// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
)

// DeleteProductInput represents the input for deleting a product.
type DeleteProductInput struct {
	Owner      string
	GroupID    uuid.UUID
	CategoryID uuid.UUID
	ProductID  uuid.UUID
}

// DeleteProductOutput represents the output of a product deletion.
type DeleteProductOutput struct {
	Success bool
}

// DeleteProductUseCase removes a single product.
type DeleteProductUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewDeleteProductUseCase creates a new DeleteProductUseCase instance.
func NewDeleteProductUseCase(checklistRepo adapter.ChecklistRepository) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the product deletion.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, input DeleteProductInput) (*DeleteProductOutput, error) {
	if err := uc.checklistRepo.DeleteProduct(ctx, normalizeOwner(input.Owner), input.GroupID, input.CategoryID, input.ProductID); err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return &DeleteProductOutput{Success: true}, nil
}
