// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
)

// DeleteCategoryInput represents the input for deleting a category.
type DeleteCategoryInput struct {
	Owner      string
	GroupID    uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryOutput represents the output of a category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase removes a category and its products.
type DeleteCategoryUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(checklistRepo adapter.ChecklistRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the category deletion together with its products.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if err := uc.checklistRepo.DeleteCategory(ctx, normalizeOwner(input.Owner), input.GroupID, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{Success: true}, nil
}
