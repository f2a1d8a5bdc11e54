// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// AddCategoryInput represents the input for adding a category to a group.
type AddCategoryInput struct {
	Owner          string
	GroupID        uuid.UUID
	Name           string
	Description    string
	TargetQuantity int
}

// AddCategoryOutput represents the output of a category creation.
type AddCategoryOutput struct {
	Category *entity.Category
}

// AddCategoryUseCase creates a category under an existing group.
type AddCategoryUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewAddCategoryUseCase creates a new AddCategoryUseCase instance.
func NewAddCategoryUseCase(checklistRepo adapter.ChecklistRepository) *AddCategoryUseCase {
	return &AddCategoryUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute validates the input and persists the new category. Target
// quantities below one are clamped by the entity constructor.
func (uc *AddCategoryUseCase) Execute(ctx context.Context, input AddCategoryInput) (*AddCategoryOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"category name is required",
			domainerror.ErrNameRequired,
		)
	}

	category := entity.NewCategory(input.GroupID, input.Name, input.Description, input.TargetQuantity)

	if err := uc.checklistRepo.AddCategory(ctx, normalizeOwner(input.Owner), input.GroupID, category); err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}

	return &AddCategoryOutput{Category: category}, nil
}
