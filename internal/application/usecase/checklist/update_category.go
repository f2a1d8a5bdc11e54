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

// UpdateCategoryInput represents the input for a partial category update.
// Nil fields are left untouched.
type UpdateCategoryInput struct {
	Owner          string
	GroupID        uuid.UUID
	CategoryID     uuid.UUID
	Name           *string
	Description    *string
	TargetQuantity *int
	IsCompleted    *bool
}

// UpdateCategoryOutput represents the output of a category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase applies partial updates to a category.
type UpdateCategoryUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(checklistRepo adapter.ChecklistRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute validates and persists the update, then returns the stored state.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"category name is required",
			domainerror.ErrNameRequired,
		)
	}

	owner := normalizeOwner(input.Owner)

	updates := adapter.CategoryUpdates{
		Name:           input.Name,
		Description:    input.Description,
		TargetQuantity: input.TargetQuantity,
		IsCompleted:    input.IsCompleted,
	}
	if updates.TargetQuantity != nil && *updates.TargetQuantity < entity.MinTargetQuantity {
		clamped := entity.MinTargetQuantity
		updates.TargetQuantity = &clamped
	}

	if err := uc.checklistRepo.UpdateCategory(ctx, owner, input.GroupID, input.CategoryID, updates); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	category, err := uc.checklistRepo.FindCategory(ctx, owner, input.GroupID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}
	if category == nil {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
