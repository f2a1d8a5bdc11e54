// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// UpdateGroupInput represents a partial-field group update.
type UpdateGroupInput struct {
	Owner   string
	GroupID uuid.UUID
	Name    *string
	Icon    *string
	Color   *string
}

// UpdateGroupOutput represents the output of a group update.
type UpdateGroupOutput struct {
	Success bool
}

// UpdateGroupUseCase applies a partial-field update to a group.
type UpdateGroupUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewUpdateGroupUseCase creates a new UpdateGroupUseCase instance.
func NewUpdateGroupUseCase(checklistRepo adapter.ChecklistRepository) *UpdateGroupUseCase {
	return &UpdateGroupUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the group update.
func (uc *UpdateGroupUseCase) Execute(ctx context.Context, input UpdateGroupInput) (*UpdateGroupOutput, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"group name is required",
			domainerror.ErrNameRequired,
		)
	}

	updates := adapter.GroupUpdates{
		Name:  input.Name,
		Icon:  input.Icon,
		Color: input.Color,
	}

	if err := uc.checklistRepo.UpdateGroup(ctx, normalizeOwner(input.Owner), input.GroupID, updates); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return &UpdateGroupOutput{Success: true}, nil
}
