// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
)

// DeleteGroupInput represents the input for deleting a group.
type DeleteGroupInput struct {
	Owner   string
	GroupID uuid.UUID
}

// DeleteGroupOutput represents the output of a group deletion.
type DeleteGroupOutput struct {
	Success bool
}

// DeleteGroupUseCase removes a group and its whole subtree.
type DeleteGroupUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewDeleteGroupUseCase creates a new DeleteGroupUseCase instance.
func NewDeleteGroupUseCase(checklistRepo adapter.ChecklistRepository) *DeleteGroupUseCase {
	return &DeleteGroupUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the group deletion. Categories and products under the
// group are removed by the backend's cascade.
func (uc *DeleteGroupUseCase) Execute(ctx context.Context, input DeleteGroupInput) (*DeleteGroupOutput, error) {
	if err := uc.checklistRepo.DeleteGroup(ctx, normalizeOwner(input.Owner), input.GroupID); err != nil {
		return nil, fmt.Errorf("failed to delete group: %w", err)
	}

	return &DeleteGroupOutput{Success: true}, nil
}
