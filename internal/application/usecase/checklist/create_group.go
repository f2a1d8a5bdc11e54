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

// CreateGroupInput represents the input for creating an empty group.
type CreateGroupInput struct {
	Owner string
	Name  string
	Icon  string // Optional, defaults to entity.DefaultGroupIcon
	Color string // Optional, defaults to entity.DefaultGroupColor
}

// CreateGroupOutput represents the output of group creation.
type CreateGroupOutput struct {
	GroupID uuid.UUID
}

// CreateGroupUseCase handles creation of a single empty group.
type CreateGroupUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewCreateGroupUseCase creates a new CreateGroupUseCase instance.
func NewCreateGroupUseCase(checklistRepo adapter.ChecklistRepository) *CreateGroupUseCase {
	return &CreateGroupUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the group creation.
func (uc *CreateGroupUseCase) Execute(ctx context.Context, input CreateGroupInput) (*CreateGroupOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"group name is required",
			domainerror.ErrNameRequired,
		)
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultGroupIcon
	}
	color := input.Color
	if color == "" {
		color = entity.DefaultGroupColor
	}

	group := entity.NewGroup(uuid.Nil, name, icon, color)

	if err := uc.checklistRepo.CreateGroup(ctx, normalizeOwner(input.Owner), group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return &CreateGroupOutput{GroupID: group.ID}, nil
}
