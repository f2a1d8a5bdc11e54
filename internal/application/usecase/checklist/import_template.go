// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
	"github.com/dowry-planner/backend/internal/domain/template"
)

// ImportTemplateInput selects predefined groups to import. An empty Names
// slice imports the whole template.
type ImportTemplateInput struct {
	Owner string
	Names []string
}

// ImportTemplateOutput lists the ids of the created groups.
type ImportTemplateOutput struct {
	GroupIDs []uuid.UUID
}

// ImportTemplateUseCase bulk-imports predefined checklist groups. Each group
// subtree is created atomically; groups are independent of each other.
type ImportTemplateUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewImportTemplateUseCase creates a new ImportTemplateUseCase instance.
func NewImportTemplateUseCase(checklistRepo adapter.ChecklistRepository) *ImportTemplateUseCase {
	return &ImportTemplateUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the bulk import.
func (uc *ImportTemplateUseCase) Execute(ctx context.Context, input ImportTemplateInput) (*ImportTemplateOutput, error) {
	specs := make([]*template.GroupSpec, 0, len(template.PredefinedGroups))
	if len(input.Names) == 0 {
		for i := range template.PredefinedGroups {
			specs = append(specs, &template.PredefinedGroups[i])
		}
	} else {
		for _, name := range input.Names {
			spec := template.FindGroup(name)
			if spec == nil {
				return nil, domainerror.NewChecklistError(
					domainerror.ErrCodeGroupNotFound,
					fmt.Sprintf("no template group named %q", name),
					domainerror.ErrGroupNotFound,
				)
			}
			specs = append(specs, spec)
		}
	}

	owner := normalizeOwner(input.Owner)
	output := &ImportTemplateOutput{GroupIDs: make([]uuid.UUID, 0, len(specs))}

	for _, spec := range specs {
		categories := make([]CategorySpec, 0, len(spec.Categories))
		for _, cat := range spec.Categories {
			categories = append(categories, CategorySpec{
				Name:           cat.Name,
				Description:    cat.Description,
				TargetQuantity: cat.TargetQuantity,
			})
		}

		group, err := buildGroup(spec.Name, spec.Icon, spec.Color, categories)
		if err != nil {
			return nil, err
		}

		if err := uc.checklistRepo.CreateGroupWithHierarchy(ctx, owner, group); err != nil {
			return nil, fmt.Errorf("failed to import template group %q: %w", spec.Name, err)
		}

		output.GroupIDs = append(output.GroupIDs, group.ID)
	}

	return output, nil
}
