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

// ProductSpec describes one product inside a group-with-hierarchy request.
// Purchased quantity and the purchased flag are ignored on bulk creation:
// imported trees always start at zero purchased.
type ProductSpec struct {
	Name  string
	Brand string
	Price decimal.Decimal
	Notes string
}

// CategorySpec describes one category inside a group-with-hierarchy request.
type CategorySpec struct {
	Name           string
	Description    string
	TargetQuantity int
	Products       []ProductSpec
}

// CreateGroupWithHierarchyInput represents the input for atomic subtree creation.
type CreateGroupWithHierarchyInput struct {
	Owner      string
	Name       string
	Icon       string
	Color      string
	Categories []CategorySpec
}

// CreateGroupWithHierarchyOutput represents the output of subtree creation.
type CreateGroupWithHierarchyOutput struct {
	GroupID uuid.UUID
}

// CreateGroupWithHierarchyUseCase creates a group together with all its
// categories and products in one atomic write.
type CreateGroupWithHierarchyUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewCreateGroupWithHierarchyUseCase creates a new CreateGroupWithHierarchyUseCase instance.
func NewCreateGroupWithHierarchyUseCase(checklistRepo adapter.ChecklistRepository) *CreateGroupWithHierarchyUseCase {
	return &CreateGroupWithHierarchyUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the atomic subtree creation.
func (uc *CreateGroupWithHierarchyUseCase) Execute(ctx context.Context, input CreateGroupWithHierarchyInput) (*CreateGroupWithHierarchyOutput, error) {
	group, err := buildGroup(input.Name, input.Icon, input.Color, input.Categories)
	if err != nil {
		return nil, err
	}

	if err := uc.checklistRepo.CreateGroupWithHierarchy(ctx, normalizeOwner(input.Owner), group); err != nil {
		return nil, fmt.Errorf("failed to create group hierarchy: %w", err)
	}

	return &CreateGroupWithHierarchyOutput{GroupID: group.ID}, nil
}

// buildGroup assembles the entity subtree for a hierarchy request. Names are
// validated here, quantities are clamped by the entity constructors.
func buildGroup(name, icon, color string, categories []CategorySpec) (*entity.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeNameRequired,
			"group name is required",
			domainerror.ErrNameRequired,
		)
	}

	if icon == "" {
		icon = entity.DefaultGroupIcon
	}
	if color == "" {
		color = entity.DefaultGroupColor
	}

	group := entity.NewGroup(uuid.Nil, name, icon, color)

	for _, catSpec := range categories {
		catName := strings.TrimSpace(catSpec.Name)
		if catName == "" {
			return nil, domainerror.NewChecklistError(
				domainerror.ErrCodeNameRequired,
				"category name is required",
				domainerror.ErrNameRequired,
			)
		}

		category := entity.NewCategory(group.ID, catName, catSpec.Description, catSpec.TargetQuantity)

		for _, prodSpec := range catSpec.Products {
			prodName := strings.TrimSpace(prodSpec.Name)
			if prodName == "" {
				return nil, domainerror.NewChecklistError(
					domainerror.ErrCodeNameRequired,
					"product name is required",
					domainerror.ErrNameRequired,
				)
			}

			// Bulk-created products always start unpurchased at zero units.
			product := entity.NewProduct(category.ID, prodName, prodSpec.Brand, prodSpec.Price, 0, prodSpec.Notes, false)
			category.Products = append(category.Products, product)
		}

		group.Categories = append(group.Categories, category)
	}

	return group, nil
}
