// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/valueobject"
)

// GetProgressInput represents the input for the progress summary.
type GetProgressInput struct {
	Owner string
}

// CategoryProgressSummary carries per-category progress figures.
type CategoryProgressSummary struct {
	CategoryID string
	Name       string
	Purchased  int
	Target     int
	Percent    int
}

// GroupProgressSummary carries per-group progress and spend figures.
type GroupProgressSummary struct {
	GroupID    string
	Name       string
	Purchased  int
	Target     int
	Percent    int
	Spent      decimal.Decimal
	Categories []CategoryProgressSummary
}

// GetProgressOutput represents the aggregated progress of a whole tree.
type GetProgressOutput struct {
	OverallPercent int
	TotalSpent     decimal.Decimal
	Groups         []GroupProgressSummary
}

// GetProgressUseCase computes progress and spend aggregates over the owner's
// tree. All figures derive from a single snapshot read.
type GetProgressUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(checklistRepo adapter.ChecklistRepository) *GetProgressUseCase {
	return &GetProgressUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute fetches the tree once and folds it into the progress summary.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
	groups, err := uc.checklistRepo.FetchTree(ctx, normalizeOwner(input.Owner))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tree: %w", err)
	}

	output := &GetProgressOutput{
		OverallPercent: valueobject.OverallProgress(groups),
		TotalSpent:     decimal.Zero,
		Groups:         make([]GroupProgressSummary, 0, len(groups)),
	}

	for _, group := range groups {
		groupProgress := valueobject.GroupProgress(group)
		summary := GroupProgressSummary{
			GroupID:    group.ID.String(),
			Name:       group.Name,
			Purchased:  groupProgress.Purchased,
			Target:     groupProgress.Target,
			Percent:    groupProgress.Percent,
			Spent:      groupProgress.Spent,
			Categories: make([]CategoryProgressSummary, 0, len(group.Categories)),
		}

		for _, category := range group.Categories {
			categoryProgress := valueobject.CategoryProgress(category)
			summary.Categories = append(summary.Categories, CategoryProgressSummary{
				CategoryID: category.ID.String(),
				Name:       category.Name,
				Purchased:  categoryProgress.Purchased,
				Target:     categoryProgress.Target,
				Percent:    categoryProgress.Percent,
			})
		}

		output.TotalSpent = output.TotalSpent.Add(groupProgress.Spent)
		output.Groups = append(output.Groups, summary)
	}

	return output, nil
}
