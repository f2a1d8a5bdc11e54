// Package valueobject provides pure computations over checklist tree snapshots.
package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// CategoryProgressResult summarizes purchase progress for a single category.
type CategoryProgressResult struct {
	Purchased int
	Target    int
	Percent   int
}

// GroupProgressResult summarizes purchase progress and spend for a group.
type GroupProgressResult struct {
	Spent     decimal.Decimal
	Purchased int
	Target    int
	Percent   int
}

// TreeSpendResult breaks total spend down per group.
type TreeSpendResult struct {
	Total    decimal.Decimal
	PerGroup map[string]decimal.Decimal // keyed by group id
}

// CategoryProgress computes purchased vs. target for one category. Percent is
// rounded to the nearest integer and clamped to [0,100]; a zero target yields
// zero percent.
func CategoryProgress(category *entity.Category) CategoryProgressResult {
	purchased := category.PurchasedTotal()
	return CategoryProgressResult{
		Purchased: purchased,
		Target:    category.TargetQuantity,
		Percent:   percentOf(purchased, category.TargetQuantity),
	}
}

// GroupProgress aggregates progress across all categories of a group. Spent is
// the sum of product prices in the group; a product without a price counts as
// zero.
func GroupProgress(group *entity.Group) GroupProgressResult {
	result := GroupProgressResult{Spent: decimal.Zero}
	for _, category := range group.Categories {
		result.Target += category.TargetQuantity
		result.Purchased += category.PurchasedTotal()
		for _, product := range category.Products {
			result.Spent = result.Spent.Add(product.Price)
		}
	}
	result.Percent = percentOf(result.Purchased, result.Target)
	return result
}

// OverallProgress aggregates purchased vs. target across the whole tree.
// An empty tree yields zero.
func OverallProgress(groups []*entity.Group) int {
	target := 0
	purchased := 0
	for _, group := range groups {
		for _, category := range group.Categories {
			target += category.TargetQuantity
			purchased += category.PurchasedTotal()
		}
	}
	return percentOf(purchased, target)
}

// TreeSpend computes the total spend across the tree with a per-group
// breakdown.
func TreeSpend(groups []*entity.Group) TreeSpendResult {
	result := TreeSpendResult{
		Total:    decimal.Zero,
		PerGroup: make(map[string]decimal.Decimal, len(groups)),
	}
	for _, group := range groups {
		spent := GroupProgress(group).Spent
		result.PerGroup[group.ID.String()] = spent
		result.Total = result.Total.Add(spent)
	}
	return result
}

// percentOf rounds 100*purchased/target to the nearest integer, clamped to
// [0,100]. A zero target avoids division and yields zero.
func percentOf(purchased, target int) int {
	if target <= 0 {
		return 0
	}
	percent := int(float64(purchased)/float64(target)*100 + 0.5)
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}
