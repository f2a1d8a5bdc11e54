// Package valueobject provides pure computations over checklist tree snapshots.
package valueobject

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

func product(quantity int, price string) *entity.Product {
	amount, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return &entity.Product{
		ID:                uuid.New(),
		Price:             amount,
		PurchasedQuantity: quantity,
		IsPurchased:       quantity > 0,
	}
}

func category(target int, products ...*entity.Product) *entity.Category {
	return &entity.Category{
		ID:             uuid.New(),
		TargetQuantity: target,
		Products:       products,
	}
}

func TestCategoryProgress(t *testing.T) {
	tests := []struct {
		name          string
		category      *entity.Category
		wantPurchased int
		wantPercent   int
	}{
		{
			name:          "empty category",
			category:      category(4),
			wantPurchased: 0,
			wantPercent:   0,
		},
		{
			name:          "halfway there",
			category:      category(4, product(1, "10"), product(1, "20")),
			wantPurchased: 2,
			wantPercent:   50,
		},
		{
			name:          "rounds to nearest",
			category:      category(3, product(1, "10")),
			wantPurchased: 1,
			wantPercent:   33,
		},
		{
			name:          "rounds up past half",
			category:      category(3, product(2, "10")),
			wantPurchased: 2,
			wantPercent:   67,
		},
		{
			name:          "over target clamps to 100",
			category:      category(2, product(5, "10")),
			wantPurchased: 5,
			wantPercent:   100,
		},
		{
			name:          "zero target yields zero",
			category:      category(0, product(3, "10")),
			wantPurchased: 3,
			wantPercent:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryProgress(tt.category)
			if got.Purchased != tt.wantPurchased {
				t.Errorf("purchased: expected %d, got %d", tt.wantPurchased, got.Purchased)
			}
			if got.Percent != tt.wantPercent {
				t.Errorf("percent: expected %d, got %d", tt.wantPercent, got.Percent)
			}
		})
	}
}

func TestGroupProgress(t *testing.T) {
	group := &entity.Group{
		ID: uuid.New(),
		Categories: []*entity.Category{
			category(2, product(1, "1499.90")),
			category(4, product(2, "250"), product(1, "0")),
		},
	}

	got := GroupProgress(group)

	if got.Purchased != 4 {
		t.Errorf("expected 4 purchased, got %d", got.Purchased)
	}
	if got.Target != 6 {
		t.Errorf("expected target 6, got %d", got.Target)
	}
	if got.Percent != 67 {
		t.Errorf("expected 67%%, got %d%%", got.Percent)
	}
	if want := decimal.RequireFromString("1749.90"); !got.Spent.Equal(want) {
		t.Errorf("expected spent %s, got %s", want, got.Spent)
	}
}

func TestOverallProgress(t *testing.T) {
	t.Run("empty tree yields zero", func(t *testing.T) {
		if got := OverallProgress(nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("aggregates across groups", func(t *testing.T) {
		groups := []*entity.Group{
			{ID: uuid.New(), Categories: []*entity.Category{category(2, product(2, "10"))}},
			{ID: uuid.New(), Categories: []*entity.Category{category(2)}},
		}
		if got := OverallProgress(groups); got != 50 {
			t.Errorf("expected 50, got %d", got)
		}
	})
}

func TestTreeSpend(t *testing.T) {
	kitchen := &entity.Group{
		ID:         uuid.New(),
		Categories: []*entity.Category{category(1, product(1, "100.50"))},
	}
	bathroom := &entity.Group{
		ID:         uuid.New(),
		Categories: []*entity.Category{category(1, product(1, "49.50"))},
	}

	got := TreeSpend([]*entity.Group{kitchen, bathroom})

	if want := decimal.RequireFromString("150"); !got.Total.Equal(want) {
		t.Errorf("expected total %s, got %s", want, got.Total)
	}
	if want := decimal.RequireFromString("100.50"); !got.PerGroup[kitchen.ID.String()].Equal(want) {
		t.Errorf("expected kitchen spend %s, got %s", want, got.PerGroup[kitchen.ID.String()])
	}
	if want := decimal.RequireFromString("49.50"); !got.PerGroup[bathroom.ID.String()].Equal(want) {
		t.Errorf("expected bathroom spend %s, got %s", want, got.PerGroup[bathroom.ID.String()])
	}
}
