// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewUser(t *testing.T) {
	user := NewUser("ayse", "hashed", "AB23CD", RoleUser)

	if user.Title != DefaultTitle {
		t.Errorf("expected default title %q, got %q", DefaultTitle, user.Title)
	}
	if user.IsAdmin() {
		t.Error("expected regular user not to be admin")
	}
	if user.ID == uuid.Nil {
		t.Error("expected a generated id")
	}

	admin := NewUser("admin", "hashed", "CD34EF", RoleAdmin)
	if !admin.IsAdmin() {
		t.Error("expected admin role to report as admin")
	}
}

func TestFriendCodeAlphabet(t *testing.T) {
	for _, ambiguous := range "OI01" {
		if strings.ContainsRune(FriendCodeAlphabet, ambiguous) {
			t.Errorf("alphabet must not contain %q", ambiguous)
		}
	}
	if len(FriendCodeAlphabet) != 32 {
		t.Errorf("expected 32 symbols, got %d", len(FriendCodeAlphabet))
	}
}

func TestNewCategoryClampsTarget(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   int
	}{
		{"negative becomes minimum", -3, MinTargetQuantity},
		{"zero becomes minimum", 0, MinTargetQuantity},
		{"valid target kept", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category := NewCategory(uuid.New(), "Tencere Seti", "", tt.target)
			if category.TargetQuantity != tt.want {
				t.Errorf("expected target %d, got %d", tt.want, category.TargetQuantity)
			}
		})
	}
}

func TestCategoryPurchasedTotal(t *testing.T) {
	category := NewCategory(uuid.New(), "Havlu Seti", "", 6)
	category.Products = []*Product{
		{PurchasedQuantity: 2},
		{PurchasedQuantity: 3},
		{PurchasedQuantity: 0},
	}

	if got := category.PurchasedTotal(); got != 5 {
		t.Errorf("expected purchased total 5, got %d", got)
	}
}

func TestNewProductCoercesNegatives(t *testing.T) {
	product := NewProduct(uuid.New(), "Tencere", "Karaca", decimal.NewFromInt(-10), -2, "", false)

	if !product.Price.IsZero() {
		t.Errorf("expected negative price coerced to zero, got %s", product.Price)
	}
	if product.PurchasedQuantity != 0 {
		t.Errorf("expected negative quantity coerced to zero, got %d", product.PurchasedQuantity)
	}
}

func TestNewGroupKeepsExplicitValues(t *testing.T) {
	group := NewGroup(uuid.New(), "Banyo", "🛁", "#FFFFFF")

	if group.Icon != "🛁" || group.Color != "#FFFFFF" {
		t.Error("expected explicit icon and color to be kept")
	}
	if group.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
}
