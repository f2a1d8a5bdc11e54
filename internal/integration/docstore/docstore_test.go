package docstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func seedTree(t *testing.T, store *ChecklistStore, owner string) (*entity.Group, *entity.Category, *entity.Product) {
	t.Helper()
	ctx := context.Background()

	group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
	if err := store.CreateGroup(ctx, owner, group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	category := entity.NewCategory(group.ID, "Tencereler", "Çelik setler", 3)
	if err := store.AddCategory(ctx, owner, group.ID, category); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}
	product := entity.NewProduct(category.ID, "Çelik Tencere", "Karaca", decimal.NewFromFloat(899.90), 1, "", false)
	if err := store.AddProduct(ctx, owner, group.ID, category.ID, product); err != nil {
		t.Fatalf("failed to add product: %v", err)
	}
	return group, category, product
}

func TestChecklistStoreTree(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips the full tree", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))
		group, category, product := seedTree(t, store, "ayse")

		groups, err := store.FetchTree(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Fatalf("expected one group %s, got %+v", group.ID, groups)
		}
		if len(groups[0].Categories) != 1 || groups[0].Categories[0].ID != category.ID {
			t.Fatalf("expected one category, got %+v", groups[0].Categories)
		}
		stored := groups[0].Categories[0].Products
		if len(stored) != 1 || stored[0].ID != product.ID {
			t.Fatalf("expected one product, got %+v", stored)
		}
		if !stored[0].Price.Equal(decimal.NewFromFloat(899.90)) {
			t.Errorf("expected price 899.90, got %s", stored[0].Price)
		}
	})

	t.Run("reassembles many sibling categories with their own products", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))

		group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		if err := store.CreateGroup(ctx, "ayse", group); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}

		names := []string{"Tencereler", "Tabaklar", "Bardaklar", "Çatal Bıçak", "Küçük Aletler"}
		for i, name := range names {
			category := entity.NewCategory(group.ID, name, "", 2)
			category.CreatedAt = category.CreatedAt.Add(time.Duration(i) * time.Second)
			if err := store.AddCategory(ctx, "ayse", group.ID, category); err != nil {
				t.Fatalf("failed to add category %s: %v", name, err)
			}
			for j := 0; j < 2; j++ {
				product := entity.NewProduct(category.ID, fmt.Sprintf("%s %d", name, j), "", decimal.Zero, 0, "", false)
				if err := store.AddProduct(ctx, "ayse", group.ID, category.ID, product); err != nil {
					t.Fatalf("failed to add product: %v", err)
				}
			}
		}

		groups, err := store.FetchTree(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 1 || len(groups[0].Categories) != len(names) {
			t.Fatalf("expected %d categories, got %+v", len(names), groups)
		}
		for i, category := range groups[0].Categories {
			if category.Name != names[i] {
				t.Errorf("expected category %d to be %s, got %s", i, names[i], category.Name)
			}
			if len(category.Products) != 2 {
				t.Errorf("expected 2 products under %s, got %d", category.Name, len(category.Products))
			}
			for _, product := range category.Products {
				if product.CategoryID != category.ID {
					t.Errorf("product %s attached to the wrong category", product.Name)
				}
			}
		}
	})

	t.Run("orders groups by creation time", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))

		second := entity.NewGroup(uuid.Nil, "Yatak Odası", "🛏️", "#D0BFFF")
		second.CreatedAt = second.CreatedAt.Add(time.Minute)
		first := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")

		if err := store.CreateGroup(ctx, "ayse", second); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}
		if err := store.CreateGroup(ctx, "ayse", first); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}

		groups, err := store.FetchTree(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 || groups[0].Name != "Mutfak" || groups[1].Name != "Yatak Odası" {
			t.Fatalf("expected [Mutfak Yatak Odası], got %+v", groups)
		}
	})

	t.Run("an unknown owner has an empty tree", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))

		groups, err := store.FetchTree(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Fatalf("expected empty tree, got %+v", groups)
		}
	})

	t.Run("missing documents map to not-found sentinels", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))
		group, category, _ := seedTree(t, store, "ayse")

		name := "x"
		err := store.UpdateGroup(ctx, "ayse", uuid.New(), adapter.GroupUpdates{Name: &name})
		if !errors.Is(err, domainerror.ErrGroupNotFound) {
			t.Errorf("expected ErrGroupNotFound, got %v", err)
		}

		product := entity.NewProduct(uuid.Nil, "Tabak", "", decimal.Zero, 0, "", false)
		err = store.AddProduct(ctx, "ayse", group.ID, uuid.New(), product)
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}

		err = store.DeleteProduct(ctx, "ayse", group.ID, category.ID, uuid.New())
		if !errors.Is(err, domainerror.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}

		found, err := store.FindCategory(ctx, "ayse", group.ID, uuid.New())
		if err != nil || found != nil {
			t.Errorf("expected nil, nil for a missing category, got %+v, %v", found, err)
		}
	})

	t.Run("deleting a group clears the whole subtree", func(t *testing.T) {
		client := newTestClient(t)
		store := NewChecklistStore(client)
		group, category, _ := seedTree(t, store, "ayse")

		if err := store.DeleteGroup(ctx, "ayse", group.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, key := range []string{
			categoriesKey("ayse", group.ID),
			productsKey("ayse", group.ID, category.ID),
		} {
			exists, err := client.Exists(ctx, key).Result()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exists != 0 {
				t.Errorf("expected key %s removed", key)
			}
		}

		groups, err := store.FetchTree(ctx, "ayse")
		if err != nil || len(groups) != 0 {
			t.Fatalf("expected empty tree after delete, got %+v, %v", groups, err)
		}
	})

	t.Run("bulk create resets purchase state", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))

		group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		category := entity.NewCategory(group.ID, "Tencereler", "", 3)
		product := entity.NewProduct(category.ID, "Çelik Tencere", "Karaca", decimal.NewFromFloat(899.90), 2, "", true)
		category.Products = []*entity.Product{product}
		group.Categories = []*entity.Category{category}

		if err := store.CreateGroupWithHierarchy(ctx, "ayse", group); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		groups, err := store.FetchTree(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := groups[0].Categories[0].Products[0]
		if stored.PurchasedQuantity != 0 || stored.IsPurchased {
			t.Errorf("expected purchase state cleared, got quantity=%d purchased=%v",
				stored.PurchasedQuantity, stored.IsPurchased)
		}
	})

	t.Run("partial updates keep the other fields", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))
		group, category, product := seedTree(t, store, "ayse")

		quantity := 3
		err := store.UpdateProduct(ctx, "ayse", group.ID, category.ID, product.ID, adapter.ProductUpdates{
			PurchasedQuantity: &quantity,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := store.FindCategory(ctx, "ayse", group.ID, category.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := found.Products[0]
		if stored.PurchasedQuantity != 3 {
			t.Errorf("expected quantity 3, got %d", stored.PurchasedQuantity)
		}
		if stored.Name != "Çelik Tencere" || stored.Brand != "Karaca" {
			t.Errorf("expected untouched fields preserved, got %+v", stored)
		}
	})
}

func TestChecklistStoreMigrateTree(t *testing.T) {
	ctx := context.Background()

	t.Run("moves every document to the new owner", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))
		_, category, product := seedTree(t, store, "ayse")

		if err := store.MigrateTree(ctx, "ayse", "zeynep"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		migrated, err := store.FetchTree(ctx, "zeynep")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(migrated) != 1 || len(migrated[0].Categories) != 1 {
			t.Fatalf("expected the full tree under zeynep, got %+v", migrated)
		}
		if migrated[0].Categories[0].ID != category.ID || migrated[0].Categories[0].Products[0].ID != product.ID {
			t.Error("expected documents copied verbatim")
		}

		old, err := store.FetchTree(ctx, "ayse")
		if err != nil || len(old) != 0 {
			t.Fatalf("expected old tree removed, got %+v, %v", old, err)
		}
	})

	t.Run("an empty tree migrates as a no-op", func(t *testing.T) {
		store := NewChecklistStore(newTestClient(t))

		if err := store.MigrateTree(ctx, "ayse", "zeynep"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestChecklistStoreSubscribeTree(t *testing.T) {
	ctx := context.Background()
	store := NewChecklistStore(newTestClient(t))
	seedTree(t, store, "ayse")

	updates := make(chan []*entity.Group, 8)
	subscription, err := store.SubscribeTree(ctx, "ayse", func(groups []*entity.Group) {
		updates <- groups
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer subscription.Unsubscribe()

	select {
	case snapshot := <-updates:
		if len(snapshot) != 1 {
			t.Fatalf("expected initial snapshot with one group, got %+v", snapshot)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the initial snapshot")
	}

	group := entity.NewGroup(uuid.Nil, "Salon", "🛋️", "#B2F2BB")
	group.CreatedAt = group.CreatedAt.Add(time.Minute)
	if err := store.CreateGroup(ctx, "ayse", group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot := <-updates:
			if len(snapshot) == 2 {
				subscription.Unsubscribe()
				subscription.Unsubscribe() // idempotent
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the change notification")
		}
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()

	newUser := func(username, code string) *entity.User {
		return entity.NewUser(username, "hash", code, entity.RoleUser)
	}

	t.Run("round trips a user document", func(t *testing.T) {
		store := NewUserStore(newTestClient(t))
		if err := store.Create(ctx, newUser("ayse", "AB23CD")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := store.FindByUsername(ctx, "AySe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil || found.Username != "ayse" || found.Title != entity.DefaultTitle {
			t.Fatalf("expected ayse with the default title, got %+v", found)
		}

		missing, err := store.FindByUsername(ctx, "nobody")
		if err != nil || missing != nil {
			t.Fatalf("expected nil, nil for an unknown user, got %+v, %v", missing, err)
		}
	})

	t.Run("resolves friend codes through the index", func(t *testing.T) {
		store := NewUserStore(newTestClient(t))
		if err := store.Create(ctx, newUser("ayse", "AB23CD")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := store.FindByFriendCode(ctx, "ab23cd")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found == nil || found.Username != "ayse" {
			t.Fatalf("expected ayse, got %+v", found)
		}

		missing, err := store.FindByFriendCode(ctx, "ZZZZ99")
		if err != nil || missing != nil {
			t.Fatalf("expected nil, nil for an unknown code, got %+v, %v", missing, err)
		}
	})

	t.Run("a friend code change moves the index entry", func(t *testing.T) {
		store := NewUserStore(newTestClient(t))
		if err := store.Create(ctx, newUser("ayse", "AB23CD")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		newCode := "EF45GH"
		if err := store.Update(ctx, "ayse", adapter.UserUpdates{FriendCode: &newCode}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := store.FindByFriendCode(ctx, "EF45GH")
		if err != nil || found == nil {
			t.Fatalf("expected the new code to resolve, got %+v, %v", found, err)
		}
		stale, err := store.FindByFriendCode(ctx, "AB23CD")
		if err != nil || stale != nil {
			t.Fatalf("expected the old code released, got %+v, %v", stale, err)
		}
	})

	t.Run("rename repoints the document and the index", func(t *testing.T) {
		store := NewUserStore(newTestClient(t))
		if err := store.Create(ctx, newUser("ayse", "AB23CD")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := store.Rename(ctx, "ayse", "zeynep"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		renamed, err := store.FindByUsername(ctx, "zeynep")
		if err != nil || renamed == nil || renamed.Username != "zeynep" {
			t.Fatalf("expected zeynep after rename, got %+v, %v", renamed, err)
		}
		old, err := store.FindByUsername(ctx, "ayse")
		if err != nil || old != nil {
			t.Fatalf("expected old document removed, got %+v, %v", old, err)
		}
		byCode, err := store.FindByFriendCode(ctx, "AB23CD")
		if err != nil || byCode == nil || byCode.Username != "zeynep" {
			t.Fatalf("expected the code to follow the rename, got %+v, %v", byCode, err)
		}
	})

	t.Run("delete releases the friend code", func(t *testing.T) {
		store := NewUserStore(newTestClient(t))
		if err := store.Create(ctx, newUser("ayse", "AB23CD")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := store.Delete(ctx, "ayse"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Delete(ctx, "ayse"); !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound on the second delete, got %v", err)
		}

		stale, err := store.FindByFriendCode(ctx, "AB23CD")
		if err != nil || stale != nil {
			t.Fatalf("expected the code released, got %+v, %v", stale, err)
		}
	})

	t.Run("lists users in creation order", func(t *testing.T) {
		store := NewUserStore(newTestClient(t))

		zeynep := newUser("zeynep", "CD34EF")
		zeynep.CreatedAt = zeynep.CreatedAt.Add(time.Minute)
		if err := store.Create(ctx, zeynep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Create(ctx, newUser("ayse", "AB23CD")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		users, err := store.FindAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 2 || users[0].Username != "ayse" || users[1].Username != "zeynep" {
			t.Fatalf("expected [ayse zeynep], got %+v", users)
		}

		exists, err := store.ExistsByUsername(ctx, "AYSE")
		if err != nil || !exists {
			t.Fatalf("expected ayse to exist, got %v, %v", exists, err)
		}
	})
}
