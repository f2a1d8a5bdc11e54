package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
	"github.com/dowry-planner/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dbSQL, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: false,
	})
	if err != nil {
		t.Fatalf("failed to connect gorm: %v", err)
	}
	if err := dbConn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := dbConn.AutoMigrate(
		&model.UserModel{},
		&model.GroupModel{},
		&model.CategoryModel{},
		&model.ProductModel{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = dbSQL.Close() })

	return dbConn
}

func seedUser(t *testing.T, db *gorm.DB, username, friendCode string) *entity.User {
	t.Helper()
	user := entity.NewUser(username, "hash", friendCode, entity.RoleUser)
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("finds a user regardless of username case", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		user, err := repo.FindByUsername(ctx, "AySe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.Username != "ayse" {
			t.Fatalf("expected to find ayse, got %+v", user)
		}
	})

	t.Run("unknown username resolves to nil without an error", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)

		user, err := repo.FindByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user != nil {
			t.Fatalf("expected nil, got %+v", user)
		}
	})

	t.Run("friend code lookup ignores case", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		user, err := repo.FindByFriendCode(ctx, "ab23cd")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.Username != "ayse" {
			t.Fatalf("expected to find ayse, got %+v", user)
		}

		missing, err := repo.FindByFriendCode(ctx, "ZZZZ99")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if missing != nil {
			t.Fatalf("expected nil for unknown code, got %+v", missing)
		}
	})

	t.Run("update touches only the supplied fields", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		title := "Düğün Hazırlığı"
		wedding := time.Date(2027, 6, 12, 0, 0, 0, 0, time.UTC)
		err := repo.Update(ctx, "ayse", adapter.UserUpdates{Title: &title, WeddingDate: &wedding})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		user, err := repo.FindByUsername(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Title != title {
			t.Errorf("expected title %q, got %q", title, user.Title)
		}
		if user.PasswordHash != "hash" {
			t.Errorf("expected password hash untouched, got %q", user.PasswordHash)
		}
		if user.WeddingDate == nil || !user.WeddingDate.Equal(wedding) {
			t.Errorf("expected wedding date %v, got %v", wedding, user.WeddingDate)
		}
	})

	t.Run("update on an unknown user reports not found", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)

		title := "x"
		if err := repo.Update(ctx, "nobody", adapter.UserUpdates{Title: &title}); err != domainerror.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("rename stores the new username lowercased", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		if err := repo.Rename(ctx, "AYSE", "Zeynep"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		user, err := repo.FindByUsername(ctx, "zeynep")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.Username != "zeynep" {
			t.Fatalf("expected zeynep after rename, got %+v", user)
		}

		old, _ := repo.FindByUsername(ctx, "ayse")
		if old != nil {
			t.Fatalf("expected old username gone, got %+v", old)
		}
	})

	t.Run("delete on an unknown user reports not found", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)

		if err := repo.Delete(ctx, "nobody"); err != domainerror.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("lists users in creation order", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "ayse", "AB23CD")
		seedUser(t, db, "zeynep", "CD34EF")

		users, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 2 || users[0].Username != "ayse" || users[1].Username != "zeynep" {
			t.Fatalf("expected [ayse zeynep], got %+v", users)
		}
	})
}

func TestChecklistRepositoryTree(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown owner yields an empty tree", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)

		groups, err := repo.FetchTree(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Fatalf("expected empty tree, got %d groups", len(groups))
		}
	})

	t.Run("rebuilds the full tree in creation order", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		kitchen := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		if err := repo.CreateGroup(ctx, "ayse", kitchen); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}
		bedroom := entity.NewGroup(uuid.Nil, "Yatak Odası", "🛏️", "#D0BFFF")
		bedroom.CreatedAt = kitchen.CreatedAt.Add(time.Second)
		if err := repo.CreateGroup(ctx, "ayse", bedroom); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}

		pots := entity.NewCategory(kitchen.ID, "Tencereler", "", 3)
		if err := repo.AddCategory(ctx, "ayse", kitchen.ID, pots); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}
		pot := entity.NewProduct(pots.ID, "Çelik Tencere", "Karaca", decimal.NewFromFloat(899.90), 1, "", false)
		if err := repo.AddProduct(ctx, "ayse", kitchen.ID, pots.ID, pot); err != nil {
			t.Fatalf("failed to add product: %v", err)
		}

		groups, err := repo.FetchTree(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].Name != "Mutfak" || groups[1].Name != "Yatak Odası" {
			t.Errorf("expected creation order [Mutfak, Yatak Odası], got [%s, %s]", groups[0].Name, groups[1].Name)
		}
		if len(groups[0].Categories) != 1 || len(groups[0].Categories[0].Products) != 1 {
			t.Fatalf("expected one category with one product under Mutfak, got %+v", groups[0].Categories)
		}
		if got := groups[0].Categories[0].Products[0].Price; !got.Equal(decimal.NewFromFloat(899.90)) {
			t.Errorf("expected price 899.90, got %s", got)
		}
		if groups[1].Categories == nil || len(groups[1].Categories) != 0 {
			t.Errorf("expected an empty but non-nil category slice, got %+v", groups[1].Categories)
		}
	})

	t.Run("owners cannot see each other's groups", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)
		seedUser(t, db, "ayse", "AB23CD")
		seedUser(t, db, "zeynep", "CD34EF")

		group := entity.NewGroup(uuid.Nil, "Mutfak", "📦", "#E8B4BC")
		if err := repo.CreateGroup(ctx, "ayse", group); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}
		category := entity.NewCategory(group.ID, "Tencereler", "", 1)
		if err := repo.AddCategory(ctx, "ayse", group.ID, category); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}

		found, err := repo.FindCategory(ctx, "zeynep", group.ID, category.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Fatal("expected another owner's category to be invisible")
		}

		name := "stolen"
		err = repo.UpdateGroup(ctx, "zeynep", group.ID, adapter.GroupUpdates{Name: &name})
		if err != domainerror.ErrGroupNotFound {
			t.Fatalf("expected ErrGroupNotFound, got %v", err)
		}
	})
}

func TestChecklistRepositoryHierarchy(t *testing.T) {
	ctx := context.Background()

	t.Run("bulk create resets purchase state", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		category := entity.NewCategory(group.ID, "Tencereler", "", 3)
		product := entity.NewProduct(category.ID, "Çelik Tencere", "Karaca", decimal.NewFromFloat(899.90), 2, "", true)
		category.Products = []*entity.Product{product}
		group.Categories = []*entity.Category{category}

		if err := repo.CreateGroupWithHierarchy(ctx, "ayse", group); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		groups, err := repo.FetchTree(ctx, "ayse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := groups[0].Categories[0].Products[0]
		if stored.PurchasedQuantity != 0 || stored.IsPurchased {
			t.Errorf("expected purchase state cleared, got quantity=%d purchased=%v",
				stored.PurchasedQuantity, stored.IsPurchased)
		}
	})

	t.Run("deleting a group cascades to categories and products", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		if err := repo.CreateGroup(ctx, "ayse", group); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}
		category := entity.NewCategory(group.ID, "Tencereler", "", 3)
		if err := repo.AddCategory(ctx, "ayse", group.ID, category); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}
		product := entity.NewProduct(category.ID, "Çelik Tencere", "", decimal.Zero, 0, "", false)
		if err := repo.AddProduct(ctx, "ayse", group.ID, category.ID, product); err != nil {
			t.Fatalf("failed to add product: %v", err)
		}

		if err := repo.DeleteGroup(ctx, "ayse", group.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var categories, products int64
		db.Model(&model.CategoryModel{}).Count(&categories)
		db.Model(&model.ProductModel{}).Count(&products)
		if categories != 0 || products != 0 {
			t.Errorf("expected cascade to clear children, got %d categories and %d products", categories, products)
		}
	})

	t.Run("deleting a user cascades to their whole tree", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		if err := repo.CreateGroup(ctx, "ayse", group); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}
		category := entity.NewCategory(group.ID, "Tencereler", "", 3)
		if err := repo.AddCategory(ctx, "ayse", group.ID, category); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}
		product := entity.NewProduct(category.ID, "Çelik Tencere", "", decimal.Zero, 0, "", false)
		if err := repo.AddProduct(ctx, "ayse", group.ID, category.ID, product); err != nil {
			t.Fatalf("failed to add product: %v", err)
		}

		if err := NewUserRepository(db).Delete(ctx, "ayse"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var groups, categories, products int64
		db.Model(&model.GroupModel{}).Count(&groups)
		db.Model(&model.CategoryModel{}).Count(&categories)
		db.Model(&model.ProductModel{}).Count(&products)
		if groups != 0 || categories != 0 || products != 0 {
			t.Errorf("expected the user row delete to cascade, got %d groups, %d categories, %d products",
				groups, categories, products)
		}
	})

	t.Run("missing paths map to not-found sentinels", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)
		seedUser(t, db, "ayse", "AB23CD")

		group := entity.NewGroup(uuid.Nil, "Mutfak", "🍳", "#FFD8A8")
		if err := repo.CreateGroup(ctx, "ayse", group); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}

		product := entity.NewProduct(uuid.Nil, "Tencere", "", decimal.Zero, 0, "", false)
		err := repo.AddProduct(ctx, "ayse", group.ID, uuid.New(), product)
		if err != domainerror.ErrCategoryNotFound {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}

		category := entity.NewCategory(group.ID, "Tencereler", "", 1)
		if err := repo.AddCategory(ctx, "ayse", group.ID, category); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}

		name := "x"
		err = repo.UpdateProduct(ctx, "ayse", group.ID, category.ID, uuid.New(), adapter.ProductUpdates{Name: &name})
		if err != domainerror.ErrProductNotFound {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}

		err = repo.DeleteCategory(ctx, "ayse", group.ID, uuid.New())
		if err != domainerror.ErrCategoryNotFound {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("deleting the tree of an unknown owner is a no-op", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewChecklistRepository(db)

		if err := repo.DeleteTree(ctx, "nobody"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
