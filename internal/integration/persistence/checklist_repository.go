// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
	"github.com/dowry-planner/backend/internal/integration/persistence/model"
)

// checklistRepository implements adapter.ChecklistRepository on a relational
// database. Referential integrity and cascades come from the schema's foreign
// keys; ids are scoped to the owner on every query so one user can never
// reach into another user's tree.
type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new relational checklist repository.
func NewChecklistRepository(db *gorm.DB) adapter.ChecklistRepository {
	return &checklistRepository{
		db: db,
	}
}

// ownerID resolves a username to the internal user id. The second return
// value reports whether the owner exists.
func (r *checklistRepository) ownerID(ctx context.Context, owner string) (uuid.UUID, bool, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).
		Select("id").
		Where("LOWER(username) = ?", strings.ToLower(owner)).
		First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, result.Error
	}
	return userModel.ID, true, nil
}

// groupOwned reports whether the group exists inside the owner's tree.
func (r *checklistRepository) groupOwned(ctx context.Context, ownerID, groupID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.GroupModel{}).
		Where("id = ? AND owner_id = ?", groupID, ownerID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FetchTree reconstructs the owner's full tree with three query rounds, one
// per level, each ordered by creation time ascending.
func (r *checklistRepository) FetchTree(ctx context.Context, owner string) ([]*entity.Group, error) {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*entity.Group{}, nil
	}

	var groupModels []model.GroupModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", uid).
		Order("created_at ASC").
		Find(&groupModels).Error; err != nil {
		return nil, err
	}

	groups := make([]*entity.Group, 0, len(groupModels))
	groupIndex := make(map[uuid.UUID]*entity.Group, len(groupModels))
	groupIDs := make([]uuid.UUID, 0, len(groupModels))
	for i := range groupModels {
		group := groupModels[i].ToEntity()
		group.Categories = []*entity.Category{}
		groups = append(groups, group)
		groupIndex[group.ID] = group
		groupIDs = append(groupIDs, group.ID)
	}
	if len(groupIDs) == 0 {
		return groups, nil
	}

	var categoryModels []model.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("group_id IN ?", groupIDs).
		Order("created_at ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categoryIndex := make(map[uuid.UUID]*entity.Category, len(categoryModels))
	categoryIDs := make([]uuid.UUID, 0, len(categoryModels))
	for i := range categoryModels {
		category := categoryModels[i].ToEntity()
		category.Products = []*entity.Product{}
		if parent, ok := groupIndex[category.GroupID]; ok {
			parent.Categories = append(parent.Categories, category)
		}
		categoryIndex[category.ID] = category
		categoryIDs = append(categoryIDs, category.ID)
	}
	if len(categoryIDs) == 0 {
		return groups, nil
	}

	var productModels []model.ProductModel
	if err := r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("created_at ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	for i := range productModels {
		product := productModels[i].ToEntity()
		if parent, ok := categoryIndex[product.CategoryID]; ok {
			parent.Products = append(parent.Products, product)
		}
	}

	return groups, nil
}

// CreateGroup inserts a single empty group.
func (r *checklistRepository) CreateGroup(ctx context.Context, owner string, group *entity.Group) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrUserNotFound
	}

	group.OwnerID = uid
	return r.db.WithContext(ctx).Create(model.GroupFromEntity(group)).Error
}

// CreateGroupWithHierarchy inserts the whole subtree inside one transaction.
// Product purchase state is forced back to zero regardless of what the
// entities carry.
func (r *checklistRepository) CreateGroupWithHierarchy(ctx context.Context, owner string, group *entity.Group) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrUserNotFound
	}
	group.OwnerID = uid

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.GroupFromEntity(group)).Error; err != nil {
			return err
		}
		for _, category := range group.Categories {
			category.GroupID = group.ID
			if err := tx.Create(model.CategoryFromEntity(category)).Error; err != nil {
				return err
			}
			for _, product := range category.Products {
				product.CategoryID = category.ID
				productModel := model.ProductFromEntity(product)
				productModel.PurchasedQuantity = 0
				productModel.IsPurchased = false
				if err := tx.Create(productModel).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// UpdateGroup applies a partial-field update scoped to the owner.
func (r *checklistRepository) UpdateGroup(ctx context.Context, owner string, groupID uuid.UUID, updates adapter.GroupUpdates) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrGroupNotFound
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Icon != nil {
		fields["icon"] = *updates.Icon
	}
	if updates.Color != nil {
		fields["color"] = *updates.Color
	}

	result := r.db.WithContext(ctx).Model(&model.GroupModel{}).
		Where("id = ? AND owner_id = ?", groupID, uid).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGroupNotFound
	}
	return nil
}

// DeleteGroup removes the group row; categories and products go with it via
// the schema's ON DELETE CASCADE.
func (r *checklistRepository) DeleteGroup(ctx context.Context, owner string, groupID uuid.UUID) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrGroupNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", groupID, uid).
		Delete(&model.GroupModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGroupNotFound
	}
	return nil
}

// AddCategory inserts a category under an owned group.
func (r *checklistRepository) AddCategory(ctx context.Context, owner string, groupID uuid.UUID, category *entity.Category) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrGroupNotFound
	}

	owned, err := r.groupOwned(ctx, uid, groupID)
	if err != nil {
		return err
	}
	if !owned {
		return domainerror.ErrGroupNotFound
	}

	category.GroupID = groupID
	return r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error
}

// FindCategory retrieves one category with its products loaded, or nil, nil
// when the path does not resolve.
func (r *checklistRepository) FindCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) (*entity.Category, error) {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	owned, err := r.groupOwned(ctx, uid, groupID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, nil
	}

	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", categoryID, groupID).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	category := categoryModel.ToEntity()
	category.Products = []*entity.Product{}

	var productModels []model.ProductModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}
	for i := range productModels {
		category.Products = append(category.Products, productModels[i].ToEntity())
	}

	return category, nil
}

// UpdateCategory applies a partial-field update scoped to the owner's group.
func (r *checklistRepository) UpdateCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID, updates adapter.CategoryUpdates) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrCategoryNotFound
	}

	owned, err := r.groupOwned(ctx, uid, groupID)
	if err != nil {
		return err
	}
	if !owned {
		return domainerror.ErrCategoryNotFound
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.TargetQuantity != nil {
		fields["target_quantity"] = *updates.TargetQuantity
	}
	if updates.IsCompleted != nil {
		fields["is_completed"] = *updates.IsCompleted
	}

	result := r.db.WithContext(ctx).Model(&model.CategoryModel{}).
		Where("id = ? AND group_id = ?", categoryID, groupID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes the category row; its products cascade.
func (r *checklistRepository) DeleteCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return domainerror.ErrCategoryNotFound
	}

	owned, err := r.groupOwned(ctx, uid, groupID)
	if err != nil {
		return err
	}
	if !owned {
		return domainerror.ErrCategoryNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND group_id = ?", categoryID, groupID).
		Delete(&model.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// AddProduct inserts a product under an owned category.
func (r *checklistRepository) AddProduct(ctx context.Context, owner string, groupID, categoryID uuid.UUID, product *entity.Product) error {
	category, err := r.FindCategory(ctx, owner, groupID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domainerror.ErrCategoryNotFound
	}

	product.CategoryID = categoryID
	return r.db.WithContext(ctx).Create(model.ProductFromEntity(product)).Error
}

// UpdateProduct applies a partial-field update scoped to the owner's category.
func (r *checklistRepository) UpdateProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID, updates adapter.ProductUpdates) error {
	category, err := r.FindCategory(ctx, owner, groupID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domainerror.ErrProductNotFound
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Brand != nil {
		fields["brand"] = *updates.Brand
	}
	if updates.Price != nil {
		fields["price"] = *updates.Price
	}
	if updates.PurchasedQuantity != nil {
		fields["purchased_quantity"] = *updates.PurchasedQuantity
	}
	if updates.Notes != nil {
		fields["notes"] = *updates.Notes
	}
	if updates.IsPurchased != nil {
		fields["is_purchased"] = *updates.IsPurchased
	}

	result := r.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ? AND category_id = ?", productID, categoryID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a single product.
func (r *checklistRepository) DeleteProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID) error {
	category, err := r.FindCategory(ctx, owner, groupID, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domainerror.ErrProductNotFound
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND category_id = ?", productID, categoryID).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProductNotFound
	}
	return nil
}

// DeleteTree removes every group the owner holds; the cascade clears the
// levels below. An unknown owner is a no-op.
func (r *checklistRepository) DeleteTree(ctx context.Context, owner string) error {
	uid, found, err := r.ownerID(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	return r.db.WithContext(ctx).
		Where("owner_id = ?", uid).
		Delete(&model.GroupModel{}).Error
}
