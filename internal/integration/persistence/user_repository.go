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

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.FromEntity(user)
	result := r.db.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByUsername retrieves a user by username, matched case-insensitively.
// Returns nil, nil when no user matches.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("LOWER(username) = ?", strings.ToLower(username)).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByFriendCode retrieves a user by friend code, matched
// case-insensitively. Returns nil, nil when no user holds the code.
func (r *userRepository) FindByFriendCode(ctx context.Context, code string) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("UPPER(friend_code) = ?", strings.ToUpper(code)).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindAll retrieves every user ordered by creation time.
func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.UserModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&userModels)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].ToEntity())
	}
	return users, nil
}

// Update applies a partial-field update to the user record. Only non-nil
// fields touch the row.
func (r *userRepository) Update(ctx context.Context, username string, updates adapter.UserUpdates) error {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if updates.Title != nil {
		fields["title"] = *updates.Title
	}
	if updates.PasswordHash != nil {
		fields["password_hash"] = *updates.PasswordHash
	}
	if updates.Role != nil {
		fields["role"] = string(*updates.Role)
	}
	if updates.FriendCode != nil {
		fields["friend_code"] = *updates.FriendCode
	}
	if updates.WeddingDate != nil {
		fields["wedding_date"] = *updates.WeddingDate
	}

	result := r.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrUserNotFound
	}
	return nil
}

// Rename moves the user record to a new username. Tree rows reference the
// user's id, so they follow the rename without any data movement.
func (r *userRepository) Rename(ctx context.Context, oldUsername, newUsername string) error {
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("LOWER(username) = ?", strings.ToLower(oldUsername)).
		Updates(map[string]interface{}{
			"username":   strings.ToLower(newUsername),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrUserNotFound
	}
	return nil
}

// Delete removes a user record.
func (r *userRepository) Delete(ctx context.Context, username string) error {
	result := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrUserNotFound
	}
	return nil
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
