// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// UserModel represents the users table in the database. Usernames are stored
// lowercased; lookups still go through LOWER() so hand-written rows behave.
// The Groups association declares the ON DELETE CASCADE constraint so
// deleting a user row takes their whole tree with it.
type UserModel struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Username     string       `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string       `gorm:"type:varchar(255);not null"`
	Title        string       `gorm:"type:varchar(100);not null"`
	FriendCode   string       `gorm:"type:varchar(12);uniqueIndex;not null"`
	WeddingDate  *time.Time
	Role         string       `gorm:"type:varchar(10);not null;default:'user'"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
	Groups       []GroupModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Title:        m.Title,
		FriendCode:   m.FriendCode,
		WeddingDate:  m.WeddingDate,
		Role:         entity.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Title:        user.Title,
		FriendCode:   user.FriendCode,
		WeddingDate:  user.WeddingDate,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
