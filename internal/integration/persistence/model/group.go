// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// GroupModel represents the groups table in the database. The Categories
// association declares the ON DELETE CASCADE constraint so deleting a group
// row takes its whole subtree with it.
type GroupModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(100);not null"`
	Icon       string          `gorm:"type:varchar(50);not null"`
	Color      string          `gorm:"type:varchar(7);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	Categories []CategoryModel `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the GroupModel.
func (GroupModel) TableName() string {
	return "groups"
}

// ToEntity converts a GroupModel to a domain Group entity. Categories are not
// mapped here; tree assembly happens in the repository.
func (m *GroupModel) ToEntity() *entity.Group {
	return &entity.Group{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Icon:      m.Icon,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GroupFromEntity creates a GroupModel from a domain Group entity.
func GroupFromEntity(group *entity.Group) *GroupModel {
	return &GroupModel{
		ID:        group.ID,
		OwnerID:   group.OwnerID,
		Name:      group.Name,
		Icon:      group.Icon,
		Color:     group.Color,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}
}
