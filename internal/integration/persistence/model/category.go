// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	GroupID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name           string         `gorm:"type:varchar(100);not null"`
	Description    string         `gorm:"type:text"`
	TargetQuantity int            `gorm:"not null;default:1"`
	IsCompleted    bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	Products       []ProductModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:             m.ID,
		GroupID:        m.GroupID,
		Name:           m.Name,
		Description:    m.Description,
		TargetQuantity: m.TargetQuantity,
		IsCompleted:    m.IsCompleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:             category.ID,
		GroupID:        category.GroupID,
		Name:           category.Name,
		Description:    category.Description,
		TargetQuantity: category.TargetQuantity,
		IsCompleted:    category.IsCompleted,
		CreatedAt:      category.CreatedAt,
		UpdatedAt:      category.UpdatedAt,
	}
}
