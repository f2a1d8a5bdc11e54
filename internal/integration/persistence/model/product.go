// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// ProductModel represents the products table in the database.
type ProductModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Brand             string          `gorm:"type:varchar(100)"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PurchasedQuantity int             `gorm:"not null;default:0"`
	Notes             string          `gorm:"type:text"`
	IsPurchased       bool            `gorm:"not null;default:false"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToEntity converts a ProductModel to a domain Product entity.
func (m *ProductModel) ToEntity() *entity.Product {
	return &entity.Product{
		ID:                m.ID,
		CategoryID:        m.CategoryID,
		Name:              m.Name,
		Brand:             m.Brand,
		Price:             m.Price,
		PurchasedQuantity: m.PurchasedQuantity,
		Notes:             m.Notes,
		IsPurchased:       m.IsPurchased,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// ProductFromEntity creates a ProductModel from a domain Product entity.
func ProductFromEntity(product *entity.Product) *ProductModel {
	return &ProductModel{
		ID:                product.ID,
		CategoryID:        product.CategoryID,
		Name:              product.Name,
		Brand:             product.Brand,
		Price:             product.Price,
		PurchasedQuantity: product.PurchasedQuantity,
		Notes:             product.Notes,
		IsPurchased:       product.IsPurchased,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}
