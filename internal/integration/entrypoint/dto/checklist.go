// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/application/usecase/checklist"
	"github.com/dowry-planner/backend/internal/domain/entity"
)

// CreateGroupRequest represents the request body for creating a group.
type CreateGroupRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// UpdateGroupRequest represents a partial group update.
type UpdateGroupRequest struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// CreateCategoryRequest represents the request body for adding a category.
type CreateCategoryRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Description    string `json:"description,omitempty"`
	TargetQuantity int    `json:"target_quantity"`
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	TargetQuantity *int    `json:"target_quantity,omitempty"`
	IsCompleted    *bool   `json:"is_completed,omitempty"`
}

// CreateProductRequest represents the request body for adding a product.
type CreateProductRequest struct {
	Name              string  `json:"name" binding:"required,min=1,max=100"`
	Brand             string  `json:"brand,omitempty"`
	Price             float64 `json:"price"`
	PurchasedQuantity int     `json:"purchased_quantity"`
	Notes             string  `json:"notes,omitempty"`
	IsPurchased       bool    `json:"is_purchased"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name              *string  `json:"name,omitempty"`
	Brand             *string  `json:"brand,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	PurchasedQuantity *int     `json:"purchased_quantity,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	IsPurchased       *bool    `json:"is_purchased,omitempty"`
}

// ImportTemplateRequest selects which predefined groups to import. An empty
// list imports the full template.
type ImportTemplateRequest struct {
	Names []string `json:"names,omitempty"`
}

// BulkProductRequest is one product inside a bulk hierarchy create.
type BulkProductRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=100"`
	Brand string  `json:"brand,omitempty"`
	Price float64 `json:"price"`
	Notes string  `json:"notes,omitempty"`
}

// BulkCategoryRequest is one category inside a bulk hierarchy create.
type BulkCategoryRequest struct {
	Name           string               `json:"name" binding:"required,min=1,max=100"`
	Description    string               `json:"description,omitempty"`
	TargetQuantity int                  `json:"target_quantity"`
	Products       []BulkProductRequest `json:"products,omitempty"`
}

// CreateGroupHierarchyRequest creates a group with nested categories and
// products in one call.
type CreateGroupHierarchyRequest struct {
	Name       string                `json:"name" binding:"required,min=1,max=100"`
	Icon       string                `json:"icon,omitempty"`
	Color      string                `json:"color,omitempty"`
	Categories []BulkCategoryRequest `json:"categories,omitempty"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Brand             string    `json:"brand,omitempty"`
	Price             string    `json:"price"`
	PurchasedQuantity int       `json:"purchased_quantity"`
	Notes             string    `json:"notes,omitempty"`
	IsPurchased       bool      `json:"is_purchased"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CategoryResponse represents a category with its products.
type CategoryResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	TargetQuantity int               `json:"target_quantity"`
	IsCompleted    bool              `json:"is_completed"`
	Products       []ProductResponse `json:"products"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// GroupResponse represents a group with its categories.
type GroupResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Icon       string             `json:"icon"`
	Color      string             `json:"color"`
	Categories []CategoryResponse `json:"categories"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// TreeResponse represents the owner's full checklist tree.
type TreeResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// CategoryProgressResponse carries per-category progress figures.
type CategoryProgressResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Purchased  int    `json:"purchased"`
	Target     int    `json:"target"`
	Percent    int    `json:"percent"`
}

// GroupProgressResponse carries per-group progress and spend figures.
type GroupProgressResponse struct {
	GroupID    string                     `json:"group_id"`
	Name       string                     `json:"name"`
	Purchased  int                        `json:"purchased"`
	Target     int                        `json:"target"`
	Percent    int                        `json:"percent"`
	Spent      string                     `json:"spent"`
	Categories []CategoryProgressResponse `json:"categories"`
}

// ProgressResponse represents the aggregated progress of the whole tree.
type ProgressResponse struct {
	OverallPercent int                     `json:"overall_percent"`
	TotalSpent     string                  `json:"total_spent"`
	Groups         []GroupProgressResponse `json:"groups"`
}

// ToProductResponse converts a domain Product entity to its DTO.
func ToProductResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                product.ID.String(),
		Name:              product.Name,
		Brand:             product.Brand,
		Price:             product.Price.String(),
		PurchasedQuantity: product.PurchasedQuantity,
		Notes:             product.Notes,
		IsPurchased:       product.IsPurchased,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

// ToCategoryResponse converts a domain Category entity to its DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	products := make([]ProductResponse, 0, len(category.Products))
	for _, product := range category.Products {
		products = append(products, ToProductResponse(product))
	}
	return CategoryResponse{
		ID:             category.ID.String(),
		Name:           category.Name,
		Description:    category.Description,
		TargetQuantity: category.TargetQuantity,
		IsCompleted:    category.IsCompleted,
		Products:       products,
		CreatedAt:      category.CreatedAt,
		UpdatedAt:      category.UpdatedAt,
	}
}

// ToGroupResponse converts a domain Group entity to its DTO.
func ToGroupResponse(group *entity.Group) GroupResponse {
	categories := make([]CategoryResponse, 0, len(group.Categories))
	for _, category := range group.Categories {
		categories = append(categories, ToCategoryResponse(category))
	}
	return GroupResponse{
		ID:         group.ID.String(),
		Name:       group.Name,
		Icon:       group.Icon,
		Color:      group.Color,
		Categories: categories,
		CreatedAt:  group.CreatedAt,
		UpdatedAt:  group.UpdatedAt,
	}
}

// ToTreeResponse converts a tree snapshot to its DTO.
func ToTreeResponse(groups []*entity.Group) TreeResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, ToGroupResponse(group))
	}
	return TreeResponse{Groups: out}
}

// ToProgressResponse converts a progress summary to its DTO.
func ToProgressResponse(output *checklist.GetProgressOutput) ProgressResponse {
	groups := make([]GroupProgressResponse, 0, len(output.Groups))
	for _, group := range output.Groups {
		categories := make([]CategoryProgressResponse, 0, len(group.Categories))
		for _, category := range group.Categories {
			categories = append(categories, CategoryProgressResponse{
				CategoryID: category.CategoryID,
				Name:       category.Name,
				Purchased:  category.Purchased,
				Target:     category.Target,
				Percent:    category.Percent,
			})
		}
		groups = append(groups, GroupProgressResponse{
			GroupID:    group.GroupID,
			Name:       group.Name,
			Purchased:  group.Purchased,
			Target:     group.Target,
			Percent:    group.Percent,
			Spent:      group.Spent.String(),
			Categories: categories,
		})
	}
	return ProgressResponse{
		OverallPercent: output.OverallPercent,
		TotalSpent:     output.TotalSpent.String(),
		Groups:         groups,
	}
}

// PriceFromFloat converts a request price to the decimal the domain uses.
func PriceFromFloat(price float64) decimal.Decimal {
	return decimal.NewFromFloat(price)
}
