// Package docstore implements the repository interfaces on Redis, storing the
// checklist tree as JSON documents inside per-collection hashes. Keys are
// scoped by owner username, mirroring the path layout of the REST surface:
//
//	checklist:{owner}:groups                                    -> group docs
//	checklist:{owner}:groups:{gid}:categories                   -> category docs
//	checklist:{owner}:groups:{gid}:categories:{cid}:products    -> product docs
//	checklist:{owner}:events                                    -> change channel
package docstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// deleteChunkSize bounds how many keys one pipelined delete round removes.
const deleteChunkSize = 500

func nowUTC() time.Time {
	return time.Now().UTC()
}

func groupsKey(owner string) string {
	return "checklist:" + owner + ":groups"
}

func categoriesKey(owner string, groupID uuid.UUID) string {
	return groupsKey(owner) + ":" + groupID.String() + ":categories"
}

func productsKey(owner string, groupID, categoryID uuid.UUID) string {
	return categoriesKey(owner, groupID) + ":" + categoryID.String() + ":products"
}

func eventsChannel(owner string) string {
	return "checklist:" + owner + ":events"
}

func usersKey() string {
	return "users"
}

func friendCodesKey() string {
	return "friendcodes"
}

// groupDoc is the stored form of a group.
type groupDoc struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func groupDocFromEntity(group *entity.Group) groupDoc {
	return groupDoc{
		ID:        group.ID,
		Name:      group.Name,
		Icon:      group.Icon,
		Color:     group.Color,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}
}

func (d groupDoc) toEntity() *entity.Group {
	return &entity.Group{
		ID:         d.ID,
		Name:       d.Name,
		Icon:       d.Icon,
		Color:      d.Color,
		Categories: []*entity.Category{},
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// categoryDoc is the stored form of a category.
type categoryDoc struct {
	ID             uuid.UUID `json:"id"`
	GroupID        uuid.UUID `json:"groupId"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	TargetQuantity int       `json:"targetQuantity"`
	IsCompleted    bool      `json:"isCompleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func categoryDocFromEntity(category *entity.Category) categoryDoc {
	return categoryDoc{
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

func (d categoryDoc) toEntity() *entity.Category {
	return &entity.Category{
		ID:             d.ID,
		GroupID:        d.GroupID,
		Name:           d.Name,
		Description:    d.Description,
		TargetQuantity: d.TargetQuantity,
		IsCompleted:    d.IsCompleted,
		Products:       []*entity.Product{},
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// productDoc is the stored form of a product.
type productDoc struct {
	ID                uuid.UUID       `json:"id"`
	CategoryID        uuid.UUID       `json:"categoryId"`
	Name              string          `json:"name"`
	Brand             string          `json:"brand,omitempty"`
	Price             decimal.Decimal `json:"price"`
	PurchasedQuantity int             `json:"purchasedQuantity"`
	Notes             string          `json:"notes,omitempty"`
	IsPurchased       bool            `json:"isPurchased"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func productDocFromEntity(product *entity.Product) productDoc {
	return productDoc{
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

func (d productDoc) toEntity() *entity.Product {
	return &entity.Product{
		ID:                d.ID,
		CategoryID:        d.CategoryID,
		Name:              d.Name,
		Brand:             d.Brand,
		Price:             d.Price,
		PurchasedQuantity: d.PurchasedQuantity,
		Notes:             d.Notes,
		IsPurchased:       d.IsPurchased,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// userDoc is the stored form of a user record.
type userDoc struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"passwordHash"`
	Title        string     `json:"title"`
	FriendCode   string     `json:"friendCode"`
	WeddingDate  *time.Time `json:"weddingDate,omitempty"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func userDocFromEntity(user *entity.User) userDoc {
	return userDoc{
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

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Title:        d.Title,
		FriendCode:   d.FriendCode,
		WeddingDate:  d.WeddingDate,
		Role:         entity.Role(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
