// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// GroupUpdates carries a partial-field update for a group. Nil fields are left
// unchanged.
type GroupUpdates struct {
	Name  *string
	Icon  *string
	Color *string
}

// CategoryUpdates carries a partial-field update for a category.
type CategoryUpdates struct {
	Name           *string
	Description    *string
	TargetQuantity *int
	IsCompleted    *bool
}

// ProductUpdates carries a partial-field update for a product.
type ProductUpdates struct {
	Name              *string
	Brand             *string
	Price             *decimal.Decimal
	PurchasedQuantity *int
	Notes             *string
	IsPurchased       *bool
}

// ChecklistRepository is the shared fetch/mutate contract both persistence
// backends implement. The owner is always the username; entity ids locate
// records inside the owner's tree. The two implementations differ in
// atomicity and cascade guarantees (see the concrete types); callers must not
// branch on backend identity; optional capabilities are separate interfaces
// (TreeSubscriber, TreeMigrator) the caller probes for.
type ChecklistRepository interface {
	// FetchTree reconstructs the owner's full Group->Category->Product tree,
	// every level ordered by creation time ascending. An unknown owner yields
	// an empty slice, not an error.
	FetchTree(ctx context.Context, owner string) ([]*entity.Group, error)

	// CreateGroup inserts a single empty group.
	CreateGroup(ctx context.Context, owner string, group *entity.Group) error

	// CreateGroupWithHierarchy inserts a group plus all nested categories and
	// products atomically: either the entire subtree becomes visible or none
	// of it does. Product purchased quantities are forced to zero and
	// IsPurchased to false, matching bulk-import semantics.
	CreateGroupWithHierarchy(ctx context.Context, owner string, group *entity.Group) error

	// UpdateGroup applies a partial-field update. Returns ErrGroupNotFound
	// when the id does not resolve.
	UpdateGroup(ctx context.Context, owner string, groupID uuid.UUID, updates GroupUpdates) error

	// DeleteGroup removes a group and cascades to all categories and products.
	// Returns ErrGroupNotFound when the id does not resolve (second delete of
	// the same id is therefore a reported no-op, never a crash).
	DeleteGroup(ctx context.Context, owner string, groupID uuid.UUID) error

	// AddCategory inserts a category under a group.
	AddCategory(ctx context.Context, owner string, groupID uuid.UUID, category *entity.Category) error

	// FindCategory retrieves one category with its products loaded. Returns
	// nil, nil when the id does not resolve.
	FindCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) (*entity.Category, error)

	// UpdateCategory applies a partial-field update.
	UpdateCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID, updates CategoryUpdates) error

	// DeleteCategory removes a category and cascades to its products.
	DeleteCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) error

	// AddProduct inserts a product under a category.
	AddProduct(ctx context.Context, owner string, groupID, categoryID uuid.UUID, product *entity.Product) error

	// UpdateProduct applies a partial-field update.
	UpdateProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID, updates ProductUpdates) error

	// DeleteProduct removes a single product.
	DeleteProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID) error

	// DeleteTree removes the owner's entire tree. Used when the owner record
	// is deleted.
	DeleteTree(ctx context.Context, owner string) error
}

// TreeSubscription is a handle to an active tree watch. Unsubscribe is
// idempotent and safe after the owner was deleted.
type TreeSubscription interface {
	Unsubscribe()
}

// TreeSubscriber is the optional change-notification capability. Only the
// document-store backend implements it; callers probe with a type assertion.
type TreeSubscriber interface {
	// SubscribeTree watches the owner's tree and invokes onUpdate with a full
	// re-read whenever anything in it changes. An initial snapshot is
	// delivered shortly after subscribing. Updates are coalesced per burst;
	// only eventual delivery of the latest state is guaranteed, not ordering.
	SubscribeTree(ctx context.Context, owner string, onUpdate func([]*entity.Group)) (TreeSubscription, error)
}

// TreeMigrator is the optional owner-rename capability for backends that key
// tree data by username. Implementations copy the whole tree verbatim under
// the new owner before deleting the old copy; on partial failure they stop,
// leave both copies as they are and return ErrMigrationIncomplete.
type TreeMigrator interface {
	MigrateTree(ctx context.Context, oldOwner, newOwner string) error
}
