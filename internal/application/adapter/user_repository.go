// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/domain/entity"
)

// UserUpdates carries a partial-field update for a user record. Nil fields are
// left unchanged (coalesce-on-null semantics).
type UserUpdates struct {
	Title        *string
	PasswordHash *string
	Role         *entity.Role
	FriendCode   *string
	WeddingDate  *time.Time
}

// UserRepository defines the interface for user persistence operations.
// Usernames are matched case-insensitively everywhere.
type UserRepository interface {
	// Create creates a new user record.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by username. Returns nil, nil when no
	// user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByFriendCode retrieves a user by friend code (case-insensitive).
	// Returns nil, nil when no user holds the code.
	FindByFriendCode(ctx context.Context, code string) (*entity.User, error)

	// FindAll retrieves every user, ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Update applies a partial-field update to the user with the given username.
	Update(ctx context.Context, username string, updates UserUpdates) error

	// Rename moves the user record from oldUsername to newUsername. The tree
	// migration itself is the checklist repository's concern.
	Rename(ctx context.Context, oldUsername, newUsername string) error

	// Delete removes a user record. The owned tree must not survive the owner.
	Delete(ctx context.Context, username string) error

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// FriendCodeService generates share codes for read-only tree access.
type FriendCodeService interface {
	// Generate returns a new friend code.
	Generate() string
}
