// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
)

// ListUsersOutput represents the output of an admin user listing.
type ListUsersOutput struct {
	Users []*entity.User
}

// ListUsersUseCase lists every registered user. Admin only; the entrypoint
// layer enforces the role.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the listing.
func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersOutput, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersOutput{Users: users}, nil
}
