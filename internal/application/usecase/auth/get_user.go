// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// GetUserInput represents the input for a profile lookup.
type GetUserInput struct {
	Username string
}

// GetUserOutput represents the output of a profile lookup.
type GetUserOutput struct {
	User *entity.User
}

// GetUserUseCase retrieves a user profile.
type GetUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(userRepo adapter.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the lookup.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	user, err := uc.userRepo.FindByUsername(ctx, NormalizeUsername(input.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	return &GetUserOutput{User: user}, nil
}
