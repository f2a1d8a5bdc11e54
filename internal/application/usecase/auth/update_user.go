// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// UpdateUserInput represents a partial-field update of a user record. Nil
// fields are left untouched.
type UpdateUserInput struct {
	Username    string
	Title       *string
	Password    *string
	Role        *entity.Role
	FriendCode  *string
	WeddingDate *time.Time
}

// UpdateUserOutput represents the output of a user update.
type UpdateUserOutput struct {
	User *entity.User
}

// UpdateUserUseCase applies settings changes to a user record. Role changes
// are restricted to admins at the entrypoint layer.
type UpdateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase instance.
func NewUpdateUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the user update.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error) {
	username := NormalizeUsername(input.Username)

	user, err := uc.userRepo.FindByUsername(ctx, username)
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

	updates := adapter.UserUpdates{
		Title:       input.Title,
		Role:        input.Role,
		FriendCode:  input.FriendCode,
		WeddingDate: input.WeddingDate,
	}

	if input.Password != nil {
		if err := uc.passwordService.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeWeakPassword,
				err.Error(),
				domainerror.ErrWeakPassword,
			)
		}
		hash, err := uc.passwordService.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates.PasswordHash = &hash
	}

	if err := uc.userRepo.Update(ctx, username, updates); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	return &UpdateUserOutput{User: updated}, nil
}
