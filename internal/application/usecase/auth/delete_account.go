// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/dowry-planner/backend/internal/application/adapter"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	Username string
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase removes an owner and their entire checklist tree.
type DeleteAccountUseCase struct {
	userRepo      adapter.UserRepository
	checklistRepo adapter.ChecklistRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(userRepo adapter.UserRepository, checklistRepo adapter.ChecklistRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:      userRepo,
		checklistRepo: checklistRepo,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
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

	// The tree goes first. The relational backend would cascade it from the
	// user row anyway; the document backend needs the explicit walk.
	if err := uc.checklistRepo.DeleteTree(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to delete checklist tree: %w", err)
	}

	if err := uc.userRepo.Delete(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to delete user record: %w", err)
	}

	return &DeleteAccountOutput{Success: true}, nil
}
