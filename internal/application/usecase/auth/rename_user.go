// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dowry-planner/backend/internal/application/adapter"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// RenameUserInput represents the input for an owner rename.
type RenameUserInput struct {
	CurrentUsername string
	NewUsername     string
}

// RenameUserOutput represents the output of an owner rename.
type RenameUserOutput struct {
	Username string
}

// RenameUserUseCase moves an owner to a new username. For backends that key
// tree data by username this is a two-step migration: copy the whole tree
// under the new identifier, then move the user record. A failure mid-copy is
// surfaced as ErrMigrationIncomplete and nothing is rolled back: the old
// record stays intact and the new identifier may hold a partial tree.
type RenameUserUseCase struct {
	userRepo      adapter.UserRepository
	checklistRepo adapter.ChecklistRepository
}

// NewRenameUserUseCase creates a new RenameUserUseCase instance.
func NewRenameUserUseCase(userRepo adapter.UserRepository, checklistRepo adapter.ChecklistRepository) *RenameUserUseCase {
	return &RenameUserUseCase{
		userRepo:      userRepo,
		checklistRepo: checklistRepo,
	}
}

// Execute performs the rename.
func (uc *RenameUserUseCase) Execute(ctx context.Context, input RenameUserInput) (*RenameUserOutput, error) {
	oldUsername := NormalizeUsername(input.CurrentUsername)
	newUsername := NormalizeUsername(input.NewUsername)

	if len(newUsername) < MinUsernameLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameTooShort,
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength),
			domainerror.ErrUsernameTooShort,
		)
	}

	if oldUsername == newUsername {
		return &RenameUserOutput{Username: newUsername}, nil
	}

	user, err := uc.userRepo.FindByUsername(ctx, oldUsername)
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

	exists, err := uc.userRepo.ExistsByUsername(ctx, newUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"this username is already taken",
			domainerror.ErrUsernameExists,
		)
	}

	// Backends that key the tree by username must copy it before the record
	// moves. The relational backend keys by owner id and skips this step.
	if migrator, ok := uc.checklistRepo.(adapter.TreeMigrator); ok {
		if err := migrator.MigrateTree(ctx, oldUsername, newUsername); err != nil {
			if errors.Is(err, domainerror.ErrMigrationIncomplete) {
				slog.Error("rename migration left a partial tree",
					"old", oldUsername,
					"new", newUsername,
					"error", err,
				)
				return nil, domainerror.NewAuthError(
					domainerror.ErrCodeMigrationIncomplete,
					"rename failed while copying checklist data; the original account is untouched",
					err,
				)
			}
			return nil, fmt.Errorf("failed to migrate tree: %w", err)
		}
	}

	if err := uc.userRepo.Rename(ctx, oldUsername, newUsername); err != nil {
		return nil, fmt.Errorf("failed to rename user record: %w", err)
	}

	return &RenameUserOutput{Username: newUsername}, nil
}
