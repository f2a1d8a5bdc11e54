// Package auth contains authentication and owner-lifecycle use cases.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// ResolveFriendCodeInput represents the input for friend code resolution.
type ResolveFriendCodeInput struct {
	Code string
}

// ResolveFriendCodeOutput identifies the owner behind a friend code. The
// grant it represents is read-only; no write path accepts it.
type ResolveFriendCodeOutput struct {
	Username string
	Title    string
}

// ResolveFriendCodeUseCase maps a shared friend code to its owner.
type ResolveFriendCodeUseCase struct {
	userRepo adapter.UserRepository
}

// NewResolveFriendCodeUseCase creates a new ResolveFriendCodeUseCase instance.
func NewResolveFriendCodeUseCase(userRepo adapter.UserRepository) *ResolveFriendCodeUseCase {
	return &ResolveFriendCodeUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the friend code lookup. Codes match case-insensitively.
func (uc *ResolveFriendCodeUseCase) Execute(ctx context.Context, input ResolveFriendCodeInput) (*ResolveFriendCodeOutput, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if len(code) != entity.FriendCodeLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeFriendCodeNotFound,
			"friend code not found",
			domainerror.ErrFriendCodeNotFound,
		)
	}

	user, err := uc.userRepo.FindByFriendCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up friend code: %w", err)
	}
	if user == nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeFriendCodeNotFound,
			"friend code not found",
			domainerror.ErrFriendCodeNotFound,
		)
	}

	return &ResolveFriendCodeOutput{
		Username: user.Username,
		Title:    user.Title,
	}, nil
}
