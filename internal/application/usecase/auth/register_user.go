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

// MinUsernameLength is the minimum allowed username length.
const MinUsernameLength = 3

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Password string
	// Title and Role are optional and only honored for admin-created
	// accounts; self-registration always gets the defaults.
	Title string
	Role  entity.Role
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	friendCodes     adapter.FriendCodeService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	friendCodes adapter.FriendCodeService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		friendCodes:     friendCodes,
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := NormalizeUsername(input.Username)
	if len(username) < MinUsernameLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameTooShort,
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength),
			domainerror.ErrUsernameTooShort,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			err.Error(),
			domainerror.ErrWeakPassword,
		)
	}

	// Read-before-write availability check; the storage layer carries no
	// uniqueness constraint for the document backend, so a narrow race
	// window remains here.
	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
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

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = entity.RoleUser
		if username == "admin" {
			role = entity.RoleAdmin
		}
	}

	user := entity.NewUser(username, passwordHash, uc.friendCodes.Generate(), role)
	if input.Title != "" {
		user.Title = input.Title
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// NormalizeUsername lowercases and trims an owner identifier. Every lookup and
// write path goes through this, which is what makes username matching
// case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
