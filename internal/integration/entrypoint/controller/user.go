// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dowry-planner/backend/internal/application/usecase/auth"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/dto"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/middleware"
)

// UserController handles profile, sharing and admin endpoints.
type UserController struct {
	getUserUseCase       *auth.GetUserUseCase
	updateUserUseCase    *auth.UpdateUserUseCase
	renameUserUseCase    *auth.RenameUserUseCase
	deleteAccountUseCase *auth.DeleteAccountUseCase
	resolveCodeUseCase   *auth.ResolveFriendCodeUseCase
	listUsersUseCase     *auth.ListUsersUseCase
	registerUseCase      *auth.RegisterUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getUserUseCase *auth.GetUserUseCase,
	updateUserUseCase *auth.UpdateUserUseCase,
	renameUserUseCase *auth.RenameUserUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
	resolveCodeUseCase *auth.ResolveFriendCodeUseCase,
	listUsersUseCase *auth.ListUsersUseCase,
	registerUseCase *auth.RegisterUserUseCase,
) *UserController {
	return &UserController{
		getUserUseCase:       getUserUseCase,
		updateUserUseCase:    updateUserUseCase,
		renameUserUseCase:    renameUserUseCase,
		deleteAccountUseCase: deleteAccountUseCase,
		resolveCodeUseCase:   resolveCodeUseCase,
		listUsersUseCase:     listUsersUseCase,
		registerUseCase:      registerUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	username, _ := middleware.GetUsernameFromContext(ctx)

	output, err := c.getUserUseCase.Execute(ctx.Request.Context(), auth.GetUserInput{
		Username: username,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdateProfile handles PATCH /users/me requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	username, _ := middleware.GetUsernameFromContext(ctx)

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.updateUserUseCase.Execute(ctx.Request.Context(), auth.UpdateUserInput{
		Username:    username,
		Title:       req.Title,
		Password:    req.Password,
		WeddingDate: req.WeddingDate,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Rename handles POST /users/me/rename requests.
func (c *UserController) Rename(ctx *gin.Context) {
	username, _ := middleware.GetUsernameFromContext(ctx)

	var req dto.RenameUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.renameUserUseCase.Execute(ctx.Request.Context(), auth.RenameUserInput{
		CurrentUsername: username,
		NewUsername:     req.NewUsername,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Renamed to " + output.Username + "; sign in again with the new username",
	})
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	username, _ := middleware.GetUsernameFromContext(ctx)

	if _, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		Username: username,
	}); err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Account deleted",
	})
}

// ResolveFriendCode handles GET /share/:code requests.
func (c *UserController) ResolveFriendCode(ctx *gin.Context) {
	output, err := c.resolveCodeUseCase.Execute(ctx.Request.Context(), auth.ResolveFriendCodeInput{
		Code: ctx.Param("code"),
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FriendCodeResponse{
		Username: output.Username,
		Title:    output.Title,
	})
}

// ListUsers handles GET /admin/users requests.
func (c *UserController) ListUsers(ctx *gin.Context) {
	output, err := c.listUsersUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	users := make([]dto.UserResponse, 0, len(output.Users))
	for _, user := range output.Users {
		users = append(users, dto.ToUserResponse(user))
	}
	ctx.JSON(http.StatusOK, dto.UserListResponse{Users: users})
}

// CreateUser handles POST /admin/users requests.
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Role != nil {
		input.Role = entity.Role(*req.Role)
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(output.User))
}

// UpdateUser handles PATCH /admin/users/:username requests. Unlike the
// self-service profile update it may also change the role.
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.UpdateUserInput{
		Username:    ctx.Param("username"),
		Title:       req.Title,
		Password:    req.Password,
		WeddingDate: req.WeddingDate,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		input.Role = &role
	}

	output, err := c.updateUserUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// DeleteUser handles DELETE /admin/users/:username requests.
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if _, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		Username: ctx.Param("username"),
	}); err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Account deleted",
	})
}
