// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/application/usecase/auth"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UsernameKey is the context key for the authenticated user's username.
	UsernameKey ContextKey = "username"
	// ShareOwnerKey is the context key for the owner a friend code resolves to.
	ShareOwnerKey ContextKey = "share_owner"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
	userRepo     adapter.UserRepository
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService, userRepo adapter.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UsernameKey), auth.NormalizeUsername(claims.Username))

		c.Next()
	}
}

// RequireAdmin returns a handler that rejects non-admin callers. It runs
// after Authenticate and re-reads the user record so a role change takes
// effect without waiting for token expiry.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := GetUsernameFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authentication required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByUsername(c.Request.Context(), username)
		if err != nil || user == nil || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "Admin role required",
				Code:  string(domainerror.ErrCodeNotAdmin),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ShareAccess resolves the :code path parameter to the owning user and grants
// read-only access to that owner's tree. Any non-GET verb is rejected; a
// friend code never authorizes a write.
func (m *AuthMiddleware) ShareAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "Friend codes grant read-only access",
				Code:  string(domainerror.ErrCodeReadOnlyAccess),
			})
			c.Abort()
			return
		}

		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
		user, err := m.userRepo.FindByFriendCode(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "An internal error occurred",
			})
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Friend code not found",
				Code:  string(domainerror.ErrCodeFriendCodeNotFound),
			})
			c.Abort()
			return
		}

		c.Set(string(ShareOwnerKey), user.Username)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUsernameFromContext extracts the authenticated username from the Gin context.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	username, exists := c.Get(string(UsernameKey))
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok
}

// GetShareOwnerFromContext extracts the share-resolved owner from the Gin context.
func GetShareOwnerFromContext(c *gin.Context) (string, bool) {
	owner, exists := c.Get(string(ShareOwnerKey))
	if !exists {
		return "", false
	}
	name, ok := owner.(string)
	return name, ok
}
