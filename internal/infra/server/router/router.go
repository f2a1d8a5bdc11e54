// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dowry-planner/backend/internal/integration/entrypoint/controller"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	userController      *controller.UserController
	checklistController *controller.ChecklistController
	syncController      *controller.SyncController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	checklistController *controller.ChecklistController,
	syncController *controller.SyncController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		userController:      userController,
		checklistController: checklistController,
		syncController:      syncController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// User routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PATCH("/me", r.userController.UpdateProfile)
				users.POST("/me/rename", r.userController.Rename)
				users.DELETE("/me", r.userController.DeleteAccount)
			}

			// Admin routes (require the admin role on top of authentication)
			admin := v1.Group("/admin")
			admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
			{
				admin.GET("/users", r.userController.ListUsers)
				admin.POST("/users", r.userController.CreateUser)
				admin.PATCH("/users/:username", r.userController.UpdateUser)
				admin.DELETE("/users/:username", r.userController.DeleteUser)
			}
		}

		// Checklist routes (require authentication)
		if r.checklistController != nil && r.authMiddleware != nil {
			cl := v1.Group("/checklist")
			cl.Use(r.authMiddleware.Authenticate())
			{
				cl.GET("", r.checklistController.GetTree)
				cl.GET("/progress", r.checklistController.GetProgress)
				if r.syncController != nil {
					cl.GET("/stream", r.syncController.StreamTree)
				}
				cl.POST("/template/import", r.checklistController.ImportTemplate)

				groups := cl.Group("/groups")
				{
					groups.POST("", r.checklistController.CreateGroup)
					groups.POST("/bulk", r.checklistController.CreateGroupHierarchy)
					groups.PATCH("/:groupId", r.checklistController.UpdateGroup)
					groups.DELETE("/:groupId", r.checklistController.DeleteGroup)

					groups.POST("/:groupId/categories", r.checklistController.AddCategory)
					groups.PATCH("/:groupId/categories/:categoryId", r.checklistController.UpdateCategory)
					groups.DELETE("/:groupId/categories/:categoryId", r.checklistController.DeleteCategory)

					groups.POST("/:groupId/categories/:categoryId/products", r.checklistController.AddProduct)
					groups.PATCH("/:groupId/categories/:categoryId/products/:productId", r.checklistController.UpdateProduct)
					groups.DELETE("/:groupId/categories/:categoryId/products/:productId", r.checklistController.DeleteProduct)
				}
			}
		}

		// Share routes: a friend code grants read-only access, no JWT needed
		if r.userController != nil && r.checklistController != nil && r.authMiddleware != nil {
			share := v1.Group("/share/:code")
			share.Use(r.authMiddleware.ShareAccess())
			{
				share.GET("", r.userController.ResolveFriendCode)
				share.GET("/tree", r.checklistController.GetTree)
				share.GET("/progress", r.checklistController.GetProgress)

				// Writes never reach a handler; ShareAccess aborts them
				// with a read-only error instead of a bare 404.
				for _, method := range []string{"POST", "PUT", "PATCH", "DELETE"} {
					share.Handle(method, "/*rest", func(ctx *gin.Context) {})
				}
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
