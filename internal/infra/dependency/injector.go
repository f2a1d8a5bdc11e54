// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dowry-planner/backend/config"
	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/application/usecase/auth"
	"github.com/dowry-planner/backend/internal/application/usecase/checklist"
	"github.com/dowry-planner/backend/internal/infra/db"
	"github.com/dowry-planner/backend/internal/infra/server/router"
	"github.com/dowry-planner/backend/internal/integration/adapters"
	"github.com/dowry-planner/backend/internal/integration/docstore"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/controller"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/middleware"
	"github.com/dowry-planner/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The gorm handle may be nil when the Redis backend serves checklist data;
// the Redis client is always required because token invalidation lives there.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) *Injector {
	// Select repositories per configured backend
	var userRepo adapter.UserRepository
	var checklistRepo adapter.ChecklistRepository
	if cfg.Checklist.Backend == config.BackendPostgres {
		userRepo = persistence.NewUserRepository(gormDB)
		checklistRepo = persistence.NewChecklistRepository(gormDB)
	} else {
		userRepo = docstore.NewUserStore(redisClient)
		checklistRepo = docstore.NewChecklistStore(redisClient)
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, redisClient)
	friendCodeService := adapters.NewFriendCodeService()

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, friendCodeService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getUserUseCase := auth.NewGetUserUseCase(userRepo)
	updateUserUseCase := auth.NewUpdateUserUseCase(userRepo, passwordService)
	renameUserUseCase := auth.NewRenameUserUseCase(userRepo, checklistRepo)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, checklistRepo)
	resolveCodeUseCase := auth.NewResolveFriendCodeUseCase(userRepo)
	listUsersUseCase := auth.NewListUsersUseCase(userRepo)

	// Create checklist use cases
	fetchTreeUseCase := checklist.NewFetchTreeUseCase(checklistRepo)
	getProgressUseCase := checklist.NewGetProgressUseCase(checklistRepo)
	createGroupUseCase := checklist.NewCreateGroupUseCase(checklistRepo)
	createHierarchyUseCase := checklist.NewCreateGroupWithHierarchyUseCase(checklistRepo)
	importTemplateUseCase := checklist.NewImportTemplateUseCase(checklistRepo)
	updateGroupUseCase := checklist.NewUpdateGroupUseCase(checklistRepo)
	deleteGroupUseCase := checklist.NewDeleteGroupUseCase(checklistRepo)
	addCategoryUseCase := checklist.NewAddCategoryUseCase(checklistRepo)
	updateCategoryUseCase := checklist.NewUpdateCategoryUseCase(checklistRepo)
	deleteCategoryUseCase := checklist.NewDeleteCategoryUseCase(checklistRepo)
	addProductUseCase := checklist.NewAddProductUseCase(checklistRepo)
	updateProductUseCase := checklist.NewUpdateProductUseCase(checklistRepo)
	deleteProductUseCase := checklist.NewDeleteProductUseCase(checklistRepo)
	subscribeTreeUseCase := checklist.NewSubscribeTreeUseCase(checklistRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			if gormDB == nil {
				return false
			}
			sqlDB, err := gormDB.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			return db.RedisHealthCheck(redisClient)
		},
	)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getUserUseCase,
		updateUserUseCase,
		renameUserUseCase,
		deleteAccountUseCase,
		resolveCodeUseCase,
		listUsersUseCase,
		registerUseCase,
	)

	checklistController := controller.NewChecklistController(
		fetchTreeUseCase,
		getProgressUseCase,
		createGroupUseCase,
		createHierarchyUseCase,
		importTemplateUseCase,
		updateGroupUseCase,
		deleteGroupUseCase,
		addCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		addProductUseCase,
		updateProductUseCase,
		deleteProductUseCase,
	)

	syncController := controller.NewSyncController(subscribeTreeUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		checklistController,
		syncController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     gormDB,
		Redis:  redisClient,
		Router: r,
	}
}
