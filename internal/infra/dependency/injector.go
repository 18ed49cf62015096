// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budgetloom/backend/config"
	"github.com/budgetloom/backend/internal/application/usecase/auth"
	"github.com/budgetloom/backend/internal/application/usecase/category"
	"github.com/budgetloom/backend/internal/application/usecase/member"
	"github.com/budgetloom/backend/internal/application/usecase/rule"
	"github.com/budgetloom/backend/internal/application/usecase/transaction"
	"github.com/budgetloom/backend/internal/infra/server/router"
	"github.com/budgetloom/backend/internal/integration/adapters"
	"github.com/budgetloom/backend/internal/integration/entrypoint/controller"
	"github.com/budgetloom/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetloom/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker, redisHealthChecker func() bool) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	memberRepo := persistence.NewMemberRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	ruleRepo := persistence.NewRuleRepository(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)
	runLock := adapters.NewRedisRunLock(redisClient, cfg.Engine.RunLockTTL)
	eventPublisher := adapters.NewRedisEventPublisher(redisClient)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Member use cases
	listMembersUseCase := member.NewListMembersUseCase(memberRepo)
	createMemberUseCase := member.NewCreateMemberUseCase(memberRepo)
	deleteMemberUseCase := member.NewDeleteMemberUseCase(memberRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, memberRepo, eventPublisher)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, memberRepo, eventPublisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, eventPublisher)

	// Rule use cases
	listRulesUseCase := rule.NewListRulesUseCase(ruleRepo)
	createRuleUseCase := rule.NewCreateRuleUseCase(ruleRepo, categoryRepo, memberRepo, eventPublisher, cfg.Engine.PriorityMargin)
	updateRuleUseCase := rule.NewUpdateRuleUseCase(ruleRepo, categoryRepo, memberRepo, eventPublisher)
	deleteRuleUseCase := rule.NewDeleteRuleUseCase(ruleRepo, eventPublisher)
	bulkDeleteRulesUseCase := rule.NewBulkDeleteRulesUseCase(ruleRepo, eventPublisher)
	reorderRulesUseCase := rule.NewReorderRulesUseCase(ruleRepo, eventPublisher)
	previewRuleUseCase := rule.NewPreviewRuleUseCase(transactionRepo, cfg.Engine.PreviewLimit)
	runRulesUseCase := rule.NewRunRulesUseCase(ruleRepo, transactionRepo, runLock, eventPublisher)

	// Controllers
	healthController := controller.NewHealthController(dbHealthChecker, redisHealthChecker)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	memberController := controller.NewMemberController(
		listMembersUseCase,
		createMemberUseCase,
		deleteMemberUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	ruleController := controller.NewRuleController(
		listRulesUseCase,
		createRuleUseCase,
		updateRuleUseCase,
		deleteRuleUseCase,
		bulkDeleteRulesUseCase,
		reorderRulesUseCase,
		previewRuleUseCase,
		runRulesUseCase,
	)

	// Middleware. Tests hammer the login endpoint, so the limiter gets
	// generous limits outside production.
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		memberController,
		ruleController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}
}
