// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-ledger/backend/config"
	"github.com/finance-ledger/backend/internal/application/usecase/account"
	"github.com/finance-ledger/backend/internal/application/usecase/ledger"
	"github.com/finance-ledger/backend/internal/application/usecase/recurrence"
	"github.com/finance-ledger/backend/internal/infra/server/router"
	"github.com/finance-ledger/backend/internal/integration/adapters"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-ledger/backend/internal/integration/persistence"
	"github.com/finance-ledger/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// Worker is nil when no Redis client is provided.
	Worker *scheduler.Worker

	// CatchUpUseCase is exposed so the catch-up pass can be driven directly,
	// without the worker loop.
	CatchUpUseCase *recurrence.CatchUpUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case the scheduler worker is not built.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	recurringRepo := persistence.NewRecurringTransactionRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	clock := adapters.NewSystemClock()

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

	// Create ledger use cases
	postTransactionUseCase := ledger.NewPostTransactionUseCase(transactionRepo)
	updateTransactionUseCase := ledger.NewUpdateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := ledger.NewDeleteTransactionUseCase(transactionRepo)
	bulkPostUseCase := ledger.NewBulkPostUseCase(transactionRepo)

	// Create recurrence use cases
	createRecurringUseCase := recurrence.NewCreateRecurringUseCase(recurringRepo, clock)
	updateRecurringUseCase := recurrence.NewUpdateRecurringUseCase(recurringRepo, clock)
	deleteRecurringUseCase := recurrence.NewDeleteRecurringUseCase(recurringRepo)
	listRecurringUseCase := recurrence.NewListRecurringUseCase(recurringRepo)
	catchUpUseCase := recurrence.NewCatchUpUseCase(recurringRepo, clock)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	accountController := controller.NewAccountController(
		createAccountUseCase,
		getAccountUseCase,
		listAccountsUseCase,
		deleteAccountUseCase,
	)

	transactionController := controller.NewTransactionController(
		postTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		bulkPostUseCase,
	)

	recurringController := controller.NewRecurringTransactionController(
		createRecurringUseCase,
		updateRecurringUseCase,
		deleteRecurringUseCase,
		listRecurringUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	bulkRateLimiter := middleware.NewRateLimiter()

	// Create router
	appRouter := router.NewRouter(
		healthController,
		accountController,
		transactionController,
		recurringController,
		bulkRateLimiter,
		authMiddleware,
	)

	// Create scheduler worker
	var worker *scheduler.Worker
	if redisClient != nil {
		lock := scheduler.NewRedisLock(redisClient)
		worker = scheduler.NewWorker(catchUpUseCase, lock, scheduler.WorkerConfig{
			PollInterval: cfg.Scheduler.PollInterval,
			LockTTL:      cfg.Scheduler.LockTTL,
		})
	}

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         appRouter,
		Worker:         worker,
		CatchUpUseCase: catchUpUseCase,
	}
}
