package routes

import (
	"sncs-coopledger/internal/adapters/http/handlers"
	"sncs-coopledger/internal/adapters/http/middleware"
	"sncs-coopledger/internal/adapters/persistence/repositories"
	"sncs-coopledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	accountRepo := repositories.NewGormAccountRepository(db)
	transactionRepo := repositories.NewGormTransactionRepository(db)
	societyRepo := repositories.NewGormSocietyRepository(db)
	memberRepo := repositories.NewGormMemberRepository(db)
	rateRepo := repositories.NewGormProductRateRepository(db)

	// Initialize services
	reconciler := services.NewPaymentReconciler()
	ledgerService := services.NewLedgerService(accountRepo, transactionRepo, reconciler)
	accountService := services.NewAccountService(accountRepo, memberRepo, rateRepo, reconciler)
	societyService := services.NewSocietyService(societyRepo, memberRepo, reconciler)
	collectionService := services.NewCollectionService(transactionRepo, societyRepo, memberRepo)
	simulationService := services.NewSimulationService(rateRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	accountHandler := handlers.NewAccountHandler(accountService, ledgerService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	societyHandler := handlers.NewSocietyHandler(societyService)
	reportHandler := handlers.NewReportHandler(collectionService)
	simulationHandler := handlers.NewSimulationHandler(simulationService)
	masterHandler := handlers.NewMasterHandler(rateRepo)
	memberHandler := handlers.NewMemberHandler(memberRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Members
	members := apiV1.Group("/members")
	members.Post("/", memberHandler.Create)
	members.Get("/:id", memberHandler.Get)
	members.Get("/:id/accounts", accountHandler.ListByMember)
	members.Get("/:id/passbook", middleware.NoCacheHeaders(), reportHandler.Passbook)
	members.Get("/:id/passbook/backlog", middleware.NoCacheHeaders(), reportHandler.Backlog)
	members.Post("/:id/passbook/printed", reportHandler.MarkPrinted)

	// Accounts & transactions
	accounts := apiV1.Group("/accounts")
	accounts.Post("/", middleware.WriteRateLimiter(), accountHandler.Open)
	accounts.Get("/by-number/:number", accountHandler.GetByNumber)
	accounts.Get("/:id", accountHandler.Get)
	accounts.Get("/:id/balance", middleware.NoCacheHeaders(), accountHandler.Balance)
	accounts.Get("/:id/minimum-balance", middleware.NoCacheHeaders(), accountHandler.MinimumBalance)
	accounts.Patch("/:id/status", accountHandler.UpdateStatus)
	accounts.Patch("/:id/rate", accountHandler.UpdateRate)
	accounts.Post("/:id/transactions", middleware.WriteRateLimiter(), transactionHandler.Append)
	accounts.Get("/:id/transactions", transactionHandler.List)

	// Society ledger
	society := apiV1.Group("/society")
	society.Post("/entries", middleware.WriteRateLimiter(), societyHandler.Append)
	society.Get("/entries", societyHandler.List)

	// Reports
	reports := apiV1.Group("/reports")
	reports.Get("/collections/daywise", middleware.NoCacheHeaders(), reportHandler.Daywise)

	// Simulations
	apiV1.Post("/simulations", simulationHandler.Simulate)

	// Master data
	master := apiV1.Group("/master")
	master.Get("/product-rates", middleware.MasterDataCache(), masterHandler.ListProductRates)
}
