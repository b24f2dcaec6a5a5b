package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financetracker/internal/config"
	"financetracker/internal/database"
	"financetracker/internal/handlers"
	custommw "financetracker/internal/middleware"
	"financetracker/internal/repositories"
	"financetracker/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("Starting finance tracker API",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
	)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	recurringRepo := repositories.NewRecurringTransactionRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	goalRepo := repositories.NewGoalRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	ledgerService := services.NewLedgerService(accountRepo, categoryRepo, transactionRepo, metrics, logger)
	insightService := services.NewInsightService(accountRepo, transactionRepo, logger)
	alertService := services.NewAlertService(accountRepo, transactionRepo, recurringRepo, &cfg.Alerts, metrics, logger)
	accountService := services.NewAccountService(accountRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	recurringService := services.NewRecurringTransactionService(recurringRepo, accountRepo, categoryRepo, logger)
	budgetService := services.NewBudgetService(budgetRepo, categoryRepo, transactionRepo, logger)
	goalService := services.NewGoalService(goalRepo, logger)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	recurringHandler := handlers.NewRecurringTransactionHandler(recurringService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	dashboardHandler := handlers.NewDashboardHandler(insightService)
	alertHandler := handlers.NewAlertHandler(alertService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.HTTPMetrics(metrics))
	e.Use(custommw.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORS())

	// Public endpoints
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Authenticated API
	api := e.Group("/api/v1", custommw.RequireAuth(tokenService))

	api.POST("/accounts", accountHandler.CreateAccount)
	api.GET("/accounts", accountHandler.ListAccounts)
	api.GET("/accounts/summary", dashboardHandler.GetAccountsSummary)
	api.GET("/accounts/account-mix", dashboardHandler.GetAccountMix)
	api.GET("/accounts/:accountId", accountHandler.GetAccount)
	api.PUT("/accounts/:accountId", accountHandler.UpdateAccount)
	api.DELETE("/accounts/:accountId", accountHandler.DeleteAccount)

	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/:categoryId", categoryHandler.GetCategory)
	api.DELETE("/categories/:categoryId", categoryHandler.DeleteCategory)

	api.POST("/transactions", transactionHandler.CreateTransaction)
	api.GET("/transactions", transactionHandler.ListTransactions)
	api.GET("/transactions/:transactionId", transactionHandler.GetTransaction)
	api.PUT("/transactions/:transactionId", transactionHandler.UpdateTransaction)
	api.DELETE("/transactions/:transactionId", transactionHandler.DeleteTransaction)

	api.POST("/recurring-transactions", recurringHandler.CreateRecurringTransaction)
	api.GET("/recurring-transactions", recurringHandler.ListRecurringTransactions)
	api.GET("/recurring-transactions/:recurringId", recurringHandler.GetRecurringTransaction)
	api.PUT("/recurring-transactions/:recurringId", recurringHandler.UpdateRecurringTransaction)
	api.DELETE("/recurring-transactions/:recurringId", recurringHandler.DeleteRecurringTransaction)

	api.POST("/budgets", budgetHandler.CreateBudget)
	api.GET("/budgets", budgetHandler.ListBudgets)
	api.GET("/budgets/:budgetId", budgetHandler.GetBudget)
	api.PUT("/budgets/:budgetId", budgetHandler.UpdateBudget)
	api.DELETE("/budgets/:budgetId", budgetHandler.DeleteBudget)
	api.GET("/budgets/:budgetId/utilization", budgetHandler.GetBudgetUtilization)

	api.POST("/goals", goalHandler.CreateGoal)
	api.GET("/goals", goalHandler.ListGoals)
	api.GET("/goals/:goalId", goalHandler.GetGoal)
	api.PUT("/goals/:goalId", goalHandler.UpdateGoal)
	api.DELETE("/goals/:goalId", goalHandler.DeleteGoal)

	api.GET("/dashboard/summary", dashboardHandler.GetDashboardSummary)
	api.GET("/alerts", alertHandler.GetAlerts)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
