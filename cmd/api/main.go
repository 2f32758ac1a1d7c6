package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"paisa/internal/config"
	"paisa/internal/database"
	"paisa/internal/handlers"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/pricefeed"
	"paisa/internal/scheduler"
	"paisa/internal/services"
	"paisa/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	prices := pricefeed.NewSimulator()

	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db, userService)
	ledgerService := services.NewLedgerService(db)
	sweepService := services.NewSweepService(db, userService, prices)
	portfolioService := services.NewPortfolioService(db, prices)

	userHandler := handlers.NewUserHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	sweepHandler := handlers.NewSweepHandler(sweepService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	referenceHandler := handlers.NewReferenceHandler(prices)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Reference data, no scoping required.
	v1.GET("/presets", referenceHandler.Presets)
	v1.GET("/prices", referenceHandler.Prices)

	// Machine endpoints for the statement-ingestion pipeline.
	ingest := v1.Group("/", middleware.IngestAuth(cfg.IngestSecret))
	ingest.POST("/transactions", transactionHandler.Ingest)
	ingest.POST("/users", userHandler.Create)

	// User-scoped endpoints; the gateway asserts identity via X-User-ID.
	scoped := v1.Group("/", middleware.UserScope())
	scoped.GET("/users/me", userHandler.Me)
	scoped.PUT("/users/me/settings", userHandler.UpdateSettings)
	scoped.GET("/transactions", transactionHandler.List)
	scoped.GET("/ledger/balance", ledgerHandler.Balance)
	scoped.GET("/ledger/entries", ledgerHandler.Entries)
	scoped.POST("/ledger/topups", ledgerHandler.Topup)
	scoped.GET("/sweeps/preview", sweepHandler.Preview)
	scoped.POST("/sweeps", sweepHandler.Execute)
	scoped.GET("/sweeps", sweepHandler.History)
	scoped.GET("/portfolio/holdings", portfolioHandler.Holdings)
	scoped.GET("/portfolio/returns", portfolioHandler.Returns)

	if cfg.SchedulerEnabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go scheduler.New(sweepService, cfg.SweepCheckInterval).Start(ctx)
	}

	log.Infof("Starting paisa server on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
