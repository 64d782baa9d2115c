package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/bitcorn/backend/internal/application/ledger"
	"github.com/bitcorn/backend/internal/infrastructure/config"
	"github.com/bitcorn/backend/internal/infrastructure/logger"
	"github.com/bitcorn/backend/internal/infrastructure/persistence"
	"github.com/bitcorn/backend/internal/infrastructure/scheduler"
	"github.com/bitcorn/backend/internal/interfaces/http/handler"
	"github.com/bitcorn/backend/internal/interfaces/http/middleware"
	"github.com/bitcorn/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Bitcorn Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories and the transactional unit of work
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Initialize application services
	transferEngine := ledgerapp.NewTransferEngine(uow, log)
	addressQueries := ledgerapp.NewAddressQueryService(addressRepo, transferRepo)
	onboarding := ledgerapp.NewAddressOnboardingService(
		addressRepo, transferRepo, transferEngine, cfg.Ledger.SeedAddress, log)
	directTransfers := ledgerapp.NewDirectTransferService(addressRepo, transferEngine)
	stakeRewards := ledgerapp.NewStakeRewardService(
		addressRepo, transferEngine, cfg.Ledger.SeedAddress, log)

	// Initialize stake reward scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		hour, minute, err := scheduler.ParseCronSchedule(cfg.Scheduler.DailyCronSchedule)
		if err != nil {
			log.Fatal("Invalid scheduler cron schedule", zap.Error(err))
		}
		schedConfig := scheduler.StakeRewardSchedulerConfig{
			Enabled:    cfg.Scheduler.Enabled,
			CronHour:   hour,
			CronMinute: minute,
			JobTimeout: cfg.Scheduler.JobTimeout,
		}
		rewardScheduler := scheduler.NewStakeRewardScheduler(schedConfig, stakeRewards, log)
		if err := rewardScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start stake reward scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := rewardScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping stake reward scheduler", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	addressHandler := handler.NewAddressHandler(addressQueries, onboarding, log)
	transactionHandler := handler.NewTransactionHandler(directTransfers, log)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Register routes
	r := router.NewRouter(engine)
	r.Register(addressHandler).
		Register(transactionHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
