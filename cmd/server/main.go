package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // nothing to do if flushing fails on exit
	zap.ReplaceGlobals(logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("path", cfg.Database.Path))

	// Create repositories
	var localRepo repository.TransactionRepository
	var localStore *pebble.DB
	if cfg.LocalStore.Path != "" {
		key, err := repository.ParseLocalStoreKey(cfg.LocalStore.Key)
		if err != nil {
			logger.Fatal("Failed to read local store key", zap.Error(err))
		}
		localStore, err = database.OpenLocalStore(cfg.LocalStore.Path, nil)
		if err != nil {
			logger.Fatal("Failed to open local store", zap.Error(err))
		}
		defer localStore.Close()

		localRepo = repository.NewLocalTransactionRepository(localStore, key)
		logger.Info("Opened local store",
			zap.String("path", cfg.LocalStore.Path),
			zap.Bool("encrypted", key != nil),
		)
	}

	selector := repository.NewSelector(repository.NewSQLiteTransactionRepository(db), localRepo)
	priceRepo := repository.NewPriceRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	portfolioService := service.NewPortfolioService(selector, priceRepo, logger)
	services := api.Services{
		System:      service.NewSystemService(db, localStore != nil),
		Transaction: service.NewTransactionService(selector, logger),
		Portfolio:   portfolioService,
		Price:       service.NewPriceService(priceRepo, logger),
		Snapshot:    service.NewSnapshotService(selector, snapshotRepo, portfolioService, logger),
	}

	if cfg.Snapshot.Schedule != "" {
		scheduler, err := services.Snapshot.Start(cfg.Snapshot.Schedule)
		if err != nil {
			logger.Fatal("Failed to start snapshot scheduler", zap.Error(err))
		}
		defer func() {
			<-scheduler.Stop().Done()
		}()
	}

	// Create router
	router := api.NewRouter(services, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Server.Addr), zap.String("version", version.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server exited")
}
