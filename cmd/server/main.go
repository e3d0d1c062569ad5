package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/papilo-topato/AccountsManagerApplication/internal/api"
	"github.com/papilo-topato/AccountsManagerApplication/internal/config"
	"github.com/papilo-topato/AccountsManagerApplication/internal/repository"
	"github.com/papilo-topato/AccountsManagerApplication/internal/service"
	"github.com/papilo-topato/AccountsManagerApplication/internal/utils"
	"github.com/papilo-topato/AccountsManagerApplication/internal/watch"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config.yaml if present)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up persistent logging
	logger, err := utils.NewFileLogger(cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// run owns the remaining lifecycle; returning instead of exiting in
	// place lets its deferred database close fire on every path, a
	// recovered panic included.
	err = run(cfg, logger)
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *utils.Logger) (err error) {
	// A fault that escapes every handler still reaches the persistent log
	// before the process dies.
	defer func() {
		if r := recover(); r != nil {
			logger.Panic(r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	// Set up database connection; the composition root owns the single
	// handle for the whole process.
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Error("Failed to set up database: %v", err)
		return err
	}
	defer db.Close()

	// Create the change-notification broker and repository
	broker := watch.NewBroker()
	repo := repository.NewSQLiteRepository(db, broker)

	// Create service
	svc := service.NewDefaultService(repo, broker, logger, cfg.Trash.RetentionDays)

	// Purge expired trash records on startup; cleanup is on-demand only.
	if _, err := svc.CleanupOldDeletedProjects(context.Background()); err != nil {
		logger.Error("Startup trash cleanup failed: %v", err)
	}

	// Create API handler
	handler := api.NewHandler(svc, logger)

	// Set up Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		api.RequestIDMiddleware(),
		api.LoggerMiddleware(logger),
		api.RecoveryMiddleware(logger),
	)

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM so the database closes properly.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("Server failed: %v", err)
		return err
	case <-quit:
	}

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error: %v", err)
	}
	return nil
}
