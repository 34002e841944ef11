package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/payflow-importer/internal/admin"
	"github.com/payflow-importer/internal/admin/service"
	"github.com/payflow-importer/internal/config"
	"github.com/payflow-importer/internal/data/mongo"
	"github.com/payflow-importer/internal/data/postgres"
	"github.com/payflow-importer/internal/importer"
	"github.com/payflow-importer/internal/logger"
	"github.com/payflow-importer/internal/odoo"
	"github.com/payflow-importer/internal/platform/persistence"
	"github.com/payflow-importer/internal/secrets"
	"github.com/payflow-importer/internal/silae"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("admin_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	tenantStore := postgres.NewTenantRepository(log, postgresDB)
	runLogSink := mongo.NewRunLogRepository(log, mongoDB.Database())

	// Initialize external clients
	silaeClient := silae.NewClient(log, cfg.Silae)
	odooDialer := odoo.NewDialer(log, cfg.Odoo)
	orchestrator := importer.NewOrchestrator(log, importer.NewOdooConnector(odooDialer))

	// Initialize services
	tenantService := service.NewTenantService(log, tenantStore)
	journalService := service.NewJournalService(log, tenantStore, &service.DialerBrowser{Dialer: odooDialer}, cfg.Admin.JournalCacheTTL)
	runService := service.NewRunService(log, runLogSink, cfg.Admin.RunHistoryLimit)
	importService := service.NewImportService(
		log,
		secrets.NewEnvProvider(),
		tenantStore,
		runLogSink,
		importer.NewSilaeAuthenticator(silaeClient),
		orchestrator,
	)

	// Initialize REST server
	server := admin.NewServer(log, cfg, tenantService, journalService, runService, importService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
