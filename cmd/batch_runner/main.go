package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/payflow-importer/internal/config"
	"github.com/payflow-importer/internal/data/mongo"
	"github.com/payflow-importer/internal/data/postgres"
	"github.com/payflow-importer/internal/importer"
	"github.com/payflow-importer/internal/logger"
	"github.com/payflow-importer/internal/odoo"
	"github.com/payflow-importer/internal/platform/messaging/consumers"
	"github.com/payflow-importer/internal/platform/persistence"
	"github.com/payflow-importer/internal/secrets"
	"github.com/payflow-importer/internal/silae"
)

func main() {
	runOnce := flag.Bool("once", false, "run one batch immediately and exit instead of consuming triggers")
	flag.Parse()

	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("batch_runner")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Batch Runner",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"once", *runOnce,
	)

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

	// Initialize external clients and the batch runner
	silaeClient := silae.NewClient(log, cfg.Silae)
	odooDialer := odoo.NewDialer(log, cfg.Odoo)
	orchestrator := importer.NewOrchestrator(log, importer.NewOdooConnector(odooDialer))
	runner := importer.NewRunner(
		log,
		secrets.NewEnvProvider(),
		tenantStore,
		runLogSink,
		importer.NewSilaeAuthenticator(silaeClient),
		orchestrator,
	)

	var runErr error
	if *runOnce {
		runErr = runSingle(appCtx, log, runner)
	} else {
		runErr = runConsumer(appCtx, cancelAppCtx, log, cfg, runner)
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Close MongoDB connection
	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if runErr != nil {
		log.Error("Batch Runner shutdown with errors", "error", runErr)
		os.Exit(1)
	}
	log.Info("Batch Runner shutdown completed successfully")
}

// runSingle executes exactly one batch run, for cron-style deployments and
// manual operation.
func runSingle(ctx context.Context, log *slog.Logger, runner *importer.Runner) error {
	summary, err := runner.RunDaily(ctx, uuid.NewString())
	if err != nil {
		return err
	}
	log.Info("Batch run summary",
		"period", summary.Period,
		"scheduled", summary.Scheduled,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return nil
}

// runConsumer blocks on the Kafka trigger topic until a shutdown signal
// arrives or the consumer fails.
func runConsumer(ctx context.Context, cancel context.CancelFunc, log *slog.Logger, cfg *config.Config, runner *importer.Runner) error {
	trigger := consumers.NewTriggerConsumer(log, &cfg.Kafka)

	errChan := make(chan error, 1)
	go func() {
		errChan <- trigger.Run(ctx, func(ctx context.Context, eventID string) error {
			summary, err := runner.RunDaily(ctx, eventID)
			if err != nil {
				return err
			}
			log.Info("Batch run summary",
				"event_id", eventID,
				"period", summary.Period,
				"scheduled", summary.Scheduled,
				"succeeded", summary.Succeeded,
				"failed", summary.Failed,
			)
			return nil
		})
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var consumerErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			log.Error("Trigger consumer error occurred", "error", err)
			consumerErr = err
		}
	}

	cancel()

	if err := trigger.Close(); err != nil {
		log.Error("Error closing trigger consumer", "error", err)
	}
	return consumerErr
}
