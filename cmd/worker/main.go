package main

import (
	"context"
	"log"

	"github.com/checkfox/go_sales/internal/client"
	"github.com/checkfox/go_sales/internal/config"
	"github.com/checkfox/go_sales/internal/database"
	"github.com/checkfox/go_sales/internal/logger"
	"github.com/checkfox/go_sales/internal/queue"
	"github.com/checkfox/go_sales/internal/repository"
	"github.com/checkfox/go_sales/internal/worker"
)

func main() {
	// Initialize structured logger
	logger.Init()
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Info(ctx, "Worker starting", "poll_interval", cfg.Worker.PollInterval)

	// Initialize database connection
	dbWrapper, err := database.InitFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbWrapper.Close()

	logger.Info(ctx, "Database connection established")

	// Run database migrations
	if err := database.RunMigrations(dbWrapper, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize queue client
	jobQueue, err := queue.NewDBQueue(dbWrapper.DB)
	if err != nil {
		log.Fatalf("Failed to initialize queue: %v", err)
	}
	defer jobQueue.Close()

	logger.Info(ctx, "Queue initialized")

	leadRepo := repository.NewLeadRepository(dbWrapper.DB)

	// The Activity API client is optional; without it the activity stats
	// job reports an error for every run instead of crashing the worker.
	var activityClient worker.ActivityClient
	if cfg.ActivityAPI.URL != "" {
		activityClient = client.NewActivityAPIClient(cfg.ActivityAPI.URL, cfg.ActivityAPI.Token, cfg.ActivityAPI.Timeout)
		logger.Info(ctx, "Activity API client configured", "url", cfg.ActivityAPI.URL)
	} else {
		logger.Warn(ctx, "ACTIVITY_API_URL not set, activity stats jobs will fail")
	}

	processor := worker.NewProcessor(worker.ProcessorConfig{
		Queue:          jobQueue,
		LeadRepo:       leadRepo,
		ActivityClient: activityClient,
		PollInterval:   cfg.Worker.PollInterval,
	})

	if err := processor.Start(ctx); err != nil {
		log.Fatalf("Worker processor error: %v", err)
	}

	logger.Info(ctx, "Worker shutdown complete")
}
