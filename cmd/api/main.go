package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/checkfox/go_sales/internal/config"
	"github.com/checkfox/go_sales/internal/database"
	"github.com/checkfox/go_sales/internal/handlers"
	"github.com/checkfox/go_sales/internal/logger"
	"github.com/checkfox/go_sales/internal/metrics"
	"github.com/checkfox/go_sales/internal/queue"
	"github.com/checkfox/go_sales/internal/repository"
	"github.com/checkfox/go_sales/internal/services"
	"github.com/gorilla/mux"
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

	logger.Info(ctx, "API Server starting",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
		"auth_enabled", cfg.Auth.Enabled)

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

	logger.Info(ctx, "Database migrations completed")

	// Initialize queue client
	jobQueue, err := queue.NewDBQueue(dbWrapper.DB)
	if err != nil {
		log.Fatalf("Failed to initialize queue: %v", err)
	}
	defer jobQueue.Close()

	logger.Info(ctx, "Queue initialized")

	// Initialize repository and core services
	leadRepo := repository.NewLeadRepository(dbWrapper.DB)
	endpointMetrics := metrics.NewEndpointMetrics()
	salesView := services.NewSalesView(services.NewClassifier(), endpointMetrics)

	// Initialize handlers
	salesViewHandler := handlers.NewSalesViewHandler(leadRepo, salesView, endpointMetrics, cfg.Pagination.DefaultPageSize)
	jobsHandler := handlers.NewJobsHandler(jobQueue)

	// Initialize middleware
	authMiddleware := handlers.NewAuthMiddleware(cfg)
	recoveryMiddleware := handlers.NewRecoveryMiddleware()

	// Set up HTTP routes
	router := mux.NewRouter()

	router.HandleFunc("/api/leads/sales-view",
		recoveryMiddleware.Recover(
			authMiddleware.Authenticate(
				salesViewHandler.HandleSalesView))).Methods(http.MethodGet)

	router.HandleFunc("/api/leads/sales-view/metrics",
		recoveryMiddleware.Recover(
			authMiddleware.Authenticate(
				salesViewHandler.HandleMetrics))).Methods(http.MethodGet)

	router.HandleFunc("/api/workers/{job}/run",
		recoveryMiddleware.Recover(
			authMiddleware.Authenticate(
				jobsHandler.HandleRunWorker))).Methods(http.MethodPost)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := dbWrapper.HealthCheck(); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "address", addr)
		serverErrors <- server.ListenAndServe()
	}()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)

	case sig := <-sigChan:
		logger.Info(ctx, "Received shutdown signal", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown error", "error", err.Error())
			server.Close()
		}

		logger.Info(ctx, "Server shutdown complete")
	}
}
