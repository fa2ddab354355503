package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/checkfox/go_sales/internal/logger"
	"github.com/checkfox/go_sales/internal/models"
	"github.com/checkfox/go_sales/internal/queue"
	"github.com/checkfox/go_sales/internal/repository"
)

// Job types understood by the processor
const (
	// JobCollectActivityStats refreshes every lead's activity statistics
	JobCollectActivityStats = "collect_activity_stats"
	// JobComputePriorityScores recomputes every lead's priority score
	JobComputePriorityScores = "compute_priority_scores"
)

// priorityEngagementWeight scales the engagement score into the default
// priority score
const priorityEngagementWeight = 1.5

// ActivityClient fetches activity statistics for a single lead from the
// external Activity API
type ActivityClient interface {
	FetchActivity(ctx context.Context, leadID string) (models.Stats, error)
}

// Processor polls the job queue and runs the batch workers
type Processor struct {
	queue          queue.Queue
	leadRepo       repository.LeadRepository
	activityClient ActivityClient
	pollInterval   time.Duration
	shutdownChan   chan struct{}
}

// ProcessorConfig holds configuration for the worker processor
type ProcessorConfig struct {
	Queue          queue.Queue
	LeadRepo       repository.LeadRepository
	ActivityClient ActivityClient
	PollInterval   time.Duration
}

// NewProcessor creates a new worker processor
func NewProcessor(config ProcessorConfig) *Processor {
	if config.PollInterval == 0 {
		config.PollInterval = 5 * time.Second
	}

	return &Processor{
		queue:          config.Queue,
		leadRepo:       config.LeadRepo,
		activityClient: config.ActivityClient,
		pollInterval:   config.PollInterval,
		shutdownChan:   make(chan struct{}),
	}
}

// Start begins the worker polling loop with graceful shutdown
func (p *Processor) Start(ctx context.Context) error {
	logger.Info(ctx, "Starting worker processor", "poll_interval", p.pollInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context cancelled, shutting down gracefully")
			return ctx.Err()

		case <-sigChan:
			logger.Info(ctx, "Received shutdown signal, shutting down gracefully")
			return nil

		case <-p.shutdownChan:
			logger.Info(ctx, "Shutdown requested, shutting down gracefully")
			return nil

		case <-ticker.C:
			if err := p.pollAndProcess(ctx); err != nil {
				logger.LogError(ctx, "Error polling and processing jobs", err)
				// Continue polling even if there's an error
			}
		}
	}
}

// Shutdown signals the worker to stop gracefully
func (p *Processor) Shutdown() {
	close(p.shutdownChan)
}

// ProcessNext handles at most one pending job and returns. Used for one-shot
// runs outside the polling loop.
func (p *Processor) ProcessNext(ctx context.Context) error {
	return p.pollAndProcess(ctx)
}

// pollAndProcess dequeues the next job and dispatches it by type
func (p *Processor) pollAndProcess(ctx context.Context) error {
	job, err := p.queue.Dequeue(ctx)
	if err != nil {
		return fmt.Errorf("failed to dequeue job: %w", err)
	}

	// No jobs available
	if job == nil {
		return nil
	}

	logger.Info(ctx, "Processing job", "job_id", job.ID, "job_type", job.Type)

	var processErr error
	switch job.Type {
	case JobCollectActivityStats:
		processErr = p.runActivityStatsJob(ctx)
	case JobComputePriorityScores:
		processErr = p.runPriorityScoreJob(ctx)
	default:
		processErr = fmt.Errorf("unknown job type: %s", job.Type)
	}

	if processErr != nil {
		logger.LogError(ctx, "Job failed", processErr, "job_id", job.ID)
		if err := p.queue.Fail(ctx, job.ID, processErr.Error()); err != nil {
			logger.LogError(ctx, "Failed to mark job as failed", err, "job_id", job.ID)
		}
		return processErr
	}

	if err := p.queue.Complete(ctx, job.ID); err != nil {
		logger.LogError(ctx, "Failed to mark job as completed", err, "job_id", job.ID)
		return err
	}

	logger.Info(ctx, "Job completed successfully", "job_id", job.ID)
	return nil
}

// runActivityStatsJob fetches fresh activity statistics for every lead through
// the Activity API and persists them. Per-lead fetch failures are isolated by
// the harness; persistence failures are logged and do not stop the batch.
func (p *Processor) runActivityStatsJob(ctx context.Context) error {
	if p.activityClient == nil {
		return fmt.Errorf("activity API client is not configured")
	}

	leads, err := p.leadRepo.ListLeads(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leads: %w", err)
	}

	results, _ := RunLeadActivityStatsWorker(leads, func(lead models.Lead) (models.Stats, error) {
		return p.activityClient.FetchActivity(ctx, lead.ID)
	})

	for _, result := range results {
		if err := p.leadRepo.UpsertLeadStats(ctx, result.LeadID, result.Stats); err != nil {
			logger.LogError(ctx, "Failed to persist lead activity stats", err,
				"lead_id", result.LeadID)
		}
	}

	logger.Info(ctx, "Activity stats job finished",
		"leads", len(leads), "collected", len(results))
	return nil
}

// runPriorityScoreJob recomputes the priority score for every lead from its
// stored activity statistics and persists the result
func (p *Processor) runPriorityScoreJob(ctx context.Context) error {
	leads, err := p.leadRepo.ListLeads(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leads: %w", err)
	}

	results, _ := RunPriorityScoreWorker(leads, func(lead models.Lead) (float64, error) {
		stats, err := p.leadRepo.GetLeadStats(ctx, lead.ID)
		if err != nil {
			return 0, err
		}
		return stats.EngagementScore * priorityEngagementWeight, nil
	})

	for _, result := range results {
		if err := p.leadRepo.UpdatePriorityScore(ctx, result.LeadID, result.PriorityScore); err != nil {
			logger.LogError(ctx, "Failed to persist priority score", err,
				"lead_id", result.LeadID)
		}
	}

	logger.Info(ctx, "Priority score job finished",
		"leads", len(leads), "scored", len(results))
	return nil
}
