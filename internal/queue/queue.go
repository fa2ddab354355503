package queue

import (
	"context"
	"time"
)

// Job represents a background batch job to be processed
type Job struct {
	ID        int64                  `json:"id"`
	Type      string                 `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
	NextRunAt time.Time              `json:"next_run_at"`
	Attempts  int                    `json:"attempts"`
}

// Queue defines the interface for job queue operations
type Queue interface {
	// Enqueue adds a new job to the queue
	Enqueue(ctx context.Context, jobType string, payload map[string]interface{}) error

	// EnqueueWithDelay adds a job to be processed after a delay
	EnqueueWithDelay(ctx context.Context, jobType string, payload map[string]interface{}, delay time.Duration) error

	// Dequeue retrieves the next available job from the queue
	// Returns nil if no jobs are available
	Dequeue(ctx context.Context) (*Job, error)

	// Complete marks a job as successfully completed
	Complete(ctx context.Context, jobID int64) error

	// Fail marks a job as failed
	Fail(ctx context.Context, jobID int64, errorMsg string) error

	// HealthCheck verifies the queue is operational
	HealthCheck(ctx context.Context) error

	// Close closes the queue connection
	Close() error
}

// NewJobPayload builds the payload stored with an enqueued batch job. The
// correlation id ties the job back to the request that triggered it.
func NewJobPayload(correlationID string) map[string]interface{} {
	return map[string]interface{}{
		"correlation_id": correlationID,
	}
}

// GetCorrelationID extracts the correlation id from a job payload
func GetCorrelationID(payload map[string]interface{}) (string, bool) {
	value, ok := payload["correlation_id"]
	if !ok {
		return "", false
	}
	correlationID, ok := value.(string)
	return correlationID, ok
}
