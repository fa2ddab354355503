package handlers

import (
	"context"
	"net/http"

	"github.com/checkfox/go_sales/internal/logger"
	"github.com/checkfox/go_sales/internal/queue"
	"github.com/checkfox/go_sales/internal/worker"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// jobTypesBySlug maps URL job names to queue job types
var jobTypesBySlug = map[string]string{
	"activity-stats":  worker.JobCollectActivityStats,
	"priority-scores": worker.JobComputePriorityScores,
}

// JobsHandler enqueues batch worker jobs on demand
type JobsHandler struct {
	queue queue.Queue
}

// NewJobsHandler creates a new JobsHandler
func NewJobsHandler(q queue.Queue) *JobsHandler {
	return &JobsHandler{queue: q}
}

// JobResponse is returned after a job has been enqueued
type JobResponse struct {
	JobType       string `json:"job_type"`
	Status        string `json:"status"`
	CorrelationID string `json:"correlation_id"`
}

// HandleRunWorker handles POST /api/workers/{job}/run
func (h *JobsHandler) HandleRunWorker(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.New().String()
	ctx := context.WithValue(r.Context(), logger.CorrelationIDKey, correlationID)

	slug := mux.Vars(r)["job"]
	jobType, ok := jobTypesBySlug[slug]
	if !ok {
		respondError(w, correlationID, http.StatusNotFound, "unknown worker")
		return
	}

	if err := h.queue.Enqueue(ctx, jobType, queue.NewJobPayload(correlationID)); err != nil {
		logger.LogError(ctx, "Failed to enqueue worker job", err, "job_type", jobType)
		respondError(w, correlationID, http.StatusServiceUnavailable, "queue unavailable")
		return
	}

	logger.Info(ctx, "Enqueued worker job", "job_type", jobType)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, ctx, JobResponse{
		JobType:       jobType,
		Status:        "enqueued",
		CorrelationID: correlationID,
	})
}
