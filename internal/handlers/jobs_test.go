package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/checkfox/go_sales/internal/queue"
	"github.com/checkfox/go_sales/internal/worker"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQueue records enqueued jobs
type stubQueue struct {
	enqueued   []string
	payloads   []map[string]interface{}
	enqueueErr error
}

func (q *stubQueue) Enqueue(ctx context.Context, jobType string, payload map[string]interface{}) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.enqueued = append(q.enqueued, jobType)
	q.payloads = append(q.payloads, payload)
	return nil
}

func (q *stubQueue) EnqueueWithDelay(ctx context.Context, jobType string, payload map[string]interface{}, delay time.Duration) error {
	return q.Enqueue(ctx, jobType, payload)
}

func (q *stubQueue) Dequeue(ctx context.Context) (*queue.Job, error) { return nil, nil }
func (q *stubQueue) Complete(ctx context.Context, jobID int64) error { return nil }
func (q *stubQueue) Fail(ctx context.Context, jobID int64, errorMsg string) error {
	return nil
}
func (q *stubQueue) HealthCheck(ctx context.Context) error { return nil }
func (q *stubQueue) Close() error                          { return nil }

func newJobsRouter(q queue.Queue) *mux.Router {
	router := mux.NewRouter()
	handler := NewJobsHandler(q)
	router.HandleFunc("/api/workers/{job}/run", handler.HandleRunWorker).Methods(http.MethodPost)
	return router
}

func TestHandleRunWorker_EnqueuesActivityStats(t *testing.T) {
	q := &stubQueue{}
	router := newJobsRouter(q)

	req := httptest.NewRequest(http.MethodPost, "/api/workers/activity-stats/run", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusAccepted, recorder.Code)

	var response JobResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, worker.JobCollectActivityStats, response.JobType)
	assert.Equal(t, "enqueued", response.Status)
	assert.NotEmpty(t, response.CorrelationID)

	require.Len(t, q.enqueued, 1)
	assert.Equal(t, worker.JobCollectActivityStats, q.enqueued[0])

	// The enqueued payload carries the response's correlation id
	correlationID, ok := queue.GetCorrelationID(q.payloads[0])
	require.True(t, ok)
	assert.Equal(t, response.CorrelationID, correlationID)
}

func TestHandleRunWorker_EnqueuesPriorityScores(t *testing.T) {
	q := &stubQueue{}
	router := newJobsRouter(q)

	req := httptest.NewRequest(http.MethodPost, "/api/workers/priority-scores/run", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusAccepted, recorder.Code)
	require.Len(t, q.enqueued, 1)
	assert.Equal(t, worker.JobComputePriorityScores, q.enqueued[0])
}

func TestHandleRunWorker_UnknownJob(t *testing.T) {
	q := &stubQueue{}
	router := newJobsRouter(q)

	req := httptest.NewRequest(http.MethodPost, "/api/workers/reindex-everything/run", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "unknown worker", response.Error)
	assert.Empty(t, q.enqueued)
}

func TestHandleRunWorker_QueueUnavailable(t *testing.T) {
	q := &stubQueue{enqueueErr: errors.New("queue down")}
	router := newJobsRouter(q)

	req := httptest.NewRequest(http.MethodPost, "/api/workers/activity-stats/run", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "queue unavailable", response.Error)
}
