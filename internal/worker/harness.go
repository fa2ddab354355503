package worker

import (
	"fmt"
	"time"

	"github.com/checkfox/go_sales/internal/models"
	"github.com/sirupsen/logrus"
)

// ActivityFetcher returns fresh activity statistics for a lead
type ActivityFetcher func(lead models.Lead) (models.Stats, error)

// ScoreCalculator computes a priority score for a lead. The harness records
// whatever value the calculator returns; it does not validate or clamp it.
type ScoreCalculator func(lead models.Lead) (float64, error)

// WorkerMetrics aggregates one batch run. Created fresh per worker call and
// discarded after emission; Processed counts successful items only, Errors
// maps lead id to the failure message. An id never appears in both Errors and
// the result list.
type WorkerMetrics struct {
	Name        string
	TotalTimeMS float64
	Processed   int
	Errors      map[string]string
}

func newWorkerMetrics(name string) *WorkerMetrics {
	return &WorkerMetrics{
		Name:   name,
		Errors: map[string]string{},
	}
}

// RecordError records a failed item by lead id
func (m *WorkerMetrics) RecordError(leadID, message string) {
	m.Errors[leadID] = message
}

// Emit logs the batch summary followed by one error line per failed item
func (m *WorkerMetrics) Emit() {
	logrus.WithFields(logrus.Fields{
		"worker":        m.Name,
		"processed":     m.Processed,
		"total_time_ms": m.TotalTimeMS,
		"errors":        len(m.Errors),
	}).Info("worker batch finished")

	for leadID, message := range m.Errors {
		logrus.WithFields(logrus.Fields{
			"worker":  m.Name,
			"lead_id": leadID,
			"error":   message,
		}).Error("worker item failed")
	}
}

// LeadActivityStats is one activity-stats worker result row: the lead's id
// merged with the fetched statistics
type LeadActivityStats struct {
	LeadID string `json:"id"`
	models.Stats
}

// LeadPriorityScore is one priority-score worker result row
type LeadPriorityScore struct {
	LeadID        string  `json:"id"`
	PriorityScore float64 `json:"priority_score"`
}

// RunLeadActivityStatsWorker collects activity statistics for every lead.
// Failed items are recorded in the returned metrics and skipped; the batch
// never aborts.
func RunLeadActivityStatsWorker(leads []models.Lead, fetcher ActivityFetcher) ([]LeadActivityStats, *WorkerMetrics) {
	return runWorker("lead_activity_stats", leads, func(lead models.Lead) (LeadActivityStats, error) {
		stats, err := fetcher(lead)
		if err != nil {
			return LeadActivityStats{}, err
		}
		return LeadActivityStats{LeadID: lead.ID, Stats: stats}, nil
	})
}

// RunPriorityScoreWorker computes a priority score for every lead with the
// same failure isolation as the activity-stats worker
func RunPriorityScoreWorker(leads []models.Lead, calculator ScoreCalculator) ([]LeadPriorityScore, *WorkerMetrics) {
	return runWorker("priority_score", leads, func(lead models.Lead) (LeadPriorityScore, error) {
		score, err := calculator(lead)
		if err != nil {
			return LeadPriorityScore{}, err
		}
		return LeadPriorityScore{LeadID: lead.ID, PriorityScore: score}, nil
	})
}

// runWorker is the shared per-item execution loop. Each item either yields a
// result or an error entry keyed by lead id; the loop continues past failures
// and emits the batch metrics at the end.
func runWorker[R any](name string, leads []models.Lead, process func(models.Lead) (R, error)) ([]R, *WorkerMetrics) {
	workerMetrics := newWorkerMetrics(name)
	start := time.Now()

	results := make([]R, 0, len(leads))
	for _, lead := range leads {
		result, err := runItem(lead, process)
		if err != nil {
			workerMetrics.RecordError(lead.ID, err.Error())
			continue
		}
		results = append(results, result)
		workerMetrics.Processed++
	}

	workerMetrics.TotalTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	workerMetrics.Emit()
	return results, workerMetrics
}

// runItem invokes the callback for one lead, converting panics into ordinary
// per-item errors so a misbehaving callback cannot abort the batch
func runItem[R any](lead models.Lead, process func(models.Lead) (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return process(lead)
}
