package services

import (
	"context"
	"time"

	"github.com/checkfox/go_sales/internal/logger"
	"github.com/checkfox/go_sales/internal/metrics"
	"github.com/checkfox/go_sales/internal/models"
)

// StatsProvider returns the activity statistics for a lead id. The concrete
// implementation is injected by the caller; the orchestrator does not know
// where stats come from.
type StatsProvider func(ctx context.Context, leadID string) (models.Stats, error)

// QueryOptions are the request-shaping parameters for a sales-view call.
// Zero values mean no filtering, no reordering, first page, default page size.
type QueryOptions struct {
	Filters  map[string]interface{}
	OrderBy  string
	Page     int
	PageSize int
}

// SalesView composes the query pipeline and the classifier into the sales-view
// response: filter, order, paginate, then decorate every lead on the page with
// its suggested next action.
type SalesView struct {
	classifier *Classifier
	metrics    *metrics.EndpointMetrics
}

// NewSalesView creates a SalesView orchestrator. The metrics object is shared
// across invocations and owned by the caller.
func NewSalesView(classifier *Classifier, endpointMetrics *metrics.EndpointMetrics) *SalesView {
	return &SalesView{
		classifier: classifier,
		metrics:    endpointMetrics,
	}
}

// GetSalesView builds the paginated, decorated sales view.
//
// Per-lead failures are fatal to the whole request: the first stats lookup
// that fails is logged with the lead's id and returned unchanged. This is a
// synchronous read path where partial results are not acceptable, unlike the
// best-effort batch workers. Every invocation records one call, one latency
// sample and, on failure, one error before returning; a summary line is
// emitted regardless of outcome.
func (s *SalesView) GetSalesView(ctx context.Context, leads []models.Lead, statsProvider StatsProvider, opts QueryOptions) (*models.SalesViewResponse, error) {
	start := time.Now()
	s.metrics.RecordCall()

	defer func() {
		elapsedMS := float64(time.Since(start).Microseconds()) / 1000.0
		avgMS := s.metrics.RecordLatency(elapsedMS)
		snapshot := s.metrics.Snapshot()
		logger.Info(ctx, "Sales view request finished",
			"endpoint", "/api/leads/sales-view",
			"count", snapshot.CallCount,
			"errors", snapshot.ErrorCount,
			"last_latency_ms", elapsedMS,
			"avg_latency_ms", avgMS,
		)
	}()

	filtered := ApplyFilters(leads, opts.Filters)
	ordered := ApplyOrdering(filtered, opts.OrderBy)
	pageLeads, pagination := Paginate(ordered, opts.Page, opts.PageSize)

	data := make([]models.DecoratedLead, 0, len(pageLeads))
	for _, lead := range pageLeads {
		stats, err := statsProvider(ctx, lead.ID)
		if err != nil {
			s.metrics.RecordError()
			logger.LogError(ctx, "Failed to process lead for sales view", err,
				"lead_id", lead.ID)
			return nil, err
		}

		data = append(data, models.DecoratedLead{
			Lead:       lead.Clone(),
			NextAction: s.classifier.SuggestNextAction(lead, stats),
		})
	}

	return &models.SalesViewResponse{
		Data:       data,
		Pagination: pagination,
	}, nil
}
