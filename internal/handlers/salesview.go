package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/checkfox/go_sales/internal/logger"
	"github.com/checkfox/go_sales/internal/metrics"
	"github.com/checkfox/go_sales/internal/models"
	"github.com/checkfox/go_sales/internal/repository"
	"github.com/checkfox/go_sales/internal/services"
	"github.com/google/uuid"
)

// reservedQueryParams are the sales-view query parameters that are not
// equality filters
var reservedQueryParams = map[string]bool{
	"order_by":  true,
	"page":      true,
	"page_size": true,
}

// SalesViewHandler serves the sales-view endpoint and its metrics snapshot
type SalesViewHandler struct {
	leadRepo        repository.LeadRepository
	salesView       *services.SalesView
	endpointMetrics *metrics.EndpointMetrics
	defaultPageSize int
}

// NewSalesViewHandler creates a new SalesViewHandler
func NewSalesViewHandler(leadRepo repository.LeadRepository, salesView *services.SalesView, endpointMetrics *metrics.EndpointMetrics, defaultPageSize int) *SalesViewHandler {
	if defaultPageSize < 1 {
		defaultPageSize = services.DefaultPageSize
	}
	return &SalesViewHandler{
		leadRepo:        leadRepo,
		salesView:       salesView,
		endpointMetrics: endpointMetrics,
		defaultPageSize: defaultPageSize,
	}
}

// HandleSalesView handles GET /api/leads/sales-view
//
// Query parameters: order_by (optionally "-" prefixed), page, page_size;
// every remaining parameter is treated as an exact-equality filter on the
// lead's fields.
func (h *SalesViewHandler) HandleSalesView(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.New().String()
	ctx := context.WithValue(r.Context(), logger.CorrelationIDKey, correlationID)
	start := time.Now()

	logger.Info(ctx, "Received sales view request",
		"remote_addr", r.RemoteAddr,
		"query", r.URL.RawQuery,
	)

	opts := services.QueryOptions{
		OrderBy:  r.URL.Query().Get("order_by"),
		Page:     parseIntParam(r, "page", 1),
		PageSize: parseIntParam(r, "page_size", h.defaultPageSize),
		Filters:  map[string]interface{}{},
	}
	for key, values := range r.URL.Query() {
		if reservedQueryParams[key] || len(values) == 0 {
			continue
		}
		opts.Filters[key] = values[0]
	}

	leads, err := h.leadRepo.ListLeads(ctx)
	if err != nil {
		logger.LogError(ctx, "Failed to load leads", err)
		respondError(w, correlationID, http.StatusServiceUnavailable, "database error")
		return
	}

	statsProvider := func(ctx context.Context, leadID string) (models.Stats, error) {
		return h.leadRepo.GetLeadStats(ctx, leadID)
	}

	response, err := h.salesView.GetSalesView(ctx, leads, statsProvider, opts)
	if err != nil {
		respondError(w, correlationID, http.StatusInternalServerError, "failed to build sales view")
		return
	}

	logger.LogSlowOperation(ctx, "sales_view", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.LogError(ctx, "Failed to encode sales view response", err)
	}
}

// HandleMetrics handles GET /api/leads/sales-view/metrics
func (h *SalesViewHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot := h.endpointMetrics.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		logger.LogError(r.Context(), "Failed to encode metrics snapshot", err)
	}
}

// parseIntParam reads a positive integer query parameter with a fallback
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
