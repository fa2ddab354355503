package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/checkfox/go_sales/internal/models"
)

// ActivityAPIClient fetches lead activity statistics from the external
// activity service
type ActivityAPIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewActivityAPIClient creates a new Activity API client
func NewActivityAPIClient(baseURL, token string, timeout time.Duration) *ActivityAPIClient {
	return &ActivityAPIClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchActivity retrieves the activity statistics for a lead.
// Failures return a *models.ActivityFetchError; there is no retry here, the
// worker harness isolates per-lead failures instead.
func (c *ActivityAPIClient) FetchActivity(ctx context.Context, leadID string) (models.Stats, error) {
	endpoint := fmt.Sprintf("%s/leads/%s/activity", c.baseURL, url.PathEscape(leadID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Stats{}, models.NewActivityFetchError(leadID, 0, "failed to create request", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Stats{}, models.NewActivityFetchError(leadID, 0, "network error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Stats{}, models.NewActivityFetchError(leadID, resp.StatusCode, string(body), nil)
	}

	var stats models.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return models.Stats{}, models.NewActivityFetchError(leadID, resp.StatusCode, "failed to decode response", err)
	}

	return stats, nil
}
