package models

import "fmt"

// ActivityFetchError represents a failure fetching activity statistics for a
// lead from the Activity API
type ActivityFetchError struct {
	LeadID     string
	StatusCode int
	Message    string
	Err        error
}

func (e *ActivityFetchError) Error() string {
	if e.StatusCode > 0 {
		if e.Err != nil {
			return fmt.Sprintf("activity fetch failed for lead %s: HTTP %d - %s (caused by: %v)",
				e.LeadID, e.StatusCode, e.Message, e.Err)
		}
		return fmt.Sprintf("activity fetch failed for lead %s: HTTP %d - %s",
			e.LeadID, e.StatusCode, e.Message)
	}

	if e.Err != nil {
		return fmt.Sprintf("activity fetch failed for lead %s: %s (caused by: %v)",
			e.LeadID, e.Message, e.Err)
	}
	return fmt.Sprintf("activity fetch failed for lead %s: %s", e.LeadID, e.Message)
}

func (e *ActivityFetchError) Unwrap() error {
	return e.Err
}

// NewActivityFetchError creates a new ActivityFetchError
func NewActivityFetchError(leadID string, statusCode int, message string, err error) *ActivityFetchError {
	return &ActivityFetchError{
		LeadID:     leadID,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}
