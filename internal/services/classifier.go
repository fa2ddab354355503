package services

import (
	"fmt"
	"time"

	"github.com/checkfox/go_sales/internal/models"
)

const (
	// newLeadMaxAgeDays is the maximum age for the "new lead" rule
	newLeadMaxAgeDays = 7
	// staleInteractionDays is the follow-up threshold since the last interaction
	staleInteractionDays = 3
	// qualifyEngagementThreshold is the engagement score for qualification
	qualifyEngagementThreshold = 80
)

// Classifier maps a lead and its activity statistics to the recommended next
// action. It is pure: no I/O, no mutation, and the current instant is captured
// once per call.
type Classifier struct {
	now func() time.Time
}

// NewClassifier creates a Classifier using the UTC wall clock
func NewClassifier() *Classifier {
	return &Classifier{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// NewClassifierWithClock creates a Classifier using the given clock. Used by
// tests that need a fixed current instant.
func NewClassifierWithClock(now func() time.Time) *Classifier {
	return &Classifier{now: now}
}

// SuggestNextAction determines the next best action for a lead.
//
// The decision considers how long the lead has existed, the time since the
// last interaction, any upcoming meetings, and overall engagement. The rules
// are evaluated in a fixed priority order; the first matching rule wins. The
// order is load-bearing: a lead exactly at the follow-up threshold with no
// interaction history must fall into the new-lead rule, not the follow-up one.
func (c *Classifier) SuggestNextAction(lead models.Lead, stats models.Stats) models.ActionResult {
	now := c.now()

	createdAt := models.ParseTimestamp(lead.CreatedAt)
	if createdAt == nil {
		// Missing or unparseable creation timestamps count as "created now",
		// so the lead's age is zero.
		createdAt = &now
	}
	lastInteractionAt := models.ParseTimestamp(stats.LastInteractionAt)
	nextMeetingAt := models.ParseTimestamp(stats.NextMeetingAt)

	ageDays, _ := models.DaysBetween(now, createdAt)
	sinceLastInteraction, hasInteraction := models.DaysBetween(now, lastInteractionAt)
	hasFutureMeeting := nextMeetingAt != nil && nextMeetingAt.After(now)
	hasOpenDeal := lead.HasOpenDeal != nil && *lead.HasOpenDeal

	if !hasInteraction && ageDays <= newLeadMaxAgeDays {
		return models.NewActionResult(models.ActionCallFirstTime,
			"Lead novo sem interações registradas")
	}

	if hasInteraction && sinceLastInteraction >= staleInteractionDays {
		return models.NewActionResult(models.ActionSendFollowUp,
			fmt.Sprintf("Última interação há %d dias", sinceLastInteraction))
	}

	if hasFutureMeeting {
		meetingStr := "futura"
		if nextMeetingAt != nil {
			meetingStr = nextMeetingAt.Format("2006-01-02")
		}
		return models.NewActionResult(models.ActionPrepareForMeeting,
			fmt.Sprintf("Reunião agendada para %s", meetingStr))
	}

	if stats.EngagementScore >= qualifyEngagementThreshold && !hasOpenDeal {
		return models.NewActionResult(models.ActionQualifyToCompany,
			"Lead muito engajado sem deal ativo")
	}

	return models.NewActionResult(models.ActionMonitor,
		"Nenhuma ação prioritária identificada")
}
