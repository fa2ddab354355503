package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/checkfox/go_sales/internal/models"
)

// LeadRepository defines the interface for lead data access. It is the
// concrete backing for the stats-provider and lead-source callbacks the core
// receives; the core itself never imports this package.
type LeadRepository interface {
	// CreateLead inserts a new lead record
	CreateLead(ctx context.Context, lead *models.Lead) error

	// ListLeads returns all leads in stable id order
	ListLeads(ctx context.Context) ([]models.Lead, error)

	// GetLeadStats returns the stored activity statistics for a lead.
	// Leads without collected stats yield zero-valued stats, not an error.
	GetLeadStats(ctx context.Context, leadID string) (models.Stats, error)

	// UpsertLeadStats stores the activity statistics collected for a lead
	UpsertLeadStats(ctx context.Context, leadID string, stats models.Stats) error

	// UpdatePriorityScore stores the computed priority score for a lead
	UpdatePriorityScore(ctx context.Context, leadID string, score float64) error
}

// leadRepository is the concrete implementation of LeadRepository
type leadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new LeadRepository instance
func NewLeadRepository(db *sql.DB) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

// CreateLead inserts a new lead record
func (r *leadRepository) CreateLead(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (id, created_at, has_open_deal, attributes, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	attributes := lead.Extra
	if attributes == nil {
		attributes = models.JSONB{}
	}

	var createdAt interface{}
	if parsed := models.ParseTimestamp(lead.CreatedAt); parsed != nil {
		createdAt = *parsed
	}

	var hasOpenDeal interface{}
	if lead.HasOpenDeal != nil {
		hasOpenDeal = *lead.HasOpenDeal
	}

	if _, err := r.db.ExecContext(ctx, query, lead.ID, createdAt, hasOpenDeal, attributes); err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// ListLeads returns all leads in stable id order
func (r *leadRepository) ListLeads(ctx context.Context) ([]models.Lead, error) {
	query := `
		SELECT id, created_at, has_open_deal, attributes
		FROM leads
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var (
			lead        models.Lead
			createdAt   sql.NullTime
			hasOpenDeal sql.NullBool
			attributes  models.JSONB
		)

		if err := rows.Scan(&lead.ID, &createdAt, &hasOpenDeal, &attributes); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}

		if createdAt.Valid {
			lead.CreatedAt = models.FormatTimestamp(createdAt.Time)
		}
		if hasOpenDeal.Valid {
			v := hasOpenDeal.Bool
			lead.HasOpenDeal = &v
		}
		lead.Extra = attributes

		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

// GetLeadStats returns the stored activity statistics for a lead
func (r *leadRepository) GetLeadStats(ctx context.Context, leadID string) (models.Stats, error) {
	query := `
		SELECT last_interaction_at, next_meeting_at, engagement_score
		FROM lead_activity_stats
		WHERE lead_id = $1
	`

	var (
		lastInteractionAt sql.NullTime
		nextMeetingAt     sql.NullTime
		engagementScore   sql.NullFloat64
	)

	err := r.db.QueryRowContext(ctx, query, leadID).Scan(
		&lastInteractionAt,
		&nextMeetingAt,
		&engagementScore,
	)

	if err == sql.ErrNoRows {
		// No collected stats yet; the classifier treats this as a lead
		// without interaction history.
		return models.Stats{}, nil
	}
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to get stats for lead %s: %w", leadID, err)
	}

	var stats models.Stats
	if lastInteractionAt.Valid {
		stats.LastInteractionAt = models.FormatTimestamp(lastInteractionAt.Time)
	}
	if nextMeetingAt.Valid {
		stats.NextMeetingAt = models.FormatTimestamp(nextMeetingAt.Time)
	}
	if engagementScore.Valid {
		stats.EngagementScore = engagementScore.Float64
	}

	return stats, nil
}

// UpsertLeadStats stores the activity statistics collected for a lead
func (r *leadRepository) UpsertLeadStats(ctx context.Context, leadID string, stats models.Stats) error {
	query := `
		INSERT INTO lead_activity_stats (lead_id, last_interaction_at, next_meeting_at, engagement_score, collected_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (lead_id) DO UPDATE SET
			last_interaction_at = EXCLUDED.last_interaction_at,
			next_meeting_at = EXCLUDED.next_meeting_at,
			engagement_score = EXCLUDED.engagement_score,
			collected_at = EXCLUDED.collected_at
	`

	_, err := r.db.ExecContext(ctx, query,
		leadID,
		nullableTime(stats.LastInteractionAt),
		nullableTime(stats.NextMeetingAt),
		stats.EngagementScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert stats for lead %s: %w", leadID, err)
	}

	return nil
}

// UpdatePriorityScore stores the computed priority score for a lead
func (r *leadRepository) UpdatePriorityScore(ctx context.Context, leadID string, score float64) error {
	query := `
		UPDATE leads
		SET priority_score = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, score, leadID)
	if err != nil {
		return fmt.Errorf("failed to update priority score: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("lead not found: %s", leadID)
	}

	return nil
}

// nullableTime converts a lenient timestamp string to a nullable column value
func nullableTime(value string) interface{} {
	if parsed := models.ParseTimestamp(value); parsed != nil {
		return parsed.UTC()
	}
	return nil
}
