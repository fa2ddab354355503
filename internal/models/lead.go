package models

import "encoding/json"

// Lead represents a sales lead as received from the caller. Known fields are
// explicit; everything else travels in Extra so decoration never drops fields
// the classifier does not inspect.
type Lead struct {
	ID          string
	CreatedAt   string // ISO-8601 timestamp, empty when absent
	HasOpenDeal *bool
	Extra       JSONB
}

// Field resolves a field by its wire name, checking the known fields first and
// the Extra map second. The second return value is false when the field is
// absent from the lead.
func (l Lead) Field(key string) (interface{}, bool) {
	switch key {
	case "id":
		return l.ID, true
	case "created_at":
		if l.CreatedAt == "" {
			return nil, false
		}
		return l.CreatedAt, true
	case "has_open_deal":
		if l.HasOpenDeal == nil {
			return nil, false
		}
		return *l.HasOpenDeal, true
	default:
		value, ok := l.Extra[key]
		return value, ok
	}
}

// Clone returns a copy of the lead with its own Extra map, so decorated
// results never alias the caller's lead
func (l Lead) Clone() Lead {
	clone := l
	clone.Extra = l.Extra.Clone()
	if l.HasOpenDeal != nil {
		v := *l.HasOpenDeal
		clone.HasOpenDeal = &v
	}
	return clone
}

// payload flattens the lead into a single map with the known fields alongside
// the pass-through Extra fields
func (l Lead) payload() map[string]interface{} {
	out := make(map[string]interface{}, len(l.Extra)+3)
	for key, value := range l.Extra {
		out[key] = value
	}
	out["id"] = l.ID
	if l.CreatedAt != "" {
		out["created_at"] = l.CreatedAt
	}
	if l.HasOpenDeal != nil {
		out["has_open_deal"] = *l.HasOpenDeal
	}
	return out
}

// MarshalJSON flattens known fields and Extra into one JSON object
func (l Lead) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.payload())
}

// UnmarshalJSON splits a flat JSON object into known fields and Extra
func (l *Lead) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	lead := Lead{Extra: JSONB{}}
	for key, value := range raw {
		switch key {
		case "id":
			if id, ok := value.(string); ok {
				lead.ID = id
			}
		case "created_at":
			if createdAt, ok := value.(string); ok {
				lead.CreatedAt = createdAt
			}
		case "has_open_deal":
			if flag, ok := value.(bool); ok {
				lead.HasOpenDeal = &flag
			}
		default:
			lead.Extra[key] = value
		}
	}

	*l = lead
	return nil
}

// Stats describes a lead's interaction history. Timestamps are lenient
// ISO-8601 strings; empty means absent.
type Stats struct {
	LastInteractionAt string  `json:"last_interaction_at,omitempty"`
	NextMeetingAt     string  `json:"next_meeting_at,omitempty"`
	EngagementScore   float64 `json:"engagement_score"`
}

// DecoratedLead is a lead augmented with its suggested next action
type DecoratedLead struct {
	Lead
	NextAction ActionResult
}

// MarshalJSON renders the decorated lead as the flattened lead payload with a
// next_action object alongside the original fields
func (d DecoratedLead) MarshalJSON() ([]byte, error) {
	out := d.Lead.payload()
	out["next_action"] = d.NextAction
	return json.Marshal(out)
}

// Pagination describes the window a sales-view response covers. Total is the
// count after filtering but before pagination.
type Pagination struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// SalesViewResponse is the sales-view endpoint's response body
type SalesViewResponse struct {
	Data       []DecoratedLead `json:"data"`
	Pagination Pagination      `json:"pagination"`
}
