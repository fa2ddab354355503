package models

// ActionCode identifies one of the recommended next actions for a lead
type ActionCode string

const (
	// ActionCallFirstTime indicates a new lead that has never been contacted
	ActionCallFirstTime ActionCode = "call_first_time"

	// ActionSendFollowUp indicates engagement has gone stale since the last interaction
	ActionSendFollowUp ActionCode = "send_follow_up"

	// ActionPrepareForMeeting indicates a meeting is scheduled in the future
	ActionPrepareForMeeting ActionCode = "prepare_for_meeting"

	// ActionQualifyToCompany indicates a highly engaged lead without an open deal
	ActionQualifyToCompany ActionCode = "qualify_to_company"

	// ActionMonitor is the default when no other rule applies
	ActionMonitor ActionCode = "monitor"
)

// IsValid checks if the code is a valid ActionCode value
func (c ActionCode) IsValid() bool {
	switch c {
	case ActionCallFirstTime, ActionSendFollowUp, ActionPrepareForMeeting,
		ActionQualifyToCompany, ActionMonitor:
		return true
	default:
		return false
	}
}

// ActionLabels maps each action code to its fixed display label
var ActionLabels = map[ActionCode]string{
	ActionCallFirstTime:     "Ligar pela primeira vez",
	ActionSendFollowUp:      "Enviar follow-up",
	ActionPrepareForMeeting: "Preparar para a reunião",
	ActionQualifyToCompany:  "Qualificar para empresa",
	ActionMonitor:           "Acompanhar",
}

// ActionResult is the recommended next action for a lead together with a
// human-readable justification
type ActionResult struct {
	Code   ActionCode `json:"code"`
	Label  string     `json:"label"`
	Reason string     `json:"reason"`
}

// NewActionResult creates an ActionResult with the display label for the code
func NewActionResult(code ActionCode, reason string) ActionResult {
	return ActionResult{
		Code:   code,
		Label:  ActionLabels[code],
		Reason: reason,
	}
}
