package analysis

// ReviewAction is a decision a reviewer can take on an invoice with anomalies.
type ReviewAction string

const (
	// ActionApprove validates the invoice despite the anomaly.
	ActionApprove ReviewAction = "approve"
	// ActionReturn sends the invoice back to the supplier for correction.
	ActionReturn ReviewAction = "return"
	// ActionEscalate hands the decision to a manager.
	ActionEscalate ReviewAction = "escalate"
)

// ReviewActions lists the reviewer actions in display order.
func ReviewActions() []ReviewAction {
	return []ReviewAction{ActionApprove, ActionReturn, ActionEscalate}
}

// Label returns the text shown next to the action.
func (a ReviewAction) Label() string {
	switch a {
	case ActionApprove:
		return "Approve the invoice despite the anomaly"
	case ActionReturn:
		return "Return to the supplier for correction"
	case ActionEscalate:
		return "Escalate to a manager for a decision"
	default:
		return string(a)
	}
}

// Outcome returns the confirmation shown once the action is chosen.
func (a ReviewAction) Outcome() string {
	switch a {
	case ActionApprove:
		return "Invoice approved despite the anomaly."
	case ActionReturn:
		return "Invoice returned to the supplier for correction."
	case ActionEscalate:
		return "Invoice escalated to a manager."
	default:
		return ""
	}
}

// ParseReviewAction accepts an action name or its 1-based menu number.
func ParseReviewAction(s string) (ReviewAction, bool) {
	for i, a := range ReviewActions() {
		if s == string(a) || s == string(rune('1'+i)) {
			return a, true
		}
	}
	return "", false
}
