package model

// PriorityTier is a derived classification of an invoice record.
type PriorityTier string

const (
	// TierUrgent marks records due inside the urgency horizon.
	TierUrgent PriorityTier = "Urgent"
	// TierHighValue marks records above the high-value threshold.
	TierHighValue PriorityTier = "HighValue"
	// TierNormal marks records that are neither urgent nor high value.
	TierNormal PriorityTier = "Normal"
)

// RecommendationKind tags recommendations that do not come from an anomaly.
type RecommendationKind string

const (
	// RecommendEarlyPayment suggests paying early to capture a discount.
	RecommendEarlyPayment RecommendationKind = "EarlyPaymentDiscount"
	// RecommendUrgentPayment asks for payment before the due date slips.
	RecommendUrgentPayment RecommendationKind = "UrgentPayment"
	// RecommendNoAction states that an urgent record needs nothing yet.
	RecommendNoAction RecommendationKind = "NoActionRequired"
	// RecommendHighValueReview asks for a review of a large invoice.
	RecommendHighValueReview RecommendationKind = "HighValueReview"
)

// Recommendation is an advisory message tied to one record. Rank is the
// position in the generated list; lower ranks are displayed first.
type Recommendation struct {
	RecordID string `json:"record_id"`
	Tag      string `json:"tag"`
	Message  string `json:"message"`
	Rank     int    `json:"rank"`
}

// Text renders the recommendation as a single display line.
func (r Recommendation) Text() string {
	return "[" + r.Tag + "] " + r.Message
}

// Texts renders recommendations in order for export collaborators.
func Texts(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.Text()
	}
	return out
}
