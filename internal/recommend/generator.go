// Package recommend turns anomalies and priority tiers into an ordered list of
// advisory messages.
package recommend

import (
	"fmt"
	"time"

	"github.com/Veraticus/invoice-advisor/internal/model"
	"github.com/Veraticus/invoice-advisor/internal/priority"
)

// Config holds the day windows used for urgent records.
type Config struct {
	DiscountWindowDays int
	UrgentWindowDays   int
}

// DefaultConfig returns a 10 day discount window and a 5 day urgent window.
func DefaultConfig() Config {
	return Config{DiscountWindowDays: 10, UrgentWindowDays: 5}
}

// Generator builds recommendation lists. It holds no state between calls.
type Generator struct {
	today time.Time
	cfg   Config
}

// NewGenerator creates a generator that measures days remaining from today.
func NewGenerator(today time.Time, cfg Config) *Generator {
	return &Generator{today: model.Day(today), cfg: cfg}
}

// Generate returns anomaly recommendations in detector order, then one
// recommendation per urgent record, then one per high-value record. Rank is
// the position in the returned list.
func (g *Generator) Generate(anomalies []model.Anomaly, partition priority.Partition) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(anomalies)+len(partition.Urgent)+len(partition.HighValue))

	add := func(id, tag, msg string) {
		recs = append(recs, model.Recommendation{RecordID: id, Tag: tag, Message: msg, Rank: len(recs)})
	}

	for _, a := range anomalies {
		add(a.RecordID, string(a.Kind), a.Message)
	}
	for _, r := range partition.Urgent {
		kind, msg := g.UrgentAdvice(r)
		add(r.ID, string(kind), msg)
	}
	for _, r := range partition.HighValue {
		add(r.ID, string(model.RecommendHighValueReview), fmt.Sprintf(
			"invoice %s from %s: amount %s requires review before payment",
			r.ID, supplierName(r), r.Amount.StringFixed(2)))
	}
	return recs
}

// UrgentAdvice picks the single advice for an urgent record. Early payment
// wins over urgent payment, which wins over no action.
func (g *Generator) UrgentAdvice(r model.InvoiceRecord) (model.RecommendationKind, string) {
	days := r.DaysUntilDue(g.today)
	due := r.DueDate.Format(model.DateLayout)

	switch {
	case IsEarlyDiscountTerms(r.PaymentTerms) && days <= g.cfg.DiscountWindowDays:
		return model.RecommendEarlyPayment, fmt.Sprintf(
			"invoice %s: pay now to capture the %s early-payment discount (due %s, %s)",
			r.ID, model.TermsEarlyDiscount, due, daysPhrase(days))
	case days <= g.cfg.UrgentWindowDays:
		return model.RecommendUrgentPayment, fmt.Sprintf(
			"invoice %s: schedule payment of %s urgently (due %s, %s)",
			r.ID, r.Amount.StringFixed(2), due, daysPhrase(days))
	default:
		return model.RecommendNoAction, fmt.Sprintf(
			"invoice %s: due %s, no action required yet (%s)",
			r.ID, due, daysPhrase(days))
	}
}

// IsEarlyDiscountTerms reports whether terms is exactly the early-payment
// discount descriptor.
func IsEarlyDiscountTerms(terms string) bool {
	return terms == model.TermsEarlyDiscount
}

func daysPhrase(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day remaining"
	default:
		return fmt.Sprintf("%d days remaining", days)
	}
}

func supplierName(r model.InvoiceRecord) string {
	if r.Supplier == "" {
		return "unknown supplier"
	}
	return r.Supplier
}
