package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/config"
	"github.com/Veraticus/invoice-advisor/internal/model"
	"github.com/Veraticus/invoice-advisor/internal/priority"
	"github.com/Veraticus/invoice-advisor/internal/recommend"
	"github.com/Veraticus/invoice-advisor/internal/rules"
	"github.com/Veraticus/invoice-advisor/internal/summary"
)

// Config holds every threshold used by one analysis run.
type Config struct {
	Rules            rules.Config
	Priority         priority.Config
	Recommend        recommend.Config
	SummaryMaxChars  int
	AssistantTimeout time.Duration
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Rules:            rules.DefaultConfig(),
		Priority:         priority.DefaultConfig(),
		Recommend:        recommend.DefaultConfig(),
		SummaryMaxChars:  summary.DefaultMaxChars,
		AssistantTimeout: 30 * time.Second,
	}
}

// ConfigFromTunables converts loaded configuration into engine thresholds.
func ConfigFromTunables(t config.Tunables) Config {
	return Config{
		Rules: rules.Config{
			ExpectedTaxRate:     decimal.NewFromFloat(t.ExpectedTaxRate),
			BudgetCeiling:       decimal.NewFromFloat(t.BudgetCeiling),
			LargeInvoiceCeiling: decimal.NewFromFloat(t.LargeInvoiceCeiling),
		},
		Priority: priority.Config{
			HorizonDays:        t.UrgencyHorizonDays,
			HighValueThreshold: decimal.NewFromFloat(t.HighValueThreshold),
		},
		Recommend: recommend.Config{
			DiscountWindowDays: t.DiscountWindowDays,
			UrgentWindowDays:   t.UrgentWindowDays,
		},
		SummaryMaxChars:  t.SummaryMaxChars,
		AssistantTimeout: t.AssistantTimeout,
	}
}

// Options controls a single run.
type Options struct {
	// Today anchors days-remaining and urgency. Zero means the current date.
	Today time.Time
	// Required overrides the required column set.
	Required []string
}

// Result is the complete output of one analysis run. It is never modified
// after Run returns.
type Result struct {
	Today           time.Time
	RunID           string
	Summary         string
	Records         []model.InvoiceRecord
	Invalid         []*common.ValidationError
	Anomalies       []model.Anomaly
	Urgent          []model.InvoiceRecord
	HighValue       []model.InvoiceRecord
	Recommendations []model.Recommendation
}

// RecommendationTexts renders the recommendations in display order.
func (r *Result) RecommendationTexts() []string {
	return model.Texts(r.Recommendations)
}

// HasAnomalies reports whether any rule fired.
func (r *Result) HasAnomalies() bool {
	return len(r.Anomalies) > 0
}

// Reply is the outcome of one assistant question. When the assistant fails,
// Text holds an advisory message and Err the CollaboratorError.
type Reply struct {
	Err  error
	Text string
}

// Failed reports whether the assistant could not answer.
func (r Reply) Failed() bool {
	return r.Err != nil
}
