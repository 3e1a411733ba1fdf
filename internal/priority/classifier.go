// Package priority partitions invoice records into urgency and value tiers.
package priority

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

// Config holds the tier thresholds.
type Config struct {
	HighValueThreshold decimal.Decimal
	HorizonDays        int
}

// DefaultConfig returns a 10 day urgency horizon and a 3000 high-value threshold.
func DefaultConfig() Config {
	return Config{HorizonDays: 10, HighValueThreshold: decimal.NewFromInt(3000)}
}

// Partition holds the urgent and high-value subsets of a batch. A record may
// appear in both. Each subset keeps input order.
type Partition struct {
	Urgent    []model.InvoiceRecord
	HighValue []model.InvoiceRecord
}

// Classifier assigns priority tiers relative to a fixed day.
type Classifier struct {
	today time.Time
	cfg   Config
}

// NewClassifier creates a classifier anchored at today.
func NewClassifier(today time.Time, cfg Config) *Classifier {
	return &Classifier{today: model.Day(today), cfg: cfg}
}

// IsUrgent reports whether the record is due strictly before today + horizon.
// Overdue records are urgent.
func (c *Classifier) IsUrgent(record model.InvoiceRecord) bool {
	cutoff := c.today.AddDate(0, 0, c.cfg.HorizonDays)
	return model.Day(record.DueDate).Before(cutoff)
}

// IsHighValue reports whether the amount is strictly above the threshold.
func (c *Classifier) IsHighValue(record model.InvoiceRecord) bool {
	return record.Amount.GreaterThan(c.cfg.HighValueThreshold)
}

// Tiers returns the tiers of a record in Urgent, HighValue order, or Normal
// alone when neither applies.
func (c *Classifier) Tiers(record model.InvoiceRecord) []model.PriorityTier {
	var tiers []model.PriorityTier
	if c.IsUrgent(record) {
		tiers = append(tiers, model.TierUrgent)
	}
	if c.IsHighValue(record) {
		tiers = append(tiers, model.TierHighValue)
	}
	if len(tiers) == 0 {
		tiers = append(tiers, model.TierNormal)
	}
	return tiers
}

// Partition splits records into urgent and high-value subsets.
func (c *Classifier) Partition(records []model.InvoiceRecord) Partition {
	var p Partition
	for _, r := range records {
		if c.IsUrgent(r) {
			p.Urgent = append(p.Urgent, r)
		}
		if c.IsHighValue(r) {
			p.HighValue = append(p.HighValue, r)
		}
	}
	return p
}

// Classify is a convenience wrapper around Classifier.Partition.
func Classify(records []model.InvoiceRecord, today time.Time, horizonDays int, threshold decimal.Decimal) Partition {
	return NewClassifier(today, Config{HorizonDays: horizonDays, HighValueThreshold: threshold}).Partition(records)
}

// Tiers is a convenience wrapper around Classifier.Tiers.
func Tiers(record model.InvoiceRecord, today time.Time, cfg Config) []model.PriorityTier {
	return NewClassifier(today, cfg).Tiers(record)
}
