package rules

import (
	"iter"
	"slices"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

// Detector evaluates a fixed rule list against invoice records.
type Detector struct {
	rules []Rule
}

// NewDetector creates a detector. Rules run in the order given.
func NewDetector(rules ...Rule) *Detector {
	return &Detector{rules: slices.Clone(rules)}
}

// NewDefaultDetector creates a detector with the stock rules.
func NewDefaultDetector(cfg Config) *Detector {
	return NewDetector(DefaultRules(cfg)...)
}

// With returns a new detector with extra rules appended after the existing ones.
func (d *Detector) With(extra ...Rule) *Detector {
	return NewDetector(append(slices.Clone(d.rules), extra...)...)
}

// Rules returns the rule kinds in evaluation order.
func (d *Detector) Rules() []model.AnomalyKind {
	kinds := make([]model.AnomalyKind, len(d.rules))
	for i, r := range d.rules {
		kinds[i] = r.Kind()
	}
	return kinds
}

// Detect lazily yields anomalies in record order, then rule order.
func (d *Detector) Detect(records []model.InvoiceRecord) iter.Seq[model.Anomaly] {
	return func(yield func(model.Anomaly) bool) {
		for _, record := range records {
			for _, rule := range d.rules {
				msg, fired := rule.Check(record)
				if !fired {
					continue
				}
				if !yield(model.Anomaly{RecordID: record.ID, Kind: rule.Kind(), Message: msg}) {
					return
				}
			}
		}
	}
}

// DetectAll collects every anomaly for records.
func (d *Detector) DetectAll(records []model.InvoiceRecord) []model.Anomaly {
	return slices.Collect(d.Detect(records))
}
