// Package rules detects anomalies on invoice records. Each rule is an
// independent named predicate; the detector evaluates them in declaration
// order for every record.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

// Config holds the thresholds used by the stock rules.
type Config struct {
	ExpectedTaxRate     decimal.Decimal
	BudgetCeiling       decimal.Decimal
	LargeInvoiceCeiling decimal.Decimal
}

// DefaultConfig returns the stock thresholds: 20% tax, 5000 budget ceiling and
// 10000 large-invoice ceiling.
func DefaultConfig() Config {
	return Config{
		ExpectedTaxRate:     decimal.NewFromInt(20),
		BudgetCeiling:       decimal.NewFromInt(5000),
		LargeInvoiceCeiling: decimal.NewFromInt(10000),
	}
}

// Rule checks one record and returns a message when it fires. Check must be
// total over well-formed records and must not mutate anything.
type Rule interface {
	Kind() model.AnomalyKind
	Check(record model.InvoiceRecord) (message string, fired bool)
}

// RuleFunc adapts a plain function into a Rule.
type RuleFunc struct {
	Fn   func(record model.InvoiceRecord) (string, bool)
	Name model.AnomalyKind
}

// Kind returns the anomaly kind the function reports.
func (f RuleFunc) Kind() model.AnomalyKind { return f.Name }

// Check runs the function.
func (f RuleFunc) Check(record model.InvoiceRecord) (string, bool) { return f.Fn(record) }

// DefaultRules returns the stock rule set in declaration order.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		TaxRateRule{Expected: cfg.ExpectedTaxRate},
		BudgetRule{Ceiling: cfg.BudgetCeiling},
		LargeInvoiceRule{Ceiling: cfg.LargeInvoiceCeiling},
		MissingTermsRule{},
	}
}

// TaxRateRule fires when a present tax rate differs from Expected. The
// comparison is exact.
type TaxRateRule struct {
	Expected decimal.Decimal
}

// Kind implements Rule.
func (TaxRateRule) Kind() model.AnomalyKind { return model.AnomalyTaxRateMismatch }

// Check implements Rule.
func (r TaxRateRule) Check(record model.InvoiceRecord) (string, bool) {
	if record.TaxRate == nil || record.TaxRate.Equal(r.Expected) {
		return "", false
	}
	return fmt.Sprintf("invoice %s: tax rate %s%% differs from expected %s%%",
		record.ID, record.TaxRate.String(), r.Expected.String()), true
}

// BudgetRule fires when the amount is strictly above Ceiling.
type BudgetRule struct {
	Ceiling decimal.Decimal
}

// Kind implements Rule.
func (BudgetRule) Kind() model.AnomalyKind { return model.AnomalyBudgetOverrun }

// Check implements Rule.
func (r BudgetRule) Check(record model.InvoiceRecord) (string, bool) {
	if !record.Amount.GreaterThan(r.Ceiling) {
		return "", false
	}
	return fmt.Sprintf("invoice %s: amount %s exceeds budget ceiling %s",
		record.ID, record.Amount.StringFixed(2), r.Ceiling.StringFixed(2)), true
}

// LargeInvoiceRule fires when the amount is strictly above Ceiling. It is
// independent of BudgetRule; both may fire on the same record.
type LargeInvoiceRule struct {
	Ceiling decimal.Decimal
}

// Kind implements Rule.
func (LargeInvoiceRule) Kind() model.AnomalyKind { return model.AnomalyAmountOutOfRange }

// Check implements Rule.
func (r LargeInvoiceRule) Check(record model.InvoiceRecord) (string, bool) {
	if !record.Amount.GreaterThan(r.Ceiling) {
		return "", false
	}
	return fmt.Sprintf("invoice %s: amount %s exceeds large-invoice ceiling %s",
		record.ID, record.Amount.StringFixed(2), r.Ceiling.StringFixed(2)), true
}

// MissingTermsRule fires when no payment terms were supplied.
type MissingTermsRule struct{}

// Kind implements Rule.
func (MissingTermsRule) Kind() model.AnomalyKind { return model.AnomalyMissingPaymentTerms }

// Check implements Rule.
func (MissingTermsRule) Check(record model.InvoiceRecord) (string, bool) {
	if record.HasPaymentTerms() {
		return "", false
	}
	return fmt.Sprintf("invoice %s: payment terms are missing", record.ID), true
}
