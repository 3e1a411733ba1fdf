package model

// AnomalyKind names the rule that produced an anomaly.
type AnomalyKind string

const (
	// AnomalyTaxRateMismatch flags a tax rate different from the expected rate.
	AnomalyTaxRateMismatch AnomalyKind = "TaxRateMismatch"
	// AnomalyBudgetOverrun flags an amount above the budget ceiling.
	AnomalyBudgetOverrun AnomalyKind = "BudgetOverrun"
	// AnomalyMissingPaymentTerms flags a record without payment terms.
	AnomalyMissingPaymentTerms AnomalyKind = "MissingPaymentTerms"
	// AnomalyAmountOutOfRange flags an amount above the large-invoice ceiling.
	AnomalyAmountOutOfRange AnomalyKind = "AmountOutOfRange"
)

// String returns the kind name.
func (k AnomalyKind) String() string {
	return string(k)
}

// Anomaly is a rule violation found on one invoice record.
type Anomaly struct {
	RecordID string      `json:"record_id"`
	Kind     AnomalyKind `json:"kind"`
	Message  string      `json:"message"`
}
