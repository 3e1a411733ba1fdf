// Package model holds the value types shared by the invoice analysis pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for due dates on input and output.
const DateLayout = "2006-01-02"

// Known payment-terms descriptors.
const (
	TermsEarlyDiscount = "2/10 Net 30"
	TermsNet15         = "Net 15"
	TermsNet30         = "Net 30"
	TermsNet45         = "Net 45"
	TermsStandard      = "Standard"
)

// KnownTerms lists the payment-terms descriptors suppliers normally use.
var KnownTerms = []string{TermsEarlyDiscount, TermsNet15, TermsNet30, TermsNet45, TermsStandard}

// InvoiceRecord is a single validated invoice. Records are built once by the
// normalizer and never modified afterwards.
type InvoiceRecord struct {
	DueDate      time.Time
	TaxRate      *decimal.Decimal // percentage, 20 means 20%
	ID           string
	Supplier     string
	PaymentTerms string
	Amount       decimal.Decimal
}

// HasPaymentTerms reports whether a payment-terms descriptor was supplied.
func (r InvoiceRecord) HasPaymentTerms() bool {
	return r.PaymentTerms != ""
}

// DaysUntilDue returns the whole calendar days between today and the due date.
// Overdue invoices yield a negative count.
func (r InvoiceRecord) DaysUntilDue(today time.Time) int {
	return DaysBetween(today, r.DueDate)
}

// IsKnownTerms reports whether terms is one of the standard descriptors.
func IsKnownTerms(terms string) bool {
	for _, known := range KnownTerms {
		if terms == known {
			return true
		}
	}
	return false
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts calendar days from start to end, ignoring time of day.
// Unix seconds are used so spans beyond the range of time.Duration stay exact.
func DaysBetween(start, end time.Time) int {
	return int((Day(end).Unix() - Day(start).Unix()) / secondsPerDay)
}
