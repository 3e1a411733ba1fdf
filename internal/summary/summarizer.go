// Package summary renders invoice records into a bounded plain-text block for
// the assistant.
package summary

import (
	"fmt"
	"strings"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

// DefaultMaxChars is the stock character budget.
const DefaultMaxChars = 4000

// MinMaxChars is the smallest budget that still fits a truncation marker.
const MinMaxChars = 64

// NoTerms is written in place of absent payment terms.
const NoTerms = "none"

// Summarizer renders records one per line within a character budget.
type Summarizer struct {
	maxChars int
}

// NewSummarizer creates a summarizer. Budgets below MinMaxChars are raised to
// MinMaxChars.
func NewSummarizer(maxChars int) *Summarizer {
	return &Summarizer{maxChars: max(maxChars, MinMaxChars)}
}

// Line renders a single record.
func Line(r model.InvoiceRecord) string {
	terms := r.PaymentTerms
	if terms == "" {
		terms = NoTerms
	}
	return fmt.Sprintf("invoice %s amount %s due %s terms %s",
		r.ID, r.Amount.StringFixed(2), r.DueDate.Format(model.DateLayout), terms)
}

// TruncationMarker is appended when n trailing records did not fit.
func TruncationMarker(n int) string {
	return fmt.Sprintf("[... %d more invoices truncated]", n)
}

// Summarize joins one line per record with newlines. When the text would
// exceed the budget, trailing records are dropped and a truncation marker
// takes their place; records are never dropped from the middle.
func (s *Summarizer) Summarize(records []model.InvoiceRecord) string {
	lines := make([]string, len(records))
	total := 0
	for i, r := range records {
		lines[i] = Line(r)
		total += len(lines[i])
	}
	total += max(len(lines)-1, 0)
	if total <= s.maxChars {
		return strings.Join(lines, "\n")
	}

	// Keep the longest prefix that fits together with its marker.
	var b strings.Builder
	used := 0
	kept := 0
	for i, line := range lines {
		marker := TruncationMarker(len(lines) - i - 1)
		need := len(line) + 1 + len(marker)
		if i > 0 {
			need++
		}
		if used+need > s.maxChars {
			break
		}
		if i > 0 {
			b.WriteByte('\n')
			used++
		}
		b.WriteString(line)
		used += len(line)
		kept++
	}

	if kept > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(TruncationMarker(len(lines) - kept))
	return b.String()
}
