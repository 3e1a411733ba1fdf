// Package ingest turns raw tabular invoice data into validated records.
package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/model"
)

// Canonical column names.
const (
	ColumnID       = "id"
	ColumnSupplier = "supplier"
	ColumnAmount   = "amount"
	ColumnDueDate  = "due_date"
	ColumnTerms    = "payment_terms"
	ColumnTaxRate  = "tax_rate"
)

// DefaultRequired lists the columns every row must carry.
var DefaultRequired = []string{ColumnID, ColumnAmount, ColumnDueDate}

// aliases maps lower-cased header spellings to canonical column names.
var aliases = map[string]string{
	"id":            ColumnID,
	"invoice_id":    ColumnID,
	"invoice":       ColumnID,
	"invoice id":    ColumnID,
	"facture":       ColumnID,
	"numero":        ColumnID,
	"supplier":      ColumnSupplier,
	"vendor":        ColumnSupplier,
	"fournisseur":   ColumnSupplier,
	"amount":        ColumnAmount,
	"total":         ColumnAmount,
	"montant":       ColumnAmount,
	"due_date":      ColumnDueDate,
	"due date":      ColumnDueDate,
	"due":           ColumnDueDate,
	"echeance":      ColumnDueDate,
	"date_echeance": ColumnDueDate,
	"payment_terms": ColumnTerms,
	"payment terms": ColumnTerms,
	"terms":         ColumnTerms,
	"conditions":    ColumnTerms,
	"tax_rate":      ColumnTaxRate,
	"tax rate":      ColumnTaxRate,
	"tax":           ColumnTaxRate,
	"vat":           ColumnTaxRate,
	"tva":           ColumnTaxRate,
}

// Row is one raw input row keyed by column header.
type Row map[string]string

// CanonicalColumn maps a header to its canonical column name. Unknown headers
// are returned lower-cased and are ignored by the normalizer.
func CanonicalColumn(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// canonicalize folds header aliases into canonical keys. When two headers map
// to the same column the first non-empty value in header order wins.
func canonicalize(row Row) map[string]string {
	headers := make([]string, 0, len(row))
	for h := range row {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	out := make(map[string]string, len(row))
	for _, h := range headers {
		col := CanonicalColumn(h)
		value := strings.TrimSpace(row[h])
		if existing, ok := out[col]; ok && existing != "" {
			continue
		}
		out[col] = value
	}
	return out
}

// Normalize builds invoice records from rows. Rows that violate a constraint
// are excluded and reported with their original index; the remaining records
// keep input order. A nil required set means DefaultRequired.
func Normalize(rows []Row, required []string) ([]model.InvoiceRecord, []*common.ValidationError) {
	if required == nil {
		required = DefaultRequired
	}

	records := make([]model.InvoiceRecord, 0, len(rows))
	var invalid []*common.ValidationError
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		record, verr := normalizeRow(i, canonicalize(row), required)
		if verr == nil {
			if first, dup := seen[record.ID]; dup {
				verr = common.NewValidationError(i, ColumnID, record.ID,
					fmt.Errorf("%w: first seen on row %d", common.ErrDuplicateID, first))
			}
		}
		if verr != nil {
			invalid = append(invalid, verr)
			continue
		}
		seen[record.ID] = i
		records = append(records, record)
	}

	return records, invalid
}

func normalizeRow(index int, cols map[string]string, required []string) (model.InvoiceRecord, *common.ValidationError) {
	for _, col := range required {
		if cols[CanonicalColumn(col)] == "" {
			return model.InvoiceRecord{}, common.NewValidationError(index, col, "", common.ErrMissingColumn)
		}
	}

	record := model.InvoiceRecord{
		ID:           cols[ColumnID],
		Supplier:     cols[ColumnSupplier],
		PaymentTerms: cols[ColumnTerms],
	}

	if raw := cols[ColumnAmount]; raw != "" {
		amount, err := ParseAmount(raw)
		if err != nil {
			return model.InvoiceRecord{}, common.NewValidationError(index, ColumnAmount, raw, err)
		}
		record.Amount = amount
	}

	if raw := cols[ColumnDueDate]; raw != "" {
		due, err := ParseDate(raw)
		if err != nil {
			return model.InvoiceRecord{}, common.NewValidationError(index, ColumnDueDate, raw, err)
		}
		record.DueDate = due
	}

	if raw := cols[ColumnTaxRate]; raw != "" {
		rate, err := ParseTaxRate(raw)
		if err != nil {
			return model.InvoiceRecord{}, common.NewValidationError(index, ColumnTaxRate, raw, err)
		}
		record.TaxRate = &rate
	}

	return record, nil
}

// Bounds on accepted numeric cells.
const (
	maxNumberDigits = 18
	maxNumberScale  = 4
)

// parseBoundedDecimal parses a plain decimal literal. Exponent notation is
// refused, as are values with more than maxNumberDigits significant digits or
// more than maxNumberScale fractional digits.
func parseBoundedDecimal(raw string) (decimal.Decimal, string, bool) {
	if strings.ContainsAny(raw, "eE") {
		return decimal.Zero, "exponent notation not accepted", false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "not a number", false
	}
	if d.Exponent() < -maxNumberScale {
		return decimal.Zero, fmt.Sprintf("more than %d decimal places", maxNumberScale), false
	}
	if d.NumDigits() > maxNumberDigits {
		return decimal.Zero, fmt.Sprintf("more than %d digits", maxNumberDigits), false
	}
	return d, "", true
}

// ParseAmount parses a non-negative decimal amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, reason, ok := parseBoundedDecimal(strings.TrimSpace(raw))
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrInvalidAmount, reason)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative", common.ErrInvalidAmount)
	}
	return amount, nil
}

// ParseDate parses an ISO-8601 calendar date. A full timestamp is accepted
// and reduced to its date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(model.DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return model.Day(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD", common.ErrInvalidDate)
}

// ParseTaxRate parses a percentage such as "20", "5.5" or "20%".
func ParseTaxRate(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	rate, reason, ok := parseBoundedDecimal(trimmed)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrInvalidTaxRate, reason)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative", common.ErrInvalidTaxRate)
	}
	return rate, nil
}
