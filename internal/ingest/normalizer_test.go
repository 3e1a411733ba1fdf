package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/invoice-advisor/internal/common"
)

func TestNormalize_ValidRows(t *testing.T) {
	rows := []Row{
		{"invoice_id": "INV-1", "supplier": "Acme", "amount": "6000", "due_date": "2024-05-04", "payment_terms": "2/10 Net 30", "tax_rate": "20"},
		{"id": "INV-2", "vendor": "Globex", "amount": "2000.50", "due_date": "2024-06-10", "terms": "Net 30", "tax": "15%"},
		{"id": "INV-3", "amount": "11000", "due_date": "2024-05-03"},
	}

	records, invalid := Normalize(rows, nil)
	require.Empty(t, invalid)
	require.Len(t, records, 3)

	assert.Equal(t, "INV-1", records[0].ID)
	assert.Equal(t, "Acme", records[0].Supplier)
	assert.True(t, decimal.NewFromInt(6000).Equal(records[0].Amount))
	assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), records[0].DueDate)
	assert.Equal(t, "2/10 Net 30", records[0].PaymentTerms)
	require.NotNil(t, records[0].TaxRate)
	assert.True(t, decimal.NewFromInt(20).Equal(*records[0].TaxRate))

	assert.Equal(t, "Globex", records[1].Supplier)
	assert.Equal(t, "2000.5", records[1].Amount.String())
	require.NotNil(t, records[1].TaxRate)
	assert.Equal(t, "15", records[1].TaxRate.String())

	assert.Nil(t, records[2].TaxRate)
	assert.False(t, records[2].HasPaymentTerms())
}

func TestNormalize_FrenchHeaders(t *testing.T) {
	rows := []Row{
		{"Facture": "F-9", "Fournisseur": "Dupont", "Montant": "4200", "Echeance": "2024-07-01", "TVA": "5.5"},
	}

	records, invalid := Normalize(rows, nil)
	require.Empty(t, invalid)
	require.Len(t, records, 1)
	assert.Equal(t, "F-9", records[0].ID)
	assert.Equal(t, "Dupont", records[0].Supplier)
	assert.Equal(t, "5.5", records[0].TaxRate.String())
}

func TestNormalize_InvalidRows(t *testing.T) {
	tests := []struct {
		name    string
		row     Row
		column  string
		wantErr error
	}{
		{
			name:    "non-numeric amount",
			row:     Row{"id": "X", "amount": "abc", "due_date": "2024-01-01"},
			column:  ColumnAmount,
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			row:     Row{"id": "X", "amount": "-5", "due_date": "2024-01-01"},
			column:  ColumnAmount,
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "bad date",
			row:     Row{"id": "X", "amount": "5", "due_date": "01/02/2024"},
			column:  ColumnDueDate,
			wantErr: common.ErrInvalidDate,
		},
		{
			name:    "missing id",
			row:     Row{"amount": "5", "due_date": "2024-01-01"},
			column:  ColumnID,
			wantErr: common.ErrMissingColumn,
		},
		{
			name:    "blank amount",
			row:     Row{"id": "X", "amount": "  ", "due_date": "2024-01-01"},
			column:  ColumnAmount,
			wantErr: common.ErrMissingColumn,
		},
		{
			name:    "bad tax rate",
			row:     Row{"id": "X", "amount": "5", "due_date": "2024-01-01", "tva": "twenty"},
			column:  ColumnTaxRate,
			wantErr: common.ErrInvalidTaxRate,
		},
		{
			name:    "huge exponent amount",
			row:     Row{"id": "X", "amount": "1e400000000", "due_date": "2024-01-01"},
			column:  ColumnAmount,
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "huge exponent tax rate",
			row:     Row{"id": "X", "amount": "5", "due_date": "2024-01-01", "tax_rate": "2E400000000%"},
			column:  ColumnTaxRate,
			wantErr: common.ErrInvalidTaxRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, invalid := Normalize([]Row{tt.row}, nil)
			assert.Empty(t, records)
			require.Len(t, invalid, 1)
			assert.Equal(t, 0, invalid[0].Row)
			assert.Equal(t, tt.column, invalid[0].Column)
			assert.True(t, errors.Is(invalid[0], tt.wantErr), "got %v", invalid[0])
		})
	}
}

func TestNormalize_InvalidRowKeepsOriginalIndex(t *testing.T) {
	rows := []Row{
		{"id": "A", "amount": "10", "due_date": "2024-01-01"},
		{"id": "B", "amount": "ten", "due_date": "2024-01-01"},
		{"id": "C", "amount": "30", "due_date": "2024-01-03"},
	}

	records, invalid := Normalize(rows, nil)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].ID)
	assert.Equal(t, "C", records[1].ID)

	require.Len(t, invalid, 1)
	assert.Equal(t, 1, invalid[0].Row)
	assert.Contains(t, invalid[0].Error(), "row 1")
}

func TestNormalize_DuplicateID(t *testing.T) {
	rows := []Row{
		{"id": "A", "amount": "10", "due_date": "2024-01-01"},
		{"id": "A", "amount": "20", "due_date": "2024-01-02"},
	}

	records, invalid := Normalize(rows, nil)
	require.Len(t, records, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(records[0].Amount))
	require.Len(t, invalid, 1)
	assert.ErrorIs(t, invalid[0], common.ErrDuplicateID)
	assert.Equal(t, 1, invalid[0].Row)
}

func TestNormalize_CustomRequiredSet(t *testing.T) {
	rows := []Row{{"id": "A", "amount": "10", "due_date": "2024-01-01"}}

	_, invalid := Normalize(rows, []string{ColumnID, ColumnAmount, ColumnDueDate, ColumnSupplier})
	require.Len(t, invalid, 1)
	assert.Equal(t, ColumnSupplier, invalid[0].Column)
	assert.ErrorIs(t, invalid[0], common.ErrMissingColumn)
}

func TestNormalize_IgnoresUnknownColumns(t *testing.T) {
	rows := []Row{{"id": "A", "amount": "10", "due_date": "2024-01-01", "color": "blue"}}

	records, invalid := Normalize(rows, nil)
	assert.Empty(t, invalid)
	require.Len(t, records, 1)
}

func TestParseDate_AcceptsTimestamp(t *testing.T) {
	got, err := ParseDate("2024-03-09T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestParseAmount_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "integer", raw: "12000", want: "12000"},
		{name: "cents", raw: "2000.50", want: "2000.5"},
		{name: "four decimals", raw: "0.0001", want: "0.0001"},
		{name: "eighteen digits", raw: "999999999999999999", want: "999999999999999999"},
		{name: "lowercase exponent", raw: "1e400000000", wantErr: true},
		{name: "uppercase exponent", raw: "1E3", wantErr: true},
		{name: "negative exponent", raw: "5e-3", wantErr: true},
		{name: "too many decimals", raw: "0.000001", wantErr: true},
		{name: "too many digits", raw: "1234567890123456789", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTaxRate_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "percent suffix", raw: "20%", want: "20"},
		{name: "fraction", raw: "5.5", want: "5.5"},
		{name: "exponent", raw: "1e400000000", wantErr: true},
		{name: "exponent with percent", raw: "2E1%", wantErr: true},
		{name: "too many decimals", raw: "5.123456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaxRate(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidTaxRate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
