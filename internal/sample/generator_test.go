package sample

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/invoice-advisor/internal/ingest"
	"github.com/Veraticus/invoice-advisor/internal/model"
)

var today = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42).Rows(50, today)
	b := NewGenerator(42).Rows(50, today)
	c := NewGenerator(43).Rows(50, today)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerator_RowsAreWithinRanges(t *testing.T) {
	rows := NewGenerator(7).Rows(500, today)
	require.Len(t, rows, 500)

	low, high := decimal.NewFromInt(100), decimal.NewFromInt(12000)
	sawBlankTerms := false
	for _, row := range rows {
		amount, err := decimal.NewFromString(row[ingest.ColumnAmount])
		require.NoError(t, err)
		assert.True(t, amount.GreaterThanOrEqual(low) && amount.LessThanOrEqual(high), "amount %s", amount)

		due, err := time.Parse(model.DateLayout, row[ingest.ColumnDueDate])
		require.NoError(t, err)
		days := model.DaysBetween(today, due)
		assert.GreaterOrEqual(t, days, -5)
		assert.LessOrEqual(t, days, 60)

		assert.Contains(t, []string{"20", "10", "5.5"}, row[ingest.ColumnTaxRate])
		assert.Contains(t, Suppliers, row[ingest.ColumnSupplier])

		if row[ingest.ColumnTerms] == "" {
			sawBlankTerms = true
		} else {
			assert.True(t, model.IsKnownTerms(row[ingest.ColumnTerms]))
		}
	}
	assert.True(t, sawBlankTerms, "some invoices lack terms")
}

func TestGenerator_ZeroCount(t *testing.T) {
	assert.Empty(t, NewGenerator(1).Rows(0, today))
	assert.Empty(t, NewGenerator(1).Rows(-3, today))
}

func TestWriteCSV_RoundTripsThroughNormalizer(t *testing.T) {
	rows := NewGenerator(3).Rows(25, today)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	read, err := ingest.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, read)

	records, invalid := ingest.Normalize(read, ingest.DefaultRequired)
	assert.Empty(t, invalid)
	assert.Len(t, records, 25)
	assert.Equal(t, "INV-0001", records[0].ID)
}
