// Package sample produces synthetic invoice batches for demos and tests.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/invoice-advisor/internal/ingest"
	"github.com/Veraticus/invoice-advisor/internal/model"
)

// Columns is the header written by WriteCSV, in order.
var Columns = []string{
	ingest.ColumnID,
	ingest.ColumnSupplier,
	ingest.ColumnAmount,
	ingest.ColumnDueDate,
	ingest.ColumnTerms,
	ingest.ColumnTaxRate,
}

// Suppliers is the pool supplier names are drawn from.
var Suppliers = []string{
	"Acme Office Supply",
	"Blue Ridge Logistics",
	"Cobalt IT Services",
	"Delta Facilities",
	"Evergreen Catering",
	"Fulcrum Legal",
	"Granite Telecom",
	"Harbor Freight Partners",
}

// taxRates is weighted towards the standard rate.
var taxRates = []string{"20", "20", "20", "10", "5.5"}

// termsPool includes a blank entry so some invoices lack terms.
var termsPool = append(append([]string(nil), model.KnownTerms...), "")

const (
	minCents       = 100_00
	maxCents       = 12_000_00
	minDueOffset   = -5
	maxDueOffset   = 60
	idPrefixFormat = "INV-%04d"
)

// Generator draws invoices from an injected random source, so equal seeds
// produce equal batches.
type Generator struct {
	Rand *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Rows produces count raw rows with due dates relative to today.
func (g *Generator) Rows(count int, today time.Time) []ingest.Row {
	rows := make([]ingest.Row, 0, max(count, 0))
	for i := range count {
		rows = append(rows, g.row(i, today))
	}
	return rows
}

func (g *Generator) row(i int, today time.Time) ingest.Row {
	cents := minCents + g.Rand.Int64N(maxCents-minCents+1)
	offset := minDueOffset + g.Rand.IntN(maxDueOffset-minDueOffset+1)

	return ingest.Row{
		ingest.ColumnID:       fmt.Sprintf(idPrefixFormat, i+1),
		ingest.ColumnSupplier: Suppliers[g.Rand.IntN(len(Suppliers))],
		ingest.ColumnAmount:   decimal.New(cents, -2).StringFixed(2),
		ingest.ColumnDueDate:  model.Day(today).AddDate(0, 0, offset).Format(model.DateLayout),
		ingest.ColumnTerms:    termsPool[g.Rand.IntN(len(termsPool))],
		ingest.ColumnTaxRate:  taxRates[g.Rand.IntN(len(taxRates))],
	}
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []ingest.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(Columns))
	for _, row := range rows {
		for i, col := range Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row[ingest.ColumnID], err)
		}
	}
	cw.Flush()
	return cw.Error()
}
