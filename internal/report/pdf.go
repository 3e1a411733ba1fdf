package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Veraticus/invoice-advisor/internal/common"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// PDFExporter renders recommendations into an A4 document with a title and
// numbered footer. The creation date is pinned to the analysis date.
type PDFExporter struct {
	date  time.Time
	title string
}

// NewPDFExporter creates a PDF exporter stamped with date.
func NewPDFExporter(title string, date time.Time) *PDFExporter {
	if title == "" {
		title = DefaultTitle
	}
	return &PDFExporter{title: title, date: date.UTC()}
}

// Export writes the PDF document to w.
func (e *PDFExporter) Export(ctx context.Context, w io.Writer, recommendations []string) error {
	if err := ctx.Err(); err != nil {
		return common.NewCollaboratorError("pdf export", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(e.date)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(e.title, true)
	pdf.SetCreator("afi", true)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(e.title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, lineHeight, e.date.Format(time.DateOnly), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	if len(recommendations) == 0 {
		pdf.MultiCell(0, lineHeight, "No recommendations.", "", "L", false)
	}
	for i, rec := range recommendations {
		pdf.MultiCell(0, lineHeight, tr(numbered(i, rec)), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return common.NewCollaboratorError("pdf export", fmt.Errorf("failed to render pdf: %w", err))
	}
	return nil
}
