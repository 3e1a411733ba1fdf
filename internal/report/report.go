// Package report renders recommendation lists as paginated documents.
package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/service"
)

// Exporter is implemented by every document format.
type Exporter = service.Exporter

// Format names a supported export format.
type Format string

// Supported formats.
const (
	FormatText   Format = "text"
	FormatPDF    Format = "pdf"
	FormatSheets Format = "sheets"
)

// DefaultTitle heads every exported document.
const DefaultTitle = "Invoice Recommendations"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatPDF, FormatSheets:
		return f, nil
	default:
		return "", common.NewConfigurationError("format",
			fmt.Errorf("%w: unknown export format %q (want text, pdf or sheets)", common.ErrInvalidConfig, s))
	}
}

// New returns the local exporter for f. Sheets exports need credentials and
// are built by the sheets package instead.
func New(f Format, date time.Time) (Exporter, error) {
	switch f {
	case FormatText:
		return NewTextExporter(DefaultLinesPerPage), nil
	case FormatPDF:
		return NewPDFExporter(DefaultTitle, date), nil
	default:
		return nil, fmt.Errorf("no local exporter for format %q", f)
	}
}

func numbered(i int, rec string) string {
	return fmt.Sprintf("%d. %s", i+1, rec)
}
