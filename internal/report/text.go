package report

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/invoice-advisor/internal/common"
)

// DefaultLinesPerPage is the page length of text exports.
const DefaultLinesPerPage = 50

// pageBreak separates pages in text exports.
const pageBreak = "\f"

// TextExporter writes numbered recommendation lines with a form feed between
// pages.
type TextExporter struct {
	linesPerPage int
}

// NewTextExporter creates a text exporter. Non-positive page lengths fall
// back to DefaultLinesPerPage.
func NewTextExporter(linesPerPage int) *TextExporter {
	if linesPerPage <= 0 {
		linesPerPage = DefaultLinesPerPage
	}
	return &TextExporter{linesPerPage: linesPerPage}
}

// Export writes recommendations to w.
func (e *TextExporter) Export(ctx context.Context, w io.Writer, recommendations []string) error {
	bw := bufio.NewWriter(w)
	for i, rec := range recommendations {
		if err := ctx.Err(); err != nil {
			return common.NewCollaboratorError("text export", err)
		}
		if i > 0 && i%e.linesPerPage == 0 {
			if _, err := bw.WriteString(pageBreak); err != nil {
				return common.NewCollaboratorError("text export", err)
			}
		}
		if _, err := fmt.Fprintln(bw, numbered(i, rec)); err != nil {
			return common.NewCollaboratorError("text export", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return common.NewCollaboratorError("text export", err)
	}
	return nil
}
