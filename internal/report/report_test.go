package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/invoice-advisor/internal/common"
)

var (
	date    = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	modDate = regexp.MustCompile(`/ModDate \([^)]*\)`)
)

func recs(n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = fmt.Sprintf("[UrgentPayment] invoice INV-%03d: schedule payment", i)
	}
	return out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "pdf", want: FormatPDF},
		{in: "sheets", want: FormatSheets},
		{in: "docx", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				var cfgErr *common.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	e, err := New(FormatText, date)
	require.NoError(t, err)
	assert.IsType(t, &TextExporter{}, e)

	e, err = New(FormatPDF, date)
	require.NoError(t, err)
	assert.IsType(t, &PDFExporter{}, e)

	_, err = New(FormatSheets, date)
	assert.Error(t, err)
}

func TestTextExporter(t *testing.T) {
	var buf bytes.Buffer
	err := NewTextExporter(2).Export(context.Background(), &buf, []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	assert.Equal(t, "1. a\n2. b\n\f3. c\n4. d\n\f5. e\n", buf.String())
}

func TestTextExporter_DefaultPageLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextExporter(0).Export(context.Background(), &buf, recs(120)))

	pages := strings.Split(buf.String(), "\f")
	require.Len(t, pages, 3)
	assert.Equal(t, DefaultLinesPerPage, strings.Count(pages[0], "\n"))
	assert.Equal(t, 20, strings.Count(pages[2], "\n"))
}

func TestTextExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextExporter(5).Export(context.Background(), &buf, nil))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportFailuresAreCollaboratorErrors(t *testing.T) {
	exporters := map[string]Exporter{
		"text": NewTextExporter(10),
		"pdf":  NewPDFExporter("", date),
	}
	for name, e := range exporters {
		t.Run(name, func(t *testing.T) {
			input := recs(3)
			before := append([]string(nil), input...)

			err := e.Export(context.Background(), failingWriter{}, input)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrCollaborator)
			assert.Equal(t, before, input)
		})
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPDFExporter("", date).Export(ctx, &bytes.Buffer{}, recs(1))
	assert.ErrorIs(t, err, context.Canceled)
	err = NewTextExporter(10).Export(ctx, &bytes.Buffer{}, recs(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter("", date).Export(context.Background(), &buf, recs(150)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, bytes.Count(out, []byte("/Type /Page\n")), 1, "long lists span pages")
}

func TestPDFExporter_ByteStable(t *testing.T) {
	render := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, NewPDFExporter("Batch", date).Export(context.Background(), &buf, recs(10)))
		// Only the modification stamp may differ between runs.
		return modDate.ReplaceAll(buf.Bytes(), nil)
	}
	assert.Equal(t, render(), render())
}

func TestPDFExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter("", date).Export(context.Background(), &buf, nil))
	assert.NotZero(t, buf.Len())
}
