package sheets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/service"
)

// ProgressFunc reports that done of total rows were written.
type ProgressFunc func(done, total int)

// Header is the first row of the exported sheet.
var Header = []any{"Rank", "Tag", "Recommendation"}

// Writer exports recommendation lists to a spreadsheet. It implements
// service.Exporter; the spreadsheet URL is written to the export writer.
type Writer struct {
	api        spreadsheetAPI
	logger     *slog.Logger
	onProgress ProgressFunc
	config     Config
}

var _ service.Exporter = (*Writer)(nil)

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriterWithAPI(&googleAPI{service: srv}, config, logger), nil
}

func newWriterWithAPI(api spreadsheetAPI, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{api: api, config: config, logger: logger}
}

// OnProgress registers a callback invoked after every written batch.
func (w *Writer) OnProgress(fn ProgressFunc) {
	w.onProgress = fn
}

// Export clears the sheet and writes one row per recommendation.
func (w *Writer) Export(ctx context.Context, out io.Writer, recommendations []string) error {
	w.logger.Info("starting sheets export", "recommendations", len(recommendations))

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
	}

	spreadsheet, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return common.NewCollaboratorError("sheets", fmt.Errorf("failed to get spreadsheet: %w", err))
	}
	spreadsheetID := spreadsheet.SpreadsheetId

	sheetID, err := w.sheetID(ctx, spreadsheet)
	if err != nil {
		return common.NewCollaboratorError("sheets", fmt.Errorf("failed to prepare sheet: %w", err))
	}

	sheetRange := quoteSheet(w.config.SheetName)
	if err := common.WithRetry(ctx, func() error {
		return w.api.Clear(ctx, spreadsheetID, sheetRange+"!A:C")
	}, retryOpts); err != nil {
		return common.NewCollaboratorError("sheets", fmt.Errorf("failed to clear sheet: %w", err))
	}

	values := Rows(recommendations)
	if err := w.writeData(ctx, spreadsheetID, values, retryOpts); err != nil {
		return common.NewCollaboratorError("sheets", fmt.Errorf("failed to write data: %w", err))
	}

	if w.config.EnableFormatting {
		if err := common.WithRetry(ctx, func() error {
			return w.api.BatchUpdate(ctx, spreadsheetID, formatRequests(sheetID))
		}, retryOpts); err != nil {
			// Formatting is cosmetic.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	if _, err := fmt.Fprintln(out, spreadsheet.SpreadsheetUrl); err != nil {
		return fmt.Errorf("failed to write spreadsheet URL: %w", err)
	}
	return nil
}

// Rows converts recommendation texts into sheet rows, splitting a leading
// "[Tag] " prefix into its own column.
func Rows(recommendations []string) [][]any {
	values := make([][]any, 0, len(recommendations)+1)
	values = append(values, Header)
	for i, text := range recommendations {
		tag, msg := splitTag(text)
		values = append(values, []any{i + 1, tag, msg})
	}
	return values
}

func splitTag(text string) (string, string) {
	if strings.HasPrefix(text, "[") {
		if end := strings.Index(text, "] "); end > 0 {
			return text[1:end], text[end+2:]
		}
	}
	return "", text
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.api.Get(ctx, w.config.SpreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return existing, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: w.config.SheetName}},
		},
	}

	created, err := w.api.Create(ctx, spreadsheet)
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created, nil
}

// sheetID returns the id of the configured tab, adding the tab when the
// spreadsheet does not have it yet.
func (w *Writer) sheetID(ctx context.Context, spreadsheet *sheets.Spreadsheet) (int64, error) {
	name := w.config.SheetName
	if id, ok := findSheet(spreadsheet, name); ok {
		return id, nil
	}

	w.logger.Info("adding sheet tab", "spreadsheet_id", spreadsheet.SpreadsheetId, "sheet", name)
	add := []*sheets.Request{{
		AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: name}},
	}}
	if err := w.api.BatchUpdate(ctx, spreadsheet.SpreadsheetId, add); err != nil {
		return 0, fmt.Errorf("unable to add sheet %q: %w", name, err)
	}

	refreshed, err := w.api.Get(ctx, spreadsheet.SpreadsheetId)
	if err != nil {
		return 0, fmt.Errorf("unable to reload spreadsheet %s: %w", spreadsheet.SpreadsheetId, err)
	}
	if id, ok := findSheet(refreshed, name); ok {
		return id, nil
	}
	return 0, fmt.Errorf("sheet %q missing after it was added", name)
}

// findSheet looks a tab up by title. Sheet titles are unique regardless of case.
func findSheet(spreadsheet *sheets.Spreadsheet, title string) (int64, bool) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && strings.EqualFold(sheet.Properties.Title, title) {
			return sheet.Properties.SheetId, true
		}
	}
	return 0, false
}

// writeData writes values in batches, retrying each batch independently.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any, retryOpts service.RetryOptions) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))
		batch := values[i:end]
		rangeStr := fmt.Sprintf("%s!A%d", quoteSheet(w.config.SheetName), i+1)

		err := common.WithRetry(ctx, func() error {
			return w.api.Update(ctx, spreadsheetID, rangeStr, batch)
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
		if w.onProgress != nil {
			w.onProgress(end, len(values))
		}
	}

	return nil
}

// formatRequests bolds the header row of the given tab, freezes it and
// resizes the columns.
func formatRequests(sheetID int64) []*sheets.Request {
	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   3,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   3,
				},
			},
		},
	}
}
