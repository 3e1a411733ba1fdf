package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/analysis"
	"github.com/Veraticus/invoice-advisor/internal/cli"
	"github.com/Veraticus/invoice-advisor/internal/config"
	"github.com/Veraticus/invoice-advisor/internal/report"
	"github.com/Veraticus/invoice-advisor/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export payment recommendations",
		Long: `Analyze an invoice batch and export the recommendation list as a text
file, a PDF document or a Google Sheets spreadsheet.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	addAsOfFlag(cmd)
	cmd.Flags().StringP("format", "f", "text", "export format (text, pdf, sheets)")
	cmd.Flags().String("out", "", "output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	rawFormat, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	asOf, err := asOfDate(cmd)
	if err != nil {
		return err
	}

	var exporter report.Exporter
	if format == report.FormatSheets {
		// Credentials are checked before any analysis starts.
		writer, writerErr := newSheetsWriter(cmd.Context(), cmd.ErrOrStderr())
		if writerErr != nil {
			return writerErr
		}
		exporter = writer
	}

	s, err := newSession(viper.GetViper(), nil)
	if err != nil {
		return err
	}

	result, err := s.analyzeFile(args[0], asOf)
	if err != nil {
		return err
	}

	if exporter == nil {
		exporter, err = report.New(format, result.Today)
		if err != nil {
			return err
		}
	}

	outPath, _ := cmd.Flags().GetString("out")
	out, err := openOutput(cmd.OutOrStdout(), outPath)
	if err != nil {
		return err
	}

	recommendations := result.RecommendationTexts()
	if err := exportTo(cmd.Context(), exporter, out, recommendations); err != nil {
		// Export failures leave the analysis intact.
		slog.Error("export failed", "format", format, "error", err)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), analysis.NewCLIFormatter().FormatReply(analysis.Reply{
			Err:  err,
			Text: fmt.Sprintf("The %s export could not be completed. %d recommendations were produced; run analyze to view them.", format, len(recommendations)),
		}))
		return nil
	}
	if err := out.Close(); err != nil {
		return err
	}

	if outPath != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Exported %d recommendations to %s", len(recommendations), outPath)))
	}
	return nil
}

func newSheetsWriter(ctx context.Context, progressOut io.Writer) (*sheets.Writer, error) {
	cfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
	if err != nil {
		return nil, err
	}

	progress := cli.NewProgress(progressOut, "Writing rows")
	writer.OnProgress(progress.Update)
	return writer, nil
}

// exportTo runs the exporter into out. A failed export discards out, so no
// partial file is left behind.
func exportTo(ctx context.Context, exporter report.Exporter, out *output, recommendations []string) error {
	if err := exporter.Export(ctx, out, recommendations); err != nil {
		out.Discard()
		return err
	}
	return nil
}

// output is the destination of a command: stdout or a created file.
type output struct {
	io.Writer
	file *os.File
}

// openOutput returns stdout for an empty path, otherwise a created file.
func openOutput(stdout io.Writer, path string) (*output, error) {
	if path == "" {
		return &output{Writer: stdout}, nil
	}

	f, err := os.Create(config.ExpandPath(path)) // #nosec G304 -- user supplied output path
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &output{Writer: f, file: f}, nil
}

// Close flushes a created file to disk. It is a no-op for stdout.
func (o *output) Close() error {
	if o.file == nil {
		return nil
	}
	if err := o.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// Discard closes and removes a created file.
func (o *output) Discard() {
	if o.file == nil {
		return
	}
	_ = o.file.Close()
	if err := os.Remove(o.file.Name()); err != nil {
		slog.Warn("failed to remove partial output", "path", o.file.Name(), "error", err)
	}
}
