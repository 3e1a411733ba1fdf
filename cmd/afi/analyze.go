package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/analysis"
	"github.com/Veraticus/invoice-advisor/internal/model"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze an invoice batch",
		Long: `Load invoices from a CSV or JSON file, report rejected rows and anomalies,
classify urgency and value, and print payment recommendations.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	addAsOfFlag(cmd)
	cmd.Flags().StringP("output", "o", "summary", "output format (summary, json)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "summary" && output != "json" {
		return fmt.Errorf("invalid output format: %s (want summary or json)", output)
	}

	asOf, err := asOfDate(cmd)
	if err != nil {
		return err
	}

	s, err := newSession(viper.GetViper(), nil)
	if err != nil {
		return err
	}

	result, err := s.analyzeFile(args[0], asOf)
	if err != nil {
		return err
	}

	if output == "json" {
		return writeJSONReport(cmd.OutOrStdout(), result)
	}

	formatter := analysis.NewCLIFormatter()
	_, err = fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResult(result))
	return err
}

type invalidRow struct {
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error"`
	Row    int    `json:"row"`
}

type jsonReport struct {
	RunID           string                 `json:"run_id"`
	Today           string                 `json:"today"`
	Invalid         []invalidRow           `json:"invalid"`
	Anomalies       []model.Anomaly        `json:"anomalies"`
	Urgent          []string               `json:"urgent"`
	HighValue       []string               `json:"high_value"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Records         int                    `json:"records"`
}

func newJSONReport(result *analysis.Result) jsonReport {
	report := jsonReport{
		RunID:           result.RunID,
		Today:           result.Today.Format(model.DateLayout),
		Records:         len(result.Records),
		Invalid:         make([]invalidRow, 0, len(result.Invalid)),
		Anomalies:       result.Anomalies,
		Urgent:          recordIDs(result.Urgent),
		HighValue:       recordIDs(result.HighValue),
		Recommendations: result.Recommendations,
	}
	for _, v := range result.Invalid {
		report.Invalid = append(report.Invalid, invalidRow{
			Row:    v.Row,
			Column: v.Column,
			Value:  v.Value,
			Error:  v.Err.Error(),
		})
	}
	if report.Anomalies == nil {
		report.Anomalies = []model.Anomaly{}
	}
	if report.Recommendations == nil {
		report.Recommendations = []model.Recommendation{}
	}
	return report
}

func writeJSONReport(w io.Writer, result *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newJSONReport(result)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func recordIDs(records []model.InvoiceRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
