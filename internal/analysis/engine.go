package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/conversation"
	"github.com/Veraticus/invoice-advisor/internal/ingest"
	"github.com/Veraticus/invoice-advisor/internal/model"
	"github.com/Veraticus/invoice-advisor/internal/priority"
	"github.com/Veraticus/invoice-advisor/internal/recommend"
	"github.com/Veraticus/invoice-advisor/internal/rules"
	"github.com/Veraticus/invoice-advisor/internal/service"
	"github.com/Veraticus/invoice-advisor/internal/summary"
)

// assistantName identifies the assistant in collaborator errors.
const assistantName = "assistant"

// Run normalizes rows and analyzes the valid records. Invalid rows are listed
// in the result and excluded from every later stage.
func (e *Engine) Run(rows []ingest.Row, opts Options) *Result {
	records, invalid := ingest.Normalize(rows, opts.Required)
	result := e.Analyze(records, opts)
	result.Invalid = invalid
	return result
}

// Analyze runs detection, classification, recommendation and summarizing over
// already validated records.
func (e *Engine) Analyze(records []model.InvoiceRecord, opts Options) *Result {
	today := opts.Today
	if today.IsZero() {
		today = e.deps.Clock()
	}
	today = model.Day(today)

	anomalies := rules.NewDefaultDetector(e.config.Rules).DetectAll(records)
	partition := priority.NewClassifier(today, e.config.Priority).Partition(records)
	recs := recommend.NewGenerator(today, e.config.Recommend).Generate(anomalies, partition)

	result := &Result{
		RunID:           uuid.New().String(),
		Today:           today,
		Records:         records,
		Anomalies:       anomalies,
		Urgent:          partition.Urgent,
		HighValue:       partition.HighValue,
		Recommendations: recs,
		Summary:         summary.NewSummarizer(e.config.SummaryMaxChars).Summarize(records),
	}

	slog.Debug("analysis complete",
		"run_id", result.RunID,
		"records", len(records),
		"anomalies", len(anomalies),
		"urgent", len(partition.Urgent),
		"high_value", len(partition.HighValue))

	return result
}

// Ask sends a question about result to the assistant. Failures never touch
// result; they come back as a Reply carrying an advisory text and a
// CollaboratorError. Only answered questions are appended to log, which may
// be nil.
func (e *Engine) Ask(ctx context.Context, result *Result, question string, log *conversation.Log) Reply {
	question = strings.TrimSpace(question)
	if question == "" {
		return advisory(common.ErrEmptyQuestion)
	}
	if e.deps.Assistant == nil {
		return advisory(fmt.Errorf("%w: no assistant configured", common.ErrMissingConfig))
	}

	req, err := e.BuildQuery(result, question, log)
	if err != nil {
		return advisory(err)
	}

	if e.config.AssistantTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.AssistantTimeout)
		defer cancel()
	}

	answer, err := e.deps.Assistant.Ask(ctx, req)
	if err != nil {
		common.LogError(err, "Assistant query failed", common.Fields{"run_id": result.RunID})
		return advisory(err)
	}

	if log != nil {
		log.AppendExchange(question, answer)
	}
	return Reply{Text: answer}
}

// BuildQuery formats the assistant request for a question. The same inputs
// always produce the same request.
func (e *Engine) BuildQuery(result *Result, question string, log *conversation.Log) (service.QueryRequest, error) {
	data := NewPromptData(result).Bounded(e.config.SummaryMaxChars)
	summaryText, err := e.deps.PromptBuilder.BuildContext(data)
	if err != nil {
		return service.QueryRequest{}, fmt.Errorf("failed to build assistant context: %w", err)
	}

	var history []service.Turn
	if log != nil {
		history = log.Turns()
	}
	return service.QueryRequest{Context: summaryText, Question: question, History: history}, nil
}

func advisory(err error) Reply {
	collabErr := common.NewCollaboratorError(assistantName, err)

	var msg string
	switch {
	case errors.Is(err, common.ErrEmptyQuestion):
		msg = "Please enter a question about the loaded invoices."
	case errors.Is(err, context.DeadlineExceeded):
		msg = "The assistant did not answer in time. The analysis results above are unchanged; try again shortly."
	case errors.Is(err, common.ErrMissingConfig):
		msg = "No assistant is configured. The analysis results above are still available."
	default:
		msg = "The assistant is unavailable right now. The analysis results above are unchanged; try again later."
	}
	return Reply{Text: msg, Err: collabErr}
}
