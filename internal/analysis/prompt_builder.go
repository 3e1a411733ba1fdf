package analysis

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplatePromptBuilder renders assistant context from embedded templates.
type TemplatePromptBuilder struct {
	templates map[string]*template.Template
}

// NewTemplatePromptBuilder creates a new TemplatePromptBuilder with loaded templates.
func NewTemplatePromptBuilder() (*TemplatePromptBuilder, error) {
	pb := &TemplatePromptBuilder{
		templates: make(map[string]*template.Template),
	}

	funcMap := template.FuncMap{
		"formatDate": formatDate,
		"join":       strings.Join,
		"inc":        func(i int) int { return i + 1 },
	}

	templates := []string{
		"assistant_context",
	}

	for _, name := range templates {
		filename := fmt.Sprintf("templates/%s.tmpl", name)
		tmpl, err := template.New(fmt.Sprintf("%s.tmpl", name)).Funcs(funcMap).ParseFS(templateFS, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pb.templates[name] = tmpl
	}

	return pb, nil
}

// PromptData contains everything rendered into the assistant context.
type PromptData struct {
	Today           time.Time
	Summary         string
	Anomalies       []model.Anomaly
	UrgentIDs       []string
	HighValueIDs    []string
	Recommendations []string
	RecordCount     int
	InvalidCount    int

	// Counts of list entries dropped by Bounded.
	AnomaliesOmitted       int
	UrgentOmitted          int
	HighValueOmitted       int
	RecommendationsOmitted int
}

// NewPromptData extracts prompt data from a result.
func NewPromptData(r *Result) PromptData {
	return PromptData{
		Today:           r.Today,
		Summary:         r.Summary,
		Anomalies:       r.Anomalies,
		UrgentIDs:       recordIDs(r.Urgent),
		HighValueIDs:    recordIDs(r.HighValue),
		Recommendations: r.RecommendationTexts(),
		RecordCount:     len(r.Records),
		InvalidCount:    len(r.Invalid),
	}
}

// Bounded caps the anomaly, identifier and recommendation lists so that
// together they render in roughly maxChars characters, keeping the leading
// entries of each list and recording how many were dropped. Anomalies and
// recommendations each get three eighths of the budget, and the two
// identifier lists one eighth each. A non-positive maxChars leaves the data
// unchanged.
func (d PromptData) Bounded(maxChars int) PromptData {
	if maxChars <= 0 {
		return d
	}
	listShare, idShare := maxChars*3/8, maxChars/8

	n := fitCount(len(d.Anomalies), listShare, func(i int) int {
		return len("- : \n") + len(d.Anomalies[i].Kind.String()) + len(d.Anomalies[i].Message)
	})
	d.AnomaliesOmitted = len(d.Anomalies) - n
	d.Anomalies = d.Anomalies[:n]

	n = fitCount(len(d.Recommendations), listShare, func(i int) int {
		return len(strconv.Itoa(i+1)) + len(". \n") + len(d.Recommendations[i])
	})
	d.RecommendationsOmitted = len(d.Recommendations) - n
	d.Recommendations = d.Recommendations[:n]

	n = fitCount(len(d.UrgentIDs), idShare, idSize(d.UrgentIDs))
	d.UrgentOmitted = len(d.UrgentIDs) - n
	d.UrgentIDs = d.UrgentIDs[:n]

	n = fitCount(len(d.HighValueIDs), idShare, idSize(d.HighValueIDs))
	d.HighValueOmitted = len(d.HighValueIDs) - n
	d.HighValueIDs = d.HighValueIDs[:n]

	return d
}

// fitCount returns how many leading items fit in maxChars.
func fitCount(n, maxChars int, size func(i int) int) int {
	used := 0
	for i := range n {
		used += size(i)
		if used > maxChars {
			return i
		}
	}
	return n
}

func idSize(ids []string) func(i int) int {
	return func(i int) int { return len(ids[i]) + len(", ") }
}

// BuildContext renders the assistant context.
func (pb *TemplatePromptBuilder) BuildContext(data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := pb.templates["assistant_context"].ExecuteTemplate(&buf, "assistant_context.tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute assistant_context template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func recordIDs(records []model.InvoiceRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func formatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}
