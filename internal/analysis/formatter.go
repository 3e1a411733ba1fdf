package analysis

import (
	"fmt"
	"strings"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

// CLIFormatter renders analysis results for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// NewCLIFormatterWithWidth creates a formatter sized for the terminal.
func NewCLIFormatterWithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: NewStyles().WithWidth(width)}
}

// FormatResult renders the whole result: header, rejected rows, anomalies,
// priority tiers and recommendations.
func (f *CLIFormatter) FormatResult(result *Result) string {
	if result == nil {
		return f.styles.Error.Render("No analysis available")
	}

	sections := []string{f.formatHeader(result)}

	if len(result.Invalid) > 0 {
		sections = append(sections, f.FormatInvalid(result))
	}

	sections = append(sections, f.FormatAnomalies(result))
	if result.HasAnomalies() {
		sections = append(sections, f.FormatReviewActions())
	}
	sections = append(sections, f.FormatPriorities(result), f.FormatRecommendations(result))

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatHeader(result *Result) string {
	title := f.styles.Title.Render("📑 Invoice Analysis")
	meta := f.styles.Subtle.Render(fmt.Sprintf("As of %s · %d invoices · %d rejected rows",
		result.Today.Format(model.DateLayout), len(result.Records), len(result.Invalid)))
	return title + "\n" + meta
}

// FormatInvalid lists rejected rows with their reason.
func (f *CLIFormatter) FormatInvalid(result *Result) string {
	lines := make([]string, 0, len(result.Invalid))
	for _, v := range result.Invalid {
		lines = append(lines, f.styles.Warning.Render("⚠ ")+v.Error())
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"), "Rejected rows", f.styles.PriorityBox)
}

// FormatAnomalies lists anomalies in detector order.
func (f *CLIFormatter) FormatAnomalies(result *Result) string {
	if !result.HasAnomalies() {
		return f.styles.Success.Render("✓ No anomalies detected")
	}
	lines := make([]string, 0, len(result.Anomalies))
	for _, a := range result.Anomalies {
		lines = append(lines, fmt.Sprintf("%s %s", f.styles.Anomaly.Render(string(a.Kind)), a.Message))
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"),
		fmt.Sprintf("Anomalies (%d)", len(result.Anomalies)), f.styles.AnomalyBox)
}

// FormatReviewActions lists the reviewer decisions for invoices with anomalies.
func (f *CLIFormatter) FormatReviewActions() string {
	var b strings.Builder
	b.WriteString(f.styles.Subtitle.Render("Suggested actions"))
	for i, a := range ReviewActions() {
		b.WriteString("\n")
		b.WriteString(f.styles.MenuOption.Render(fmt.Sprintf("%s %s", f.styles.MenuKey.Render(fmt.Sprintf("[%d]", i+1)), a.Label())))
	}
	return b.String()
}

// FormatPriorities renders a table of urgent and high-value invoices.
func (f *CLIFormatter) FormatPriorities(result *Result) string {
	if len(result.Urgent) == 0 && len(result.HighValue) == 0 {
		return f.styles.Subtle.Render("No urgent or high-value invoices")
	}

	urgent := idSet(result.Urgent)
	highValue := idSet(result.HighValue)

	var rows []string
	rows = append(rows, f.styles.TableHeader.Render(fmt.Sprintf("%-12s %-20s %12s  %-10s  %s", "Invoice", "Supplier", "Amount", "Due", "Tiers")))
	for _, r := range result.Records {
		var tiers []string
		if urgent[r.ID] {
			tiers = append(tiers, f.styles.ForTier(model.TierUrgent).Render(string(model.TierUrgent)))
		}
		if highValue[r.ID] {
			tiers = append(tiers, f.styles.ForTier(model.TierHighValue).Render(string(model.TierHighValue)))
		}
		if len(tiers) == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("%-12s %-20s %12s  %-10s  %s",
			truncate(r.ID, 12), truncate(r.Supplier, 20), r.Amount.StringFixed(2),
			r.DueDate.Format(model.DateLayout), strings.Join(tiers, ", ")))
	}
	return f.styles.RenderBox(strings.Join(rows, "\n"), "Priorities", f.styles.PriorityBox)
}

// FormatRecommendations renders recommendations in rank order.
func (f *CLIFormatter) FormatRecommendations(result *Result) string {
	if len(result.Recommendations) == 0 {
		return f.styles.Subtle.Render("No recommendations")
	}
	lines := make([]string, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		lines = append(lines, fmt.Sprintf("%2d. %s", rec.Rank+1, rec.Text()))
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"), "Recommendations", f.styles.AdviceBox)
}

// FormatReply renders an assistant reply, or its advisory text on failure.
func (f *CLIFormatter) FormatReply(reply Reply) string {
	if reply.Failed() {
		return f.styles.Warning.Render("⚠ " + reply.Text)
	}
	return f.styles.RenderBox(reply.Text, "Assistant", f.styles.ReplyBox)
}

func idSet(records []model.InvoiceRecord) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[r.ID] = true
	}
	return set
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
