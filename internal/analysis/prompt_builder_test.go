package analysis

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/invoice-advisor/internal/model"
)

func TestTemplatePromptBuilder_BuildContext(t *testing.T) {
	pb, err := NewTemplatePromptBuilder()
	require.NoError(t, err)

	result := newTestEngine(t, nil).Run(scenarioRows(), Options{Today: today})
	got, err := pb.BuildContext(NewPromptData(result))
	require.NoError(t, err)

	assert.Contains(t, got, "Analysis date: 2024-05-01")
	assert.Contains(t, got, "Valid invoices: 3")
	assert.Contains(t, got, result.Summary)
	assert.Contains(t, got, "- TaxRateMismatch: invoice b: tax rate 15% differs from expected 20%")
	assert.Contains(t, got, "Urgent invoices: a, c")
	assert.Contains(t, got, "High-value invoices: a, c")
	assert.Contains(t, got, "1. [BudgetOverrun]")
	assert.Contains(t, got, "9. [HighValueReview]")
	assert.NotContains(t, got, "rows rejected")
}

func TestTemplatePromptBuilder_EmptyBatch(t *testing.T) {
	pb, err := NewTemplatePromptBuilder()
	require.NoError(t, err)

	got, err := pb.BuildContext(PromptData{Today: today})
	require.NoError(t, err)

	assert.Contains(t, got, "Anomalies: none")
	assert.Contains(t, got, "Urgent invoices: none")
	assert.Contains(t, got, "High-value invoices: none")
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestTemplatePromptBuilder_ReportsRejectedRows(t *testing.T) {
	pb, err := NewTemplatePromptBuilder()
	require.NoError(t, err)

	got, err := pb.BuildContext(PromptData{Today: today, RecordCount: 2, InvalidCount: 1})
	require.NoError(t, err)
	assert.Contains(t, got, "Valid invoices: 2 (1 rows rejected)")
}

func TestPromptData_Bounded(t *testing.T) {
	anomalies := make([]model.Anomaly, 50)
	for i := range anomalies {
		anomalies[i] = model.Anomaly{Kind: model.AnomalyAmountOutOfRange, Message: strings.Repeat("x", 40)}
	}
	data := PromptData{
		Today:           today,
		Anomalies:       anomalies,
		UrgentIDs:       strings.Split(strings.Repeat("id-123,", 40), ",")[:40],
		HighValueIDs:    []string{"a", "b"},
		Recommendations: slices.Repeat([]string{strings.Repeat("r", 60)}, 30),
	}

	tests := []struct {
		name             string
		maxChars         int
		wantAnomalies    int
		wantUrgent       int
		wantHighValue    int
		wantRecs         int
		wantMarkerSubstr []string
	}{
		{
			name:          "unbounded",
			maxChars:      0,
			wantAnomalies: 50, wantUrgent: 40, wantHighValue: 2, wantRecs: 30,
		},
		{
			name:          "tight budget",
			maxChars:      800,
			wantAnomalies: 4, wantUrgent: 12, wantHighValue: 2, wantRecs: 4,
			wantMarkerSubstr: []string{
				"[... 46 more anomalies truncated]",
				"[... 28 more truncated]",
				"[... 26 more recommendations truncated]",
			},
		},
	}

	pb, err := NewTemplatePromptBuilder()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.Bounded(tt.maxChars)
			assert.Len(t, got.Anomalies, tt.wantAnomalies)
			assert.Len(t, got.UrgentIDs, tt.wantUrgent)
			assert.Len(t, got.HighValueIDs, tt.wantHighValue)
			assert.Len(t, got.Recommendations, tt.wantRecs)
			assert.Equal(t, len(data.Anomalies), len(got.Anomalies)+got.AnomaliesOmitted)
			assert.Equal(t, len(data.Recommendations), len(got.Recommendations)+got.RecommendationsOmitted)
			assert.Zero(t, got.HighValueOmitted)

			rendered, err := pb.BuildContext(got)
			require.NoError(t, err)
			for _, marker := range tt.wantMarkerSubstr {
				assert.Contains(t, rendered, marker)
			}
			assert.Contains(t, rendered, "High-value invoices: a, b\n")
		})
	}
}
