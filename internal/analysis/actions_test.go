package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewActions(t *testing.T) {
	assert.Equal(t, []ReviewAction{ActionApprove, ActionReturn, ActionEscalate}, ReviewActions())
	for _, a := range ReviewActions() {
		assert.NotEmpty(t, a.Label())
		assert.NotEmpty(t, a.Outcome())
	}
}

func TestParseReviewAction(t *testing.T) {
	tests := []struct {
		in     string
		want   ReviewAction
		wantOK bool
	}{
		{"approve", ActionApprove, true},
		{"2", ActionReturn, true},
		{"3", ActionEscalate, true},
		{"escalate", ActionEscalate, true},
		{"4", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseReviewAction(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
