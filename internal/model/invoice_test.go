package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{name: "same day", start: date(2024, 5, 1), end: date(2024, 5, 1), want: 0},
		{name: "time of day ignored", start: time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC), end: time.Date(2024, 5, 2, 0, 1, 0, 0, time.UTC), want: 1},
		{name: "leap february", start: date(2024, 2, 1), end: date(2024, 3, 1), want: 29},
		{name: "overdue", start: date(2024, 5, 1), end: date(2024, 4, 1), want: -30},
		{name: "four hundred years", start: date(2000, 1, 1), end: date(2400, 1, 1), want: 146097},
		{name: "four hundred years back", start: date(2400, 1, 1), end: date(2000, 1, 1), want: -146097},
		{name: "year one to year 9999", start: date(1, 1, 1), end: date(9999, 12, 31), want: 3652058},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestDaysUntilDue_FarFuture(t *testing.T) {
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	record := InvoiceRecord{ID: "far", DueDate: time.Date(2999, 5, 1, 0, 0, 0, 0, time.UTC)}

	days := record.DaysUntilDue(today)
	assert.Positive(t, days)
	assert.Equal(t, 975*365+236, days)
}
