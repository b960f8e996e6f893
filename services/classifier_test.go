package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDueDateBoundaries(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	window := 3 * 24 * time.Hour

	tests := []struct {
		name      string
		scheduled time.Time
		terminal  bool
		want      DueState
	}{
		{"exactly at window edge is upcoming", now.Add(window), false, DueUpcoming},
		{"just inside window is upcoming", now.Add(window - time.Second), false, DueUpcoming},
		{"just past window is none", now.Add(window + time.Second), false, DueNone},
		{"scheduled equals now is upcoming", now, false, DueUpcoming},
		{"one second in the past is overdue", now.Add(-time.Second), false, DueOverdue},
		{"long past is overdue", now.Add(-30 * 24 * time.Hour), false, DueOverdue},
		{"far future is none", now.Add(90 * 24 * time.Hour), false, DueNone},
		{"terminal overdue date is none", now.Add(-time.Hour), true, DueNone},
		{"terminal upcoming date is none", now.Add(time.Hour), true, DueNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDueDate(tt.scheduled, tt.terminal, now, window)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDueStateString(t *testing.T) {
	assert.Equal(t, "none", DueNone.String())
	assert.Equal(t, "upcoming", DueUpcoming.String())
	assert.Equal(t, "overdue", DueOverdue.String())
}
