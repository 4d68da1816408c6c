package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		to   JobStatus
		want bool
	}{
		{name: "scheduled to dispatched", from: JobStatusScheduled, to: JobStatusDispatched, want: true},
		{name: "scheduled to canceled", from: JobStatusScheduled, to: JobStatusCanceled, want: true},
		{name: "scheduled to completed skips dispatch", from: JobStatusScheduled, to: JobStatusCompleted, want: false},
		{name: "dispatched back to scheduled", from: JobStatusDispatched, to: JobStatusScheduled, want: true},
		{name: "dispatched to in_progress", from: JobStatusDispatched, to: JobStatusInProgress, want: true},
		{name: "in_progress to completed", from: JobStatusInProgress, to: JobStatusCompleted, want: true},
		{name: "in_progress back to dispatched", from: JobStatusInProgress, to: JobStatusDispatched, want: false},
		{name: "completed is terminal", from: JobStatusCompleted, to: JobStatusScheduled, want: false},
		{name: "canceled is terminal", from: JobStatusCanceled, to: JobStatusScheduled, want: false},
		{name: "self transition", from: JobStatusScheduled, to: JobStatusScheduled, want: false},
		{name: "unknown status", from: JobStatus("archived"), to: JobStatusScheduled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidJobStatus(t *testing.T) {
	for _, s := range []JobStatus{JobStatusScheduled, JobStatusDispatched, JobStatusInProgress, JobStatusCompleted, JobStatusCanceled} {
		assert.True(t, ValidJobStatus(s), string(s))
	}
	assert.False(t, ValidJobStatus("archived"))
	assert.False(t, ValidJobStatus(""))
}
