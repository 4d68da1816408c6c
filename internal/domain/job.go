package domain

import "time"

// JobStatus is the lifecycle state of a field-service job.
type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusDispatched JobStatus = "dispatched"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCanceled   JobStatus = "canceled"
)

// jobTransitions is the legal status transition table. Completed and
// canceled are terminal.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusScheduled:  {JobStatusDispatched, JobStatusCanceled},
	JobStatusDispatched: {JobStatusInProgress, JobStatusScheduled, JobStatusCanceled},
	JobStatusInProgress: {JobStatusCompleted, JobStatusCanceled},
}

// CanTransition reports whether a job may move from one status to
// another.
func CanTransition(from, to JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidJobStatus reports whether s is a known job status.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusScheduled, JobStatusDispatched, JobStatusInProgress, JobStatusCompleted, JobStatusCanceled:
		return true
	}
	return false
}

// Job is a unit of scheduled field work for a contact.
type Job struct {
	ID             string     `json:"id"`
	ContactID      string     `json:"contact_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         JobStatus  `json:"status"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
