package domain

import "time"

// ResourceType classifies schedulable resources.
type ResourceType string

const (
	ResourceTypeTechnician ResourceType = "technician"
	ResourceTypeVehicle    ResourceType = "vehicle"
	ResourceTypeEquipment  ResourceType = "equipment"
)

// ValidResourceType reports whether t is a known resource type.
func ValidResourceType(t ResourceType) bool {
	switch t {
	case ResourceTypeTechnician, ResourceTypeVehicle, ResourceTypeEquipment:
		return true
	}
	return false
}

// Resource is a schedulable entity assigned to jobs. Technician
// resources link back to a user via UserID.
type Resource struct {
	ID        string       `json:"id"`
	Type      ResourceType `json:"type"`
	Name      string       `json:"name"`
	UserID    *string      `json:"user_id,omitempty"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ResourceAssignment books a resource onto a job for a time window.
// Windows are half-open [StartTime, EndTime): two assignments conflict
// when their windows overlap, and back-to-back windows do not.
type ResourceAssignment struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	JobID      string    `json:"job_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
}

// Overlaps reports whether the assignment's window intersects
// [start, end).
func (a *ResourceAssignment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}
