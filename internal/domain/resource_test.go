package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResourceAssignmentOverlaps(t *testing.T) {
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	a := &ResourceAssignment{
		StartTime: base,
		EndTime:   base.Add(2 * time.Hour),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical window", start: base, end: base.Add(2 * time.Hour), want: true},
		{name: "contained", start: base.Add(30 * time.Minute), end: base.Add(time.Hour), want: true},
		{name: "overlaps start", start: base.Add(-time.Hour), end: base.Add(time.Minute), want: true},
		{name: "overlaps end", start: base.Add(119 * time.Minute), end: base.Add(3 * time.Hour), want: true},
		{name: "surrounds", start: base.Add(-time.Hour), end: base.Add(3 * time.Hour), want: true},
		{name: "back to back before", start: base.Add(-time.Hour), end: base, want: false},
		{name: "back to back after", start: base.Add(2 * time.Hour), end: base.Add(3 * time.Hour), want: false},
		{name: "fully before", start: base.Add(-2 * time.Hour), end: base.Add(-time.Hour), want: false},
		{name: "fully after", start: base.Add(3 * time.Hour), end: base.Add(4 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.start, tt.end))
		})
	}
}

func TestValidResourceType(t *testing.T) {
	for _, rt := range []ResourceType{ResourceTypeTechnician, ResourceTypeVehicle, ResourceTypeEquipment} {
		assert.True(t, ValidResourceType(rt), string(rt))
	}
	assert.False(t, ValidResourceType("drone"))
	assert.False(t, ValidResourceType(""))
}
