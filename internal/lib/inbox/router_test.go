package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlinehq/streamline/internal/domain"
)

var baseTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func candidates() []Candidate {
	return []Candidate{
		{UserID: "u-admin", Role: domain.RoleAdmin, CreatedAt: baseTime},
		{UserID: "u-dispatch", Role: domain.RoleDispatcher, CreatedAt: baseTime.Add(time.Hour)},
		{UserID: "u-tech", Role: domain.RoleTechnician, CreatedAt: baseTime.Add(2 * time.Hour)},
		{UserID: "u-sales", Role: domain.RoleSales, CreatedAt: baseTime.Add(3 * time.Hour)},
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantUser     string
		wantFallback bool
	}{
		{
			name:     "scheduling message goes to dispatcher",
			message:  "Can we reschedule my appointment to Friday?",
			wantUser: "u-dispatch",
		},
		{
			name:     "billing message goes to sales",
			message:  "I have a question about my invoice and the quote you sent",
			wantUser: "u-sales",
		},
		{
			name:     "technical message goes to technician",
			message:  "The unit is broken again, there is a leak under the tank",
			wantUser: "u-tech",
		},
		{
			name:     "escalation goes to admin",
			message:  "I want a refund and I want to speak to a manager",
			wantUser: "u-admin",
		},
		{
			name:     "case insensitive matching",
			message:  "RESCHEDULE PLEASE",
			wantUser: "u-dispatch",
		},
		{
			name:         "no keywords falls back to default",
			message:      "Hello, just checking in",
			wantUser:     "u-default",
			wantFallback: true,
		},
		{
			name:         "empty message falls back",
			message:      "",
			wantUser:     "u-default",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.message, candidates(), "u-default")
			assert.Equal(t, tt.wantUser, got.UserID)
			assert.Equal(t, tt.wantFallback, got.Fallback)
			if tt.wantFallback {
				assert.Zero(t, got.Confidence)
				assert.Zero(t, got.Score)
			} else {
				assert.Positive(t, got.Score)
				assert.Positive(t, got.Confidence)
				assert.NotEmpty(t, got.Matched)
			}
		})
	}
}

func TestRouteConfidenceShare(t *testing.T) {
	// "cancel" scores for both dispatcher (weight 2) and admin
	// (weight 2): a split decision must not report full confidence.
	got := Route("please cancel my appointment", candidates(), "u-default")

	require.False(t, got.Fallback)
	assert.Equal(t, "u-dispatch", got.UserID) // appointment tips it to dispatch
	assert.Less(t, got.Confidence, 100)
	assert.Positive(t, got.Confidence)
}

func TestRouteTieBreakDeterministic(t *testing.T) {
	// Two candidates with identical role score the same; the earlier
	// created user must win every time.
	cands := []Candidate{
		{UserID: "u-b", Role: domain.RoleDispatcher, CreatedAt: baseTime.Add(time.Hour)},
		{UserID: "u-a", Role: domain.RoleDispatcher, CreatedAt: baseTime},
	}

	for i := 0; i < 10; i++ {
		got := Route("need to reschedule", cands, "u-default")
		require.Equal(t, "u-a", got.UserID)
	}

	// Same creation time: lexicographic user ID decides.
	cands[1].CreatedAt = cands[0].CreatedAt
	got := Route("need to reschedule", cands, "u-default")
	assert.Equal(t, "u-a", got.UserID)
}

func TestScoreCandidateRoleFilter(t *testing.T) {
	msg := "what is the price of a repair"

	salesScore, salesMatched := ScoreCandidate(msg, Candidate{UserID: "s", Role: domain.RoleSales})
	techScore, techMatched := ScoreCandidate(msg, Candidate{UserID: "t", Role: domain.RoleTechnician})

	assert.Equal(t, []string{"price"}, salesMatched)
	assert.Equal(t, 1, salesScore)
	assert.Equal(t, []string{"repair"}, techMatched)
	assert.Equal(t, 2, techScore)
}

func TestRouteConfidenceFullWhenUncontested(t *testing.T) {
	cands := []Candidate{
		{UserID: "u-sales", Role: domain.RoleSales, CreatedAt: baseTime},
	}
	got := Route("please send me an estimate", cands, "u-default")
	assert.Equal(t, 100, got.Confidence)
}
