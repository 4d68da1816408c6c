// Package inbox routes inbound messages to the best-suited account
// user.
//
// The router is a static keyword scorer: each rule maps a substring to
// a weight and the roles it is relevant for. A candidate's score is
// the sum of weights for every rule whose keyword appears in the
// message and whose roles include the candidate's role. The highest
// score wins; confidence is the winner's share of all scores awarded.
// When nothing matches, the message falls back to the configured
// default assignee with zero confidence.
package inbox

import (
	"sort"
	"strings"
	"time"

	"github.com/streamlinehq/streamline/internal/domain"
)

// Candidate is an account user eligible to receive a routed message.
type Candidate struct {
	UserID    string
	Role      domain.Role
	CreatedAt time.Time
}

// Assignment is the routing decision for one message.
type Assignment struct {
	UserID string `json:"user_id"`

	// Score is the raw keyword score of the winning candidate.
	Score int `json:"score"`

	// Confidence is the winner's share of all awarded score, as a
	// percentage in [0, 100]. Zero when the router fell back.
	Confidence int `json:"confidence"`

	// Matched lists the keywords that contributed to the winning score.
	Matched []string `json:"matched,omitempty"`

	// Fallback is true when no candidate scored and the default
	// assignee was used.
	Fallback bool `json:"fallback"`
}

// rule maps one keyword to a weight and the roles it signals.
type rule struct {
	keyword string
	weight  int
	roles   []domain.Role
}

// rules is the fixed routing table. Weights favor specific intent
// words (reschedule, refund) over generic ones (price, repair).
var rules = []rule{
	// billing and sales intent
	{keyword: "invoice", weight: 3, roles: []domain.Role{domain.RoleSales, domain.RoleAdmin}},
	{keyword: "billing", weight: 3, roles: []domain.Role{domain.RoleSales, domain.RoleAdmin}},
	{keyword: "payment", weight: 2, roles: []domain.Role{domain.RoleSales, domain.RoleAdmin}},
	{keyword: "quote", weight: 3, roles: []domain.Role{domain.RoleSales}},
	{keyword: "estimate", weight: 3, roles: []domain.Role{domain.RoleSales}},
	{keyword: "price", weight: 1, roles: []domain.Role{domain.RoleSales}},

	// scheduling intent
	{keyword: "reschedule", weight: 4, roles: []domain.Role{domain.RoleDispatcher}},
	{keyword: "schedule", weight: 2, roles: []domain.Role{domain.RoleDispatcher}},
	{keyword: "appointment", weight: 3, roles: []domain.Role{domain.RoleDispatcher}},
	{keyword: "cancel", weight: 2, roles: []domain.Role{domain.RoleDispatcher, domain.RoleAdmin}},
	{keyword: "eta", weight: 2, roles: []domain.Role{domain.RoleDispatcher}},
	{keyword: "running late", weight: 2, roles: []domain.Role{domain.RoleDispatcher}},

	// technical intent
	{keyword: "repair", weight: 2, roles: []domain.Role{domain.RoleTechnician}},
	{keyword: "broken", weight: 2, roles: []domain.Role{domain.RoleTechnician}},
	{keyword: "not working", weight: 3, roles: []domain.Role{domain.RoleTechnician}},
	{keyword: "leak", weight: 3, roles: []domain.Role{domain.RoleTechnician}},
	{keyword: "install", weight: 2, roles: []domain.Role{domain.RoleTechnician}},
	{keyword: "warranty", weight: 2, roles: []domain.Role{domain.RoleTechnician, domain.RoleAdmin}},

	// escalation intent
	{keyword: "refund", weight: 4, roles: []domain.Role{domain.RoleAdmin}},
	{keyword: "complaint", weight: 4, roles: []domain.Role{domain.RoleAdmin}},
	{keyword: "manager", weight: 3, roles: []domain.Role{domain.RoleAdmin}},
}

// ScoreCandidate computes the keyword score for one candidate and
// returns the keywords that matched.
func ScoreCandidate(message string, c Candidate) (int, []string) {
	text := strings.ToLower(message)

	score := 0
	var matched []string
	for _, r := range rules {
		if !strings.Contains(text, r.keyword) {
			continue
		}
		if !roleIn(c.Role, r.roles) {
			continue
		}
		score += r.weight
		matched = append(matched, r.keyword)
	}
	return score, matched
}

func roleIn(role domain.Role, roles []domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Route picks the candidate with the highest keyword score.
//
// Ties break deterministically: earliest-created user first, then by
// user ID. When no candidate scores at all, the default assignee is
// returned with zero confidence.
func Route(message string, candidates []Candidate, defaultUserID string) Assignment {
	type scored struct {
		candidate Candidate
		score     int
		matched   []string
	}

	var results []scored
	total := 0
	for _, c := range candidates {
		score, matched := ScoreCandidate(message, c)
		total += score
		if score > 0 {
			results = append(results, scored{candidate: c, score: score, matched: matched})
		}
	}

	if len(results) == 0 {
		return Assignment{UserID: defaultUserID, Fallback: true}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		if !results[i].candidate.CreatedAt.Equal(results[j].candidate.CreatedAt) {
			return results[i].candidate.CreatedAt.Before(results[j].candidate.CreatedAt)
		}
		return results[i].candidate.UserID < results[j].candidate.UserID
	})

	best := results[0]
	confidence := best.score * 100 / total
	if confidence > 100 {
		confidence = 100
	}

	return Assignment{
		UserID:     best.candidate.UserID,
		Score:      best.score,
		Confidence: confidence,
		Matched:    best.matched,
	}
}
