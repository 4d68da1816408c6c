// Package leadscore computes heuristic sales-lead scores.
//
// A score is a 0-100 integer built from weighted signals: where the
// lead came from, the estimated job value, how recently the contact
// was touched, and intent keywords in the lead's message. Scores map
// onto hot/warm/cold bands for pipeline views.
package leadscore

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/streamlinehq/streamline/internal/domain"
)

// Input carries the lead attributes the scorer reads.
type Input struct {
	Source          string
	EstimatedValue  decimal.Decimal
	Message         string
	LastContactedAt *time.Time
	CreatedAt       time.Time
}

// Result is a computed score with its band.
type Result struct {
	Score int              `json:"score"`
	Band  domain.ScoreBand `json:"band"`
}

// Band thresholds.
const (
	hotThreshold  = 70
	warmThreshold = 40
)

// sourceWeights reflects observed close rates per acquisition channel.
var sourceWeights = map[string]int{
	"referral":    25,
	"repeat":      25,
	"website":     15,
	"google":      12,
	"phone":       15,
	"social":      8,
	"advertising": 5,
}

// intentKeywords are message substrings that signal purchase intent.
var intentKeywords = map[string]int{
	"asap":      10,
	"urgent":    10,
	"today":     8,
	"emergency": 10,
	"quote":     6,
	"estimate":  6,
	"replace":   5,
	"install":   5,
	"budget":    4,
}

// value bands for the estimated job size.
var (
	valueHigh = decimal.NewFromInt(5000)
	valueMid  = decimal.NewFromInt(1000)
)

// Score computes the heuristic score for one lead as of now.
func Score(in Input, now time.Time) Result {
	score := 0

	// Acquisition source.
	score += sourceWeights[strings.ToLower(in.Source)]

	// Estimated value band.
	switch {
	case in.EstimatedValue.GreaterThanOrEqual(valueHigh):
		score += 25
	case in.EstimatedValue.GreaterThanOrEqual(valueMid):
		score += 15
	case in.EstimatedValue.IsPositive():
		score += 5
	}

	// Recency: a recently touched lead is warm, a stale one decays.
	reference := in.CreatedAt
	if in.LastContactedAt != nil {
		reference = *in.LastContactedAt
	}
	age := now.Sub(reference)
	switch {
	case age <= 48*time.Hour:
		score += 20
	case age <= 7*24*time.Hour:
		score += 10
	case age > 30*24*time.Hour:
		score -= 10
	}

	// Intent keywords in the lead message.
	text := strings.ToLower(in.Message)
	for keyword, weight := range intentKeywords {
		if strings.Contains(text, keyword) {
			score += weight
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Band: BandFor(score)}
}

// BandFor maps a numeric score onto a band label.
func BandFor(score int) domain.ScoreBand {
	switch {
	case score >= hotThreshold:
		return domain.ScoreBandHot
	case score >= warmThreshold:
		return domain.ScoreBandWarm
	default:
		return domain.ScoreBandCold
	}
}
