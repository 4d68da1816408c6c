package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadStage is the sales pipeline stage.
type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageQualified LeadStage = "qualified"
	LeadStageProposal  LeadStage = "proposal"
	LeadStageWon       LeadStage = "won"
	LeadStageLost      LeadStage = "lost"
)

// ValidLeadStage reports whether s is a known pipeline stage.
func ValidLeadStage(s LeadStage) bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageProposal, LeadStageWon, LeadStageLost:
		return true
	}
	return false
}

// ScoreBand labels a numeric lead score for pipeline views.
type ScoreBand string

const (
	ScoreBandHot  ScoreBand = "hot"
	ScoreBandWarm ScoreBand = "warm"
	ScoreBandCold ScoreBand = "cold"
)

// Lead is a sales pipeline entry. Score and ScoreBand are produced by
// the heuristic scorer and refreshed by the score endpoint or the
// rescore background task.
type Lead struct {
	ID              string          `json:"id"`
	ContactID       string          `json:"contact_id"`
	Source          string          `json:"source,omitempty"`
	Stage           LeadStage       `json:"stage"`
	EstimatedValue  decimal.Decimal `json:"estimated_value"`
	Message         string          `json:"message,omitempty"`
	Score           int             `json:"score"`
	ScoreBand       ScoreBand       `json:"score_band,omitempty"`
	LastContactedAt *time.Time      `json:"last_contacted_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
