package leadscore

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/streamlinehq/streamline/internal/domain"
)

func TestScore(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)
	stale := now.Add(-60 * 24 * time.Hour)

	tests := []struct {
		name     string
		in       Input
		wantBand domain.ScoreBand
	}{
		{
			name: "fresh referral with big job is hot",
			in: Input{
				Source:          "referral",
				EstimatedValue:  decimal.NewFromInt(8000),
				Message:         "need a quote asap, full system replace",
				LastContactedAt: &recent,
				CreatedAt:       stale,
			},
			wantBand: domain.ScoreBandHot,
		},
		{
			name: "mid-value website lead is warm",
			in: Input{
				Source:         "website",
				EstimatedValue: decimal.NewFromInt(1500),
				Message:        "looking for an estimate",
				CreatedAt:      recent,
			},
			wantBand: domain.ScoreBandWarm,
		},
		{
			name: "stale low-signal lead is cold",
			in: Input{
				Source:         "advertising",
				EstimatedValue: decimal.Zero,
				Message:        "hi",
				CreatedAt:      stale,
			},
			wantBand: domain.ScoreBandCold,
		},
		{
			name:     "zero input stays in range",
			in:       Input{CreatedAt: stale},
			wantBand: domain.ScoreBandCold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.in, now)
			assert.Equal(t, tt.wantBand, got.Band)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestScoreMonotonicInValue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	base := Input{Source: "website", Message: "quote please", CreatedAt: now.Add(-time.Hour)}

	small := base
	small.EstimatedValue = decimal.NewFromInt(200)
	big := base
	big.EstimatedValue = decimal.NewFromInt(10000)

	assert.Greater(t, Score(big, now).Score, Score(small, now).Score)
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, domain.ScoreBandHot, BandFor(70))
	assert.Equal(t, domain.ScoreBandWarm, BandFor(69))
	assert.Equal(t, domain.ScoreBandWarm, BandFor(40))
	assert.Equal(t, domain.ScoreBandCold, BandFor(39))
	assert.Equal(t, domain.ScoreBandCold, BandFor(0))
}
