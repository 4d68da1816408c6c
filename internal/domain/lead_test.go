package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLeadStage(t *testing.T) {
	for _, s := range []LeadStage{LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageProposal, LeadStageWon, LeadStageLost} {
		assert.True(t, ValidLeadStage(s), string(s))
	}
	assert.False(t, ValidLeadStage("nurture"))
	assert.False(t, ValidLeadStage(""))
}
