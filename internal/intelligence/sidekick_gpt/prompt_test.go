package sidekick_gpt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/types/assessment"
)

func sampleAnswers() *assessment.Answers {
	return &assessment.Answers{
		BusinessType:     "trades",
		BusinessOffering: "Emergency plumbing",
		Revenue:          "250k-500k",
		Employees:        "2-5",
		LeadSources:      []string{"referrals", "google-search"},
		TrackingSystem:   "spreadsheet",
		FollowUpProcess:  "manual",
		PricingStrategy:  "match-competitors",
	}
}

func TestBuildMessagesShape(t *testing.T) {
	messages, err := BuildMessages(sampleAnswers())
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Contains(t, messages[0].Content, "Profit Sidekick")
}

func TestBuildMessagesEmbedsEveryAnswer(t *testing.T) {
	a := sampleAnswers()
	messages, err := BuildMessages(a)
	require.NoError(t, err)

	user := messages[1].Content
	for _, want := range []string{
		"trades", "Emergency plumbing", "250k-500k", "2-5",
		"referrals, google-search", "spreadsheet", "manual", "match-competitors",
	} {
		assert.Contains(t, user, want)
	}
	// Unanswered optional questions must be marked, never omitted or invented.
	assert.Contains(t, user, "not answered")
}

func TestBuildMessagesTerseOmitsEnrichedShape(t *testing.T) {
	messages, err := BuildMessages(sampleAnswers())
	require.NoError(t, err)

	user := messages[1].Content
	assert.NotContains(t, user, "actionableInsights")
	assert.NotContains(t, user, "profitPerformanceScore")
	assert.Contains(t, user, "Do not include actionableInsights")
}

func TestBuildMessagesEnrichedIncludesScoringContract(t *testing.T) {
	a := sampleAnswers()
	a.BiggestImprovement = strings.Repeat("I want a steadier pipeline of good customers. ", 3)
	require.True(t, a.Enriched())

	messages, err := BuildMessages(a)
	require.NoError(t, err)

	user := messages[1].Content
	assert.Contains(t, user, "actionableInsights")
	assert.Contains(t, user, "profitPerformanceScore")
	assert.Contains(t, user, `80-100 "Profit Pro"`)
	assert.Contains(t, user, "patchPlan must contain exactly 3 steps")
	assert.Contains(t, user, strings.TrimSpace(a.BiggestImprovement))
}

//Personal.AI order the ending
