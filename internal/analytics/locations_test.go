package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

func at(location, contentType, urgency string) models.FlaggedContent {
	r := record(contentType, "facebook", urgency, baseTime)
	r.Location = location
	return r
}

func TestRiskLevel_Bands(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0, "low"},
		{0.1, "low"},
		{0.11, "medium"},
		{0.3, "medium"},
		{0.31, "high"},
		{1, "high"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevel(tt.fraction), "fraction %v", tt.fraction)
	}
}

func TestLocationInsights_KnownAndGeneric(t *testing.T) {
	recs := []models.FlaggedContent{
		at("Douala", models.ContentHateSpeech, "high"),
		at("Douala", models.ContentSpam, "low"),
		at("Douala", models.ContentSpam, "low"),
		at("Springfield", models.ContentHateSpeech, "low"),
		at("Springfield", models.ContentMisinformation, "low"),
		at("Springfield", models.ContentSpam, "medium"),
		at("Springfield", models.ContentSpam, "low"),
		at("Springfield", models.ContentSpam, "low"),
		at("Nowhere", models.ContentSpam, "critical"),
		at("  ", models.ContentSpam, "critical"),
		at("", models.ContentSpam, "critical"),
	}

	out := NewAggregator(nil).LocationInsights(recs)

	require.Len(t, out, 3)

	assert.Equal(t, "Springfield", out[0].Location)
	assert.Equal(t, 5, out[0].TotalPosts)
	assert.Equal(t, "low", out[0].RiskLevel)
	assert.Equal(t, []string{"various suspicious content"}, out[0].CommonIssues)

	assert.Equal(t, "Douala", out[1].Location)
	assert.Equal(t, "high", out[1].RiskLevel)
	assert.Equal(t, DefaultTables().LocationIssues["douala"], out[1].CommonIssues)

	assert.Equal(t, "Nowhere", out[2].Location)
	assert.Equal(t, "high", out[2].RiskLevel)
}

func TestLocationInsights_RatioDerivedIssues(t *testing.T) {
	recs := []models.FlaggedContent{
		at("Atlantis", models.ContentHateSpeech, "medium"),
		at("Atlantis", models.ContentMisinformation, "high"),
		at("Atlantis", models.ContentMisinformation, "low"),
	}

	out := NewAggregator(nil).LocationInsights(recs)

	require.Len(t, out, 1)
	assert.Equal(t, []string{"hate speech content", "misinformation spread"}, out[0].CommonIssues)
	assert.Equal(t, "high", out[0].RiskLevel)
}

func TestLocationInsights_Empty(t *testing.T) {
	out := NewAggregator(nil).LocationInsights(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestLocationInsights_GroupsSpellingsCaseInsensitively(t *testing.T) {
	recs := []models.FlaggedContent{
		at("Douala", models.ContentHateSpeech, "high"),
		at("douala", models.ContentSpam, "low"),
		at(" DOUALA ", models.ContentSpam, "low"),
	}

	out := NewAggregator(nil).LocationInsights(recs)

	require.Len(t, out, 1)
	assert.Equal(t, "Douala", out[0].Location)
	assert.Equal(t, 3, out[0].TotalPosts)
	assert.Equal(t, "high", out[0].RiskLevel)
	assert.Equal(t, DefaultTables().LocationIssues["douala"], out[0].CommonIssues)
}
