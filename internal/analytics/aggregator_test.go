package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func record(contentType, platform, urgency string, at time.Time) models.FlaggedContent {
	return models.FlaggedContent{
		ID:           uuid.New(),
		ContentType:  contentType,
		Platform:     platform,
		UrgencyLevel: urgency,
		DateReported: at,
	}
}

func mixedRecords() []models.FlaggedContent {
	return []models.FlaggedContent{
		record(models.ContentHateSpeech, "facebook", "high", baseTime),
		record(models.ContentHateSpeech, "facebook", "critical", baseTime.Add(-time.Hour)),
		record(models.ContentMisinformation, "twitter", "medium", baseTime.Add(-2*time.Hour)),
		record(models.ContentSpam, "whatsapp", "low", baseTime.Add(-26*time.Hour)),
		record(models.ContentHarassment, "tiktok", "low", baseTime.Add(-50*time.Hour)),
		record(models.ContentFake, "youtube", "high", baseTime.Add(-50*time.Hour)),
		record(models.ContentNews, "facebook", "medium", baseTime.Add(-3*time.Hour)),
	}
}

func TestSummarize_CountsAndAverage(t *testing.T) {
	agg := NewAggregator(nil)
	recs := mixedRecords()
	for i := range recs {
		recs[i].ConfidenceScore = 0.5
	}
	recs[0].ConfidenceScore = 1.0

	s := agg.Summarize(recs)

	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 2, s.HateSpeech)
	assert.Equal(t, 1, s.Misinformation)
	assert.Equal(t, 1, s.Harassment)
	assert.Equal(t, 1, s.Spam)
	assert.Equal(t, 1, s.Fake)
	assert.InDelta(t, 0.571, s.AverageConfidence, 0.0005)

	perType := agg.ContentTypeCounts(recs)
	sum := 0
	for _, c := range perType {
		sum += c
	}
	assert.Equal(t, s.Total, sum)
}

func TestSummarize_Empty(t *testing.T) {
	s := NewAggregator(nil).Summarize(nil)
	assert.Equal(t, Summary{}, s)
}

func TestPlatformBreakdown_SinglePlatformScenario(t *testing.T) {
	agg := NewAggregator(nil)
	recs := []models.FlaggedContent{
		record(models.ContentHateSpeech, "facebook", "high", baseTime),
		record(models.ContentHateSpeech, "facebook", "high", baseTime.Add(-time.Minute)),
		record(models.ContentHateSpeech, "facebook", "high", baseTime.Add(-2*time.Minute)),
	}

	assert.Equal(t, []PlatformStat{
		{Platform: "Facebook", Total: 3, HateSpeech: 3},
	}, agg.PlatformBreakdown(recs))

	assert.Equal(t, []SeverityStat{
		{Severity: "high", Count: 3, Percentage: 100.0},
	}, agg.SeverityDistribution(recs))
}

func TestPlatformBreakdown_OrderedByTotal(t *testing.T) {
	out := NewAggregator(nil).PlatformBreakdown(mixedRecords())

	require.Len(t, out, 5)
	assert.Equal(t, "Facebook", out[0].Platform)
	assert.Equal(t, 3, out[0].Total)
	assert.Equal(t, 2, out[0].HateSpeech)
	// remaining platforms have one record each and sort by name
	assert.Equal(t, []string{"Tiktok", "Twitter", "Whatsapp", "Youtube"},
		[]string{out[1].Platform, out[2].Platform, out[3].Platform, out[4].Platform})
}

func TestSeverityDistribution_PercentagesSumTo100(t *testing.T) {
	out := NewAggregator(nil).SeverityDistribution(mixedRecords())

	require.Len(t, out, 4)
	assert.Equal(t, []string{"low", "medium", "high", "critical"},
		[]string{out[0].Severity, out[1].Severity, out[2].Severity, out[3].Severity})

	var total float64
	for _, s := range out {
		total += s.Percentage
	}
	// 28.6 + 28.6 + 28.6 + 14.3: each share is rounded on its own
	assert.InDelta(t, 100.0, total, 0.15)
	assert.Equal(t, 28.6, out[0].Percentage)
	assert.Equal(t, 14.3, out[3].Percentage)
}

func TestSeverityDistribution_Empty(t *testing.T) {
	out := NewAggregator(nil).SeverityDistribution(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestTopPlatforms(t *testing.T) {
	recs := mixedRecords()
	recs = append(recs, record(models.ContentSpam, "other", "low", baseTime))

	out := NewAggregator(nil).TopPlatforms(recs, 5)

	require.Len(t, out, 5)
	assert.Equal(t, PlatformCount{Platform: "facebook", Count: 3}, out[0])
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Count, out[i].Count)
	}
}

func TestRecentHighPriority_NewestFirstAndCapped(t *testing.T) {
	recs := make([]models.FlaggedContent, 0, 15)
	for i := 0; i < 12; i++ {
		recs = append(recs, record(models.ContentHateSpeech, "facebook", "critical", baseTime.Add(-time.Duration(i)*time.Hour)))
	}
	recs = append(recs, record(models.ContentSpam, "facebook", "low", baseTime.Add(time.Hour)))
	recs[3].URL = "https://facebook.com/p/3"

	out := NewAggregator(nil).RecentHighPriority(recs, 10)

	require.Len(t, out, 10)
	assert.Equal(t, baseTime, out[0].DateReported)
	assert.Equal(t, "https://facebook.com/p/3", out[3].URL)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].DateReported.After(out[i].DateReported))
		assert.Contains(t, []string{"high", "critical"}, out[i].UrgencyLevel)
	}
}

func TestCountMaps(t *testing.T) {
	agg := NewAggregator(nil)
	recs := mixedRecords()

	assert.Equal(t, map[string]int{"facebook": 3, "twitter": 1, "whatsapp": 1, "tiktok": 1, "youtube": 1}, agg.PlatformCounts(recs))
	assert.Equal(t, map[string]int{"low": 2, "medium": 2, "high": 2, "critical": 1}, agg.UrgencyCounts(recs))
}
