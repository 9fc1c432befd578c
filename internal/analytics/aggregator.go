// Package analytics turns a filtered set of flagged-content records into
// report figures: counts, breakdowns, trend series, keyword frequencies and
// per-location risk. Nothing here touches storage; callers fetch the records
// and pass them in, so every function is safe for concurrent use.
package analytics

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

// Aggregator computes report sections from an already-filtered record set.
type Aggregator struct {
	tables *Tables
}

func NewAggregator(t *Tables) *Aggregator {
	if t == nil {
		t = DefaultTables()
	}
	return &Aggregator{tables: t}
}

func (a *Aggregator) Tables() *Tables { return a.tables }

type Summary struct {
	Total             int     `json:"total_posts_analyzed"`
	HateSpeech        int     `json:"hate_speech_count"`
	Misinformation    int     `json:"misinformation_count"`
	Harassment        int     `json:"harassment_count"`
	Spam              int     `json:"spam_count"`
	Fake              int     `json:"fake_count"`
	AverageConfidence float64 `json:"average_confidence"`
}

type PlatformStat struct {
	Platform       string `json:"platform"`
	Total          int    `json:"total"`
	HateSpeech     int    `json:"hate_speech"`
	Misinformation int    `json:"misinformation"`
	Harassment     int    `json:"harassment"`
	Spam           int    `json:"spam"`
	Fake           int    `json:"fake"`
}

type SeverityStat struct {
	Severity   string  `json:"severity"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

// RecordSummary is the compact projection used for high-priority listings.
type RecordSummary struct {
	ID           string    `json:"id"`
	ContentType  string    `json:"content_type"`
	Platform     string    `json:"platform"`
	UrgencyLevel string    `json:"urgency_level"`
	URL          string    `json:"url"`
	DateReported time.Time `json:"date_reported"`
}

func (a *Aggregator) Summarize(records []models.FlaggedContent) Summary {
	s := Summary{Total: len(records)}
	var confidence float64
	for i := range records {
		r := &records[i]
		confidence += r.ConfidenceScore
		switch r.ContentType {
		case models.ContentHateSpeech:
			s.HateSpeech++
		case models.ContentMisinformation:
			s.Misinformation++
		case models.ContentHarassment:
			s.Harassment++
		case models.ContentSpam:
			s.Spam++
		case models.ContentFake:
			s.Fake++
		}
	}
	if s.Total > 0 {
		s.AverageConfidence = round(confidence/float64(s.Total), 3)
	}
	return s
}

// PlatformBreakdown returns per-platform content type counts, largest
// platform first.
func (a *Aggregator) PlatformBreakdown(records []models.FlaggedContent) []PlatformStat {
	byPlatform := make(map[string]*PlatformStat)
	for i := range records {
		r := &records[i]
		ps, ok := byPlatform[r.Platform]
		if !ok {
			ps = &PlatformStat{Platform: r.Platform}
			byPlatform[r.Platform] = ps
		}
		ps.Total++
		switch r.ContentType {
		case models.ContentHateSpeech:
			ps.HateSpeech++
		case models.ContentMisinformation:
			ps.Misinformation++
		case models.ContentHarassment:
			ps.Harassment++
		case models.ContentSpam:
			ps.Spam++
		case models.ContentFake:
			ps.Fake++
		}
	}

	out := make([]PlatformStat, 0, len(byPlatform))
	for _, ps := range byPlatform {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Platform < out[j].Platform
	})
	for i := range out {
		out[i].Platform = titleCase(out[i].Platform)
	}
	return out
}

// SeverityDistribution lists each urgency level present with its share of
// the total, in urgency order.
func (a *Aggregator) SeverityDistribution(records []models.FlaggedContent) []SeverityStat {
	counts := a.countBy(records, func(r *models.FlaggedContent) string { return r.UrgencyLevel })
	out := make([]SeverityStat, 0, len(counts))
	if len(records) == 0 {
		return out
	}
	for _, level := range sortedKeys(counts, urgencyRank) {
		c := counts[level]
		out = append(out, SeverityStat{
			Severity:   level,
			Count:      c,
			Percentage: round(100*float64(c)/float64(len(records)), 1),
		})
	}
	return out
}

func (a *Aggregator) ContentTypeCounts(records []models.FlaggedContent) map[string]int {
	return a.countBy(records, func(r *models.FlaggedContent) string { return r.ContentType })
}

func (a *Aggregator) PlatformCounts(records []models.FlaggedContent) map[string]int {
	return a.countBy(records, func(r *models.FlaggedContent) string { return r.Platform })
}

func (a *Aggregator) UrgencyCounts(records []models.FlaggedContent) map[string]int {
	return a.countBy(records, func(r *models.FlaggedContent) string { return r.UrgencyLevel })
}

// TopPlatforms returns the n platforms with the most records. Equal counts
// are ordered by platform name.
func (a *Aggregator) TopPlatforms(records []models.FlaggedContent, n int) []PlatformCount {
	counts := a.PlatformCounts(records)
	out := make([]PlatformCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, PlatformCount{Platform: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Platform < out[j].Platform
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RecentHighPriority returns the n newest high or critical records.
func (a *Aggregator) RecentHighPriority(records []models.FlaggedContent, n int) []RecordSummary {
	high := make([]*models.FlaggedContent, 0)
	for i := range records {
		if records[i].IsHighPriority() {
			high = append(high, &records[i])
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].DateReported.After(high[j].DateReported)
	})
	if len(high) > n {
		high = high[:n]
	}

	out := make([]RecordSummary, len(high))
	for i, r := range high {
		out[i] = RecordSummary{
			ID:           r.ID.String(),
			ContentType:  r.ContentType,
			Platform:     r.Platform,
			UrgencyLevel: r.UrgencyLevel,
			URL:          r.URL,
			DateReported: r.DateReported,
		}
	}
	return out
}

func (a *Aggregator) countBy(records []models.FlaggedContent, key func(*models.FlaggedContent) string) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		counts[key(&records[i])]++
	}
	return counts
}

var urgencyRank = map[string]int{
	models.UrgencyLow:      0,
	models.UrgencyMedium:   1,
	models.UrgencyHigh:     2,
	models.UrgencyCritical: 3,
}

// sortedKeys orders keys by rank; unranked keys follow, alphabetically.
func sortedKeys(m map[string]int, rank map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// titleCase capitalises display names. A Caser is not goroutine safe, so one
// is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
