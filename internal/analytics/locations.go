package analytics

import (
	"sort"
	"strings"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

type LocationInsight struct {
	Location     string   `json:"location"`
	TotalPosts   int      `json:"total_posts"`
	RiskLevel    string   `json:"risk_level"`
	CommonIssues []string `json:"common_issues"`
}

type locationAcc struct {
	name           string
	total          int
	highPriority   int
	hateSpeech     int
	misinformation int
}

// LocationInsights groups records by location, case-insensitively and under
// the first spelling seen, skipping records without one. Busiest locations
// come first.
func (a *Aggregator) LocationInsights(records []models.FlaggedContent) []LocationInsight {
	byLocation := make(map[string]*locationAcc)
	for i := range records {
		r := &records[i]
		loc := strings.TrimSpace(r.Location)
		if loc == "" {
			continue
		}
		key := strings.ToLower(loc)
		acc, ok := byLocation[key]
		if !ok {
			acc = &locationAcc{name: loc}
			byLocation[key] = acc
		}
		acc.total++
		if r.IsHighPriority() {
			acc.highPriority++
		}
		switch r.ContentType {
		case models.ContentHateSpeech:
			acc.hateSpeech++
		case models.ContentMisinformation:
			acc.misinformation++
		}
	}

	out := make([]LocationInsight, 0, len(byLocation))
	for _, acc := range byLocation {
		out = append(out, LocationInsight{
			Location:     acc.name,
			TotalPosts:   acc.total,
			RiskLevel:    riskLevel(float64(acc.highPriority) / float64(acc.total)),
			CommonIssues: a.commonIssues(acc),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPosts != out[j].TotalPosts {
			return out[i].TotalPosts > out[j].TotalPosts
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// riskLevel maps the high/critical fraction of a location to a band.
func riskLevel(highFraction float64) string {
	switch {
	case highFraction > 0.3:
		return "high"
	case highFraction > 0.1:
		return "medium"
	default:
		return "low"
	}
}

func (a *Aggregator) commonIssues(acc *locationAcc) []string {
	if known, ok := a.tables.LocationIssues[strings.ToLower(acc.name)]; ok {
		return append([]string(nil), known...)
	}

	issues := make([]string, 0, 2)
	total := float64(acc.total)
	if float64(acc.hateSpeech)/total > 0.3 {
		issues = append(issues, "hate speech content")
	}
	if float64(acc.misinformation)/total > 0.3 {
		issues = append(issues, "misinformation spread")
	}
	if len(issues) == 0 {
		issues = append(issues, "various suspicious content")
	}
	return issues
}
