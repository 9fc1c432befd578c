package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

var ErrInvalidPeriod = errors.New("invalid period")

// ValidationError is a request problem the caller can fix.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }
func (e *ValidationError) Unwrap() error { return e.Err }

// Report types for the range report.
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportCustom  = "custom"
)

// Filters are the optional caller filters of a range report.
type Filters struct {
	Platforms      []string `json:"platforms"`
	SeverityLevels []string `json:"severity_levels"`
	ContentTypes   []string `json:"content_types"`
}

// RangeRequest is a range report request before resolution.
type RangeRequest struct {
	ReportType string
	StartDate  string
	EndDate    string
	Filters    Filters
}

// Query selects records with DateReported in [Start, End) and, for each
// non-empty list, a field value contained in that list.
type Query struct {
	Start        time.Time
	End          time.Time
	Platforms    []string
	Urgencies    []string
	ContentTypes []string
}

// Matches evaluates the query predicate against a single record.
func (q Query) Matches(r *models.FlaggedContent) bool {
	if r.DateReported.Before(q.Start) || !r.DateReported.Before(q.End) {
		return false
	}
	if len(q.Platforms) > 0 && !containsString(q.Platforms, r.Platform) {
		return false
	}
	if len(q.Urgencies) > 0 && !containsString(q.Urgencies, r.UrgencyLevel) {
		return false
	}
	if len(q.ContentTypes) > 0 && !containsString(q.ContentTypes, r.ContentType) {
		return false
	}
	return true
}

var defaultWindows = map[string]time.Duration{
	ReportDaily:   24 * time.Hour,
	ReportWeekly:  7 * 24 * time.Hour,
	ReportMonthly: 30 * 24 * time.Hour,
	ReportCustom:  7 * 24 * time.Hour,
}

// MaxRangeSpan bounds an explicit date range. Longer ranges keep their end
// date and are clamped to this span.
const MaxRangeSpan = 366 * 24 * time.Hour

// ResolveRange turns a range request into a query. It never fails: a missing
// report type means daily, an unknown one gets the custom window, and dates
// that do not parse fall back to the window ending at now. Explicit ranges
// longer than MaxRangeSpan are clamped. The normalised report type is
// returned alongside the query.
func ResolveRange(req RangeRequest, now time.Time, t *Tables) (Query, string) {
	reportType := strings.ToLower(strings.TrimSpace(req.ReportType))
	if reportType == "" {
		reportType = ReportDaily
	}

	q := Query{
		Platforms:    normalizeTokens(req.Filters.Platforms),
		Urgencies:    normalizeTokens(req.Filters.SeverityLevels),
		ContentTypes: t.mapContentTypes(req.Filters.ContentTypes),
	}

	start, startErr := parseISODate(req.StartDate)
	end, endErr := parseISODate(req.EndDate)
	if startErr == nil && endErr == nil {
		if end.Sub(start) > MaxRangeSpan {
			start = end.Add(-MaxRangeSpan)
		}
		q.Start, q.End = start, end
		return q, reportType
	}

	window, ok := defaultWindows[reportType]
	if !ok {
		window = defaultWindows[ReportCustom]
	}
	q.End = now.UTC()
	q.Start = q.End.Add(-window)
	return q, reportType
}

// Period is a resolved period token of the analytics report.
type Period struct {
	Token    string
	Label    string
	Duration time.Duration
	Hourly   bool
}

var periods = map[string]Period{
	"24h": {Token: "24h", Label: "Last 24 Hours", Duration: 24 * time.Hour, Hourly: true},
	"7d":  {Token: "7d", Label: "Last 7 Days", Duration: 7 * 24 * time.Hour},
	"30d": {Token: "30d", Label: "Last 30 Days", Duration: 30 * 24 * time.Hour},
	"1y":  {Token: "1y", Label: "Last Year", Duration: 365 * 24 * time.Hour},
}

// ResolvePeriod resolves a period token and a comma-separated content type
// filter. Unlike ResolveRange, an unknown token is an error.
func ResolvePeriod(token, contentTypes string, now time.Time, t *Tables) (Query, Period, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		token = "24h"
	}

	p, ok := periods[token]
	if !ok {
		return Query{}, Period{}, &ValidationError{
			Field:  "period",
			Reason: fmt.Sprintf("Invalid period '%s'. Use one of: 24h, 7d, 30d, 1y", token),
			Err:    ErrInvalidPeriod,
		}
	}

	end := now.UTC()
	q := Query{Start: end.Add(-p.Duration), End: end}
	if contentTypes != "" {
		q.ContentTypes = t.mapContentTypes(strings.Split(contentTypes, ","))
	}
	return q, p, nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISODate parses the ISO-8601 forms clients send and normalises to UTC.
// Values without an offset are taken as UTC.
func parseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func normalizeTokens(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !containsString(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
