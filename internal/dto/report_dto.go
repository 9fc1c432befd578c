package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
)

type DateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type GenerateReportRequest struct {
	ReportType string            `json:"report_type"`
	DateRange  *DateRangeRequest `json:"date_range"`
	Filters    analytics.Filters `json:"filters"`
}

type ReportDateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type ReportSummary struct {
	analytics.Summary
	AverageProcessingTimeMs float64 `json:"average_processing_time_ms"`
}

type RangeReport struct {
	ReportID             string                      `json:"report_id"`
	ReportType           string                      `json:"report_type"`
	GeneratedAt          time.Time                   `json:"generated_at"`
	DateRange            ReportDateRange             `json:"date_range"`
	Summary              ReportSummary               `json:"summary"`
	PlatformBreakdown    []analytics.PlatformStat    `json:"platform_breakdown"`
	SeverityDistribution []analytics.SeverityStat    `json:"severity_distribution"`
	TopKeywords          []analytics.KeywordStat     `json:"top_keywords"`
	LocationInsights     []analytics.LocationInsight `json:"location_insights"`
	Trends               []analytics.TrendBucket     `json:"trends"`
}

type RangeReportResponse struct {
	Success bool         `json:"success"`
	Data    *RangeReport `json:"data"`
}

type ReportErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type PeriodDateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AnalyticsReport carries exactly one of HourlyTrend or DailyTrend.
type AnalyticsReport struct {
	Period                    string                    `json:"period"`
	PeriodLabel               string                    `json:"period_label"`
	DateRange                 PeriodDateRange           `json:"date_range"`
	TotalReports              int                       `json:"total_reports"`
	ContentTypeBreakdown      map[string]int            `json:"content_type_breakdown"`
	PlatformBreakdown         map[string]int            `json:"platform_breakdown"`
	UrgencyBreakdown          map[string]int            `json:"urgency_breakdown"`
	TopPlatforms              []analytics.PlatformCount `json:"top_platforms"`
	RecentHighPriorityReports []analytics.RecordSummary `json:"recent_high_priority_reports"`
	ReportGeneratedAt         time.Time                 `json:"report_generated_at"`
	HourlyTrend               *[]analytics.TrendBucket  `json:"hourly_trend,omitempty"`
	DailyTrend                *[]analytics.TrendBucket  `json:"daily_trend,omitempty"`
}

type AnalyticsReportResponse struct {
	Success bool             `json:"success"`
	Report  *AnalyticsReport `json:"report"`
}
