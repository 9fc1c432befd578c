package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/cache"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

const (
	reportKindRange     = "range"
	reportKindAnalytics = "analytics"

	topKeywordsLimit    = 10
	topPlatformsLimit   = 5
	recentPriorityLimit = 10
)

// ComputationError is any fault raised while filtering, aggregating or
// assembling a report.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("failed to generate report: %s: %v", e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// RecordFinder runs the report predicate against the record store.
type RecordFinder interface {
	Find(ctx context.Context, q analytics.Query) ([]models.FlaggedContent, error)
}

type ReportService struct {
	records RecordFinder
	agg     *analytics.Aggregator
	cache   *cache.ReportCache
	now     func() time.Time
}

// NewReportService wires the report endpoints. A nil cache disables caching
// of period reports.
func NewReportService(records RecordFinder, agg *analytics.Aggregator, rc *cache.ReportCache) *ReportService {
	return &ReportService{
		records: records,
		agg:     agg,
		cache:   rc,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Generate builds a range report. It never returns a partial report: the
// result is either complete or nil with an error.
func (s *ReportService) Generate(ctx context.Context, req dto.GenerateReportRequest) (report *dto.RangeReport, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, &ComputationError{Op: "assemble", Err: fmt.Errorf("panic: %v", r)}
		}
		metrics.RecordReport(reportKindRange, err == nil, time.Since(start))
	}()

	rr := analytics.RangeRequest{ReportType: req.ReportType, Filters: req.Filters}
	if req.DateRange != nil {
		rr.StartDate = req.DateRange.StartDate
		rr.EndDate = req.DateRange.EndDate
	}
	now := s.now()
	q, reportType := analytics.ResolveRange(rr, now, s.agg.Tables())

	records, err := s.records.Find(ctx, q)
	if err != nil {
		return nil, &ComputationError{Op: "query", Err: err}
	}

	out := &dto.RangeReport{
		ReportID:             newReportID(now),
		ReportType:           reportType,
		GeneratedAt:          now,
		DateRange:            dto.ReportDateRange{StartDate: q.Start, EndDate: q.End},
		Summary:              dto.ReportSummary{Summary: s.agg.Summarize(records)},
		PlatformBreakdown:    s.agg.PlatformBreakdown(records),
		SeverityDistribution: s.agg.SeverityDistribution(records),
		TopKeywords:          s.agg.TopKeywords(records, topKeywordsLimit),
		LocationInsights:     s.agg.LocationInsights(records),
		Trends:               s.agg.DailyTrend(records, q.Start, q.End),
	}
	out.Summary.AverageProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000

	slog.Info("range report generated",
		"component", "reports",
		"report_id", out.ReportID,
		"report_type", reportType,
		"records", len(records),
	)
	return out, nil
}

// Analytics builds a period report. An unrecognised period is returned as
// an *analytics.ValidationError.
func (s *ReportService) Analytics(ctx context.Context, period, contentTypes string) (report *dto.AnalyticsReport, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, &ComputationError{Op: "assemble", Err: fmt.Errorf("panic: %v", r)}
		}
		var verr *analytics.ValidationError
		if !errors.As(err, &verr) {
			metrics.RecordReport(reportKindAnalytics, err == nil, time.Since(start))
		}
	}()

	now := s.now()
	q, p, err := analytics.ResolvePeriod(period, contentTypes, now, s.agg.Tables())
	if err != nil {
		return nil, err
	}

	key := cache.Key(p.Token, q.ContentTypes)
	if cached := s.cached(ctx, key); cached != nil {
		return cached, nil
	}

	records, err := s.records.Find(ctx, q)
	if err != nil {
		return nil, &ComputationError{Op: "query", Err: err}
	}

	out := &dto.AnalyticsReport{
		Period:                    p.Token,
		PeriodLabel:               p.Label,
		DateRange:                 dto.PeriodDateRange{Start: q.Start, End: q.End},
		TotalReports:              len(records),
		ContentTypeBreakdown:      s.agg.ContentTypeCounts(records),
		PlatformBreakdown:         s.agg.PlatformCounts(records),
		UrgencyBreakdown:          s.agg.UrgencyCounts(records),
		TopPlatforms:              s.agg.TopPlatforms(records, topPlatformsLimit),
		RecentHighPriorityReports: s.agg.RecentHighPriority(records, recentPriorityLimit),
		ReportGeneratedAt:         now,
	}
	trend := s.agg.GroupedTrend(records, p.Hourly)
	if p.Hourly {
		out.HourlyTrend = &trend
	} else {
		out.DailyTrend = &trend
	}

	s.store(ctx, key, out)
	return out, nil
}

func (s *ReportService) cached(ctx context.Context, key string) *dto.AnalyticsReport {
	if s.cache == nil {
		return nil
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("report cache read failed", "component", "reports", "error", err.Error())
		return nil
	}
	metrics.RecordCacheLookup(ok)
	if !ok {
		return nil
	}
	var report dto.AnalyticsReport
	if err := json.Unmarshal(payload, &report); err != nil {
		slog.Warn("report cache entry unreadable", "component", "reports", "key", key, "error", err.Error())
		return nil
	}
	return &report
}

func (s *ReportService) store(ctx context.Context, key string, report *dto.AnalyticsReport) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		slog.Warn("report cache write failed", "component", "reports", "error", err.Error())
	}
}

// newReportID returns RPT-YYYYMMDD-XXXXXXXX with a random hex suffix.
func newReportID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "RPT-" + now.Format("20060102") + "-" + strings.ToUpper(suffix)
}
