package services

import (
	"context"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
)

// DashboardSources are the read-only counters behind the KPI tiles.
type DashboardSources struct {
	PostCount         func(ctx context.Context) (int64, error)
	ActiveAlerts      func(ctx context.Context) (int64, error)
	AverageConfidence func(ctx context.Context) (float64, error)
	Platforms         func(ctx context.Context) (int64, error)
	PostUpdated       func(ctx context.Context) (*time.Time, error)
	AlertUpdated      func(ctx context.Context) (*time.Time, error)
}

type DashboardService struct {
	src DashboardSources
	now func() time.Time
}

func NewDashboardService(src DashboardSources) *DashboardService {
	return &DashboardService{src: src, now: func() time.Time { return time.Now().UTC() }}
}

func (s *DashboardService) KPIs(ctx context.Context) (*dto.KPIResponse, error) {
	var out dto.KPIResponse
	var err error

	if out.TotalContent, err = s.src.PostCount(ctx); err != nil {
		return nil, err
	}
	if out.ActiveThreats, err = s.src.ActiveAlerts(ctx); err != nil {
		return nil, err
	}
	avg, err := s.src.AverageConfidence(ctx)
	if err != nil {
		return nil, err
	}
	out.Accuracy = math.Round(avg*100*100) / 100
	if out.Platforms, err = s.src.Platforms(ctx); err != nil {
		return nil, err
	}

	postUpdated, err := s.src.PostUpdated(ctx)
	if err != nil {
		return nil, err
	}
	alertUpdated, err := s.src.AlertUpdated(ctx)
	if err != nil {
		return nil, err
	}
	out.LastUpdate = latest(s.now(), postUpdated, alertUpdated)
	return &out, nil
}

// latest picks the newest non-nil time, or fallback when all are nil.
func latest(fallback time.Time, times ...*time.Time) time.Time {
	var best *time.Time
	for _, t := range times {
		if t != nil && (best == nil || t.After(*best)) {
			best = t
		}
	}
	if best == nil {
		return fallback
	}
	return best.UTC()
}
