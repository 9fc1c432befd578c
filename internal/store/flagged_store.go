// Package store holds the gorm-backed repositories.
package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

// FlaggedStore owns the flagged_contents table. Records are only ever
// inserted and read.
type FlaggedStore struct {
	db *gorm.DB
}

func NewFlaggedStore(db *gorm.DB) *FlaggedStore {
	return &FlaggedStore{db: db}
}

func (s *FlaggedStore) Create(ctx context.Context, record *models.FlaggedContent) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create flagged content: %w", err)
	}
	return nil
}

// List returns records newest first together with the total row count.
func (s *FlaggedStore) List(ctx context.Context, limit, offset int) ([]models.FlaggedContent, int64, error) {
	var records []models.FlaggedContent
	var total int64

	query := s.db.WithContext(ctx).Model(&models.FlaggedContent{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count flagged content: %w", err)
	}
	if err := query.Order("date_reported DESC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list flagged content: %w", err)
	}
	return records, total, nil
}

// Find runs the report query predicate in the database, newest first.
func (s *FlaggedStore) Find(ctx context.Context, q analytics.Query) ([]models.FlaggedContent, error) {
	var records []models.FlaggedContent
	if err := s.db.WithContext(ctx).Scopes(ForQuery(q)).Order("date_reported DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query flagged content: %w", err)
	}
	return records, nil
}

// DistinctPlatforms counts the platforms that have at least one record.
func (s *FlaggedStore) DistinctPlatforms(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.FlaggedContent{}).Distinct("platform").Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count platforms: %w", err)
	}
	return n, nil
}

// ForQuery returns a GORM scope applying the report predicate:
// date_reported in [start, end) plus the optional IN filters.
func ForQuery(q analytics.Query) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("date_reported >= ? AND date_reported < ?", q.Start, q.End)
		if len(q.Platforms) > 0 {
			db = db.Where("platform IN ?", q.Platforms)
		}
		if len(q.Urgencies) > 0 {
			db = db.Where("urgency_level IN ?", q.Urgencies)
		}
		if len(q.ContentTypes) > 0 {
			db = db.Where("content_type IN ?", q.ContentTypes)
		}
		return db
	}
}
