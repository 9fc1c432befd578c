package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

type AlertStore struct {
	db *gorm.DB
}

func NewAlertStore(db *gorm.DB) *AlertStore {
	return &AlertStore{db: db}
}

func (s *AlertStore) Create(ctx context.Context, alert *models.Alert) error {
	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (s *AlertStore) List(ctx context.Context, status string, limit, offset int) ([]models.Alert, int64, error) {
	var alerts []models.Alert
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Alert{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&alerts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, total, nil
}

func (s *AlertStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := s.db.WithContext(ctx).Model(&models.Alert{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActive counts alerts that are new or in progress.
func (s *AlertStore) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Alert{}).
		Where("status IN ?", []string{models.AlertStatusNew, models.AlertStatusInProgress}).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active alerts: %w", err)
	}
	return n, nil
}

func (s *AlertStore) LatestUpdate(ctx context.Context) (*time.Time, error) {
	var alert models.Alert
	if err := s.db.WithContext(ctx).Order("updated_at DESC").First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest alert: %w", err)
	}
	return &alert.UpdatedAt, nil
}
