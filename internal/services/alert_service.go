package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/store"
)

var (
	ErrAlertNotFound      = errors.New("alert not found")
	ErrInvalidAlertStatus = errors.New("invalid status: must be one of new, in_progress, resolved, closed")
)

type AlertRepository interface {
	List(ctx context.Context, status string, limit, offset int) ([]models.Alert, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type AlertService struct {
	alerts AlertRepository
}

func NewAlertService(alerts AlertRepository) *AlertService {
	return &AlertService{alerts: alerts}
}

func (s *AlertService) List(ctx context.Context, status string, limit, offset int) ([]models.Alert, int64, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !models.IsValidAlertStatus(status) {
		return nil, 0, ErrInvalidAlertStatus
	}
	return s.alerts.List(ctx, status, limit, offset)
}

func (s *AlertService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.IsValidAlertStatus(status) {
		return ErrInvalidAlertStatus
	}
	err := s.alerts.UpdateStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAlertNotFound
	}
	return err
}
