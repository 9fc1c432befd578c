package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z]{2,}$`)

// FieldErrors maps request fields to the reason they were rejected.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

type FlaggedRepository interface {
	Create(ctx context.Context, record *models.FlaggedContent) error
	List(ctx context.Context, limit, offset int) ([]models.FlaggedContent, int64, error)
}

// IntakeService accepts suspicious-content reports from the public form.
type IntakeService struct {
	records FlaggedRepository
	now     func() time.Time
}

func NewIntakeService(records FlaggedRepository) *IntakeService {
	return &IntakeService{records: records, now: func() time.Time { return time.Now().UTC() }}
}

func (s *IntakeService) Submit(ctx context.Context, req *dto.SuspiciousContentRequest) (*models.FlaggedContent, error) {
	record, errs := buildRecord(req)
	if len(errs) > 0 {
		return nil, errs
	}
	record.DateReported = s.now()

	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return record, nil
}

func (s *IntakeService) List(ctx context.Context, limit, offset int) ([]models.FlaggedContent, int64, error) {
	return s.records.List(ctx, limit, offset)
}

func buildRecord(req *dto.SuspiciousContentRequest) (*models.FlaggedContent, FieldErrors) {
	errs := FieldErrors{}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !models.IsValidContentType(contentType) {
		errs["content_type"] = "must be one of: " + strings.Join(models.ContentTypes, ", ")
	}
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if !models.IsValidPlatform(platform) {
		errs["platform"] = "must be one of: " + strings.Join(models.Platforms, ", ")
	}
	urgency := strings.ToLower(strings.TrimSpace(req.UrgencyLevel))
	if !models.IsValidUrgency(urgency) {
		errs["urgency_level"] = "must be one of: " + strings.Join(models.UrgencyLevels, ", ")
	}

	rawURL := strings.TrimSpace(req.URL)
	if u, err := url.ParseRequestURI(rawURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs["url"] = "a valid http(s) URL is required"
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		errs["description"] = "description is required"
	}
	email := strings.TrimSpace(req.ReporterEmail)
	if email != "" && !emailPattern.MatchString(email) {
		errs["reporter_email"] = "invalid email address"
	}

	var confidence float64
	if req.ConfidenceScore != nil {
		confidence = *req.ConfidenceScore
		if confidence < 0 || confidence > 1 {
			errs["confidence_score"] = "must be between 0 and 1"
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &models.FlaggedContent{
		ReporterName:    strings.TrimSpace(req.ReporterName),
		ReporterEmail:   email,
		ContentType:     contentType,
		Platform:        platform,
		URL:             rawURL,
		UrgencyLevel:    urgency,
		Description:     description,
		Location:        strings.TrimSpace(req.Location),
		ConfidenceScore: confidence,
		PostID:          strings.TrimSpace(req.PostID),
		UserID:          strings.TrimSpace(req.UserID),
	}, nil
}
