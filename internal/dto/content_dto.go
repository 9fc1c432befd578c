package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

type SuspiciousContentRequest struct {
	ReporterName    string   `json:"reporter_name"`
	ReporterEmail   string   `json:"reporter_email"`
	ContentType     string   `json:"content_type"`
	Platform        string   `json:"platform"`
	URL             string   `json:"url"`
	UrgencyLevel    string   `json:"urgency_level"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	ConfidenceScore *float64 `json:"confidence_score"`
	PostID          string   `json:"post_id"`
	UserID          string   `json:"user_id"`
}

type CreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type FlaggedContentListResponse struct {
	Success bool                    `json:"success"`
	Items   []models.FlaggedContent `json:"items"`
	Total   int64                   `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}

type ClassifyRequest struct {
	Text string `json:"text"`
}

type ClassifyErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type PostListResponse struct {
	Success bool          `json:"success"`
	Posts   []models.Post `json:"posts"`
	Total   int64         `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	HasNext bool          `json:"has_next"`
}

type IngestResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Fetched  int    `json:"fetched"`
	Saved    int    `json:"saved"`
	Skipped  int    `json:"skipped"`
	Analyses int    `json:"analyses"`
	Alerts   int    `json:"alerts"`
}

type UpdateAlertStatusRequest struct {
	Status string `json:"status"`
}

type AlertListResponse struct {
	Success bool           `json:"success"`
	Alerts  []models.Alert `json:"alerts"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

type KPIResponse struct {
	TotalContent  int64     `json:"totalContent"`
	ActiveThreats int64     `json:"activeThreats"`
	Accuracy      float64   `json:"accuracy"`
	Platforms     int64     `json:"platforms"`
	LastUpdate    time.Time `json:"lastUpdate"`
}
