package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlertStatusNew        = "new"
	AlertStatusInProgress = "in_progress"
	AlertStatusResolved   = "resolved"
	AlertStatusClosed     = "closed"
)

var AlertStatuses = []string{AlertStatusNew, AlertStatusInProgress, AlertStatusResolved, AlertStatusClosed}

type Alert struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Severity    string    `gorm:"size:20;not null;index" json:"severity"`
	Status      string    `gorm:"size:20;not null;default:'new';index" json:"status"`
	Source      string    `gorm:"size:100" json:"source"`
	Location    string    `gorm:"size:200" json:"location,omitempty"`
	PostID      *string   `gorm:"size:100" json:"post_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidAlertStatus(v string) bool { return contains(AlertStatuses, v) }
