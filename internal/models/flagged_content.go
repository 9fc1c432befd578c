package models

import (
	"time"

	"github.com/google/uuid"
)

// Content types.
const (
	ContentMisinformation = "misinformation"
	ContentHateSpeech     = "hatespeech"
	ContentHarassment     = "harassment"
	ContentSpam           = "spam"
	ContentFake           = "fake"
	ContentNews           = "news"
	ContentOther          = "other"
)

// Platforms.
const (
	PlatformFacebook = "facebook"
	PlatformYouTube  = "youtube"
	PlatformTikTok   = "tiktok"
	PlatformWhatsApp = "whatsapp"
	PlatformTwitter  = "twitter"
	PlatformOther    = "other"
)

// Urgency levels, lowest first.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var (
	ContentTypes  = []string{ContentMisinformation, ContentHateSpeech, ContentHarassment, ContentSpam, ContentFake, ContentNews, ContentOther}
	Platforms     = []string{PlatformFacebook, PlatformYouTube, PlatformTikTok, PlatformWhatsApp, PlatformTwitter, PlatformOther}
	UrgencyLevels = []string{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}
)

// FlaggedContent is one reported or detected item of suspicious content.
// DateReported is the time dimension used by every report; CreatedAt and
// UpdatedAt are bookkeeping only. Rows are append-only.
type FlaggedContent struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReporterName    string    `gorm:"size:255" json:"reporter_name,omitempty"`
	ReporterEmail   string    `gorm:"size:255" json:"reporter_email,omitempty"`
	ContentType     string    `gorm:"size:20;not null;index" json:"content_type"`
	Platform        string    `gorm:"size:100;not null;index" json:"platform"`
	URL             string    `gorm:"size:2048" json:"url"`
	UrgencyLevel    string    `gorm:"size:10;not null;index" json:"urgency_level"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Location        string    `gorm:"size:200;index" json:"location,omitempty"`
	ConfidenceScore float64   `gorm:"not null;default:0" json:"confidence_score"`
	PostID          string    `gorm:"size:100" json:"post_id,omitempty"`
	UserID          string    `gorm:"size:100" json:"user_id,omitempty"`
	EvidenceRef     string    `gorm:"size:500" json:"evidence_ref,omitempty"`
	DateReported    time.Time `gorm:"not null;index" json:"date_reported"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (FlaggedContent) TableName() string { return "flagged_contents" }

// IsHighPriority reports whether the record's urgency is high or critical.
func (f *FlaggedContent) IsHighPriority() bool {
	return f.UrgencyLevel == UrgencyHigh || f.UrgencyLevel == UrgencyCritical
}

func IsValidContentType(v string) bool { return contains(ContentTypes, v) }
func IsValidPlatform(v string) bool    { return contains(Platforms, v) }
func IsValidUrgency(v string) bool     { return contains(UrgencyLevels, v) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
