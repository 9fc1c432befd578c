package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AnalysisHate           = "hate"
	AnalysisMisinformation = "misinformation"
)

// ContentAnalysis stores one classifier verdict for a post.
type ContentAnalysis struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"post_id"`
	AnalysisType     string         `gorm:"size:20;not null;index" json:"analysis_type"`
	IsHarmful        bool           `gorm:"not null;default:false" json:"is_harmful"`
	Confidence       *float64       `json:"confidence"`
	Severity         string         `gorm:"size:20" json:"severity"`
	Category         string         `gorm:"size:100" json:"category"`
	Explanation      string         `gorm:"type:text" json:"explanation"`
	DetectedKeywords datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"detected_keywords"`
	RawResponse      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"raw_response"`
	CreatedAt        time.Time      `json:"created_at"`
	Post             Post           `gorm:"foreignKey:PostID" json:"-"`
}
