package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Post is a social-media post pulled from the provider feed.
type Post struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID              string         `gorm:"size:100;not null;uniqueIndex" json:"post_id"`
	Platform            string         `gorm:"size:100;not null;default:'facebook'" json:"platform"`
	CreatedTime         string         `gorm:"size:50" json:"created_time"`
	Timestamp           int64          `gorm:"index" json:"timestamp"`
	PostType            string         `gorm:"size:50" json:"post_type"`
	Text                string         `gorm:"type:text" json:"text"`
	TextLang            string         `gorm:"size:10" json:"text_lang"`
	TextTags            datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"text_tags"`
	AttachedLink        string         `gorm:"size:2048" json:"attached_link"`
	AttachedImageURL    string         `gorm:"size:2048" json:"attached_image_url"`
	ReactionsTotalCount int            `json:"reactions_total_count"`
	CommentsCount       int            `json:"comments_count"`
	SharesCount         int            `json:"shares_count"`
	VideoViewCount      int            `json:"video_view_count"`
	OwnerID             string         `gorm:"size:50" json:"owner_id"`
	OwnerUsername       string         `gorm:"size:100" json:"owner_username"`
	OwnerFullName       string         `gorm:"size:200" json:"owner_full_name"`
	PostLocationID      string         `gorm:"size:50" json:"post_location_id"`
	Raw                 datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
