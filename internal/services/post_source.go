package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SourcePost is a post in the provider's wire format.
type SourcePost struct {
	ID                  string          `json:"id"`
	CreatedTime         string          `json:"created_time"`
	Timestamp           int64           `json:"timestamp"`
	PostType            string          `json:"post_type"`
	Text                string          `json:"text"`
	TextLang            string          `json:"text_lang"`
	TextTags            []string        `json:"text_tags"`
	AttachedLink        string          `json:"attached_link"`
	AttachedImageURL    string          `json:"attached_image_url"`
	ReactionsTotalCount int             `json:"reactions_total_count"`
	CommentsCount       int             `json:"comments_count"`
	SharesCount         int             `json:"shares_count"`
	VideoViewCount      int             `json:"video_view_count"`
	OwnerID             string          `json:"owner_id"`
	OwnerUsername       string          `json:"owner_username"`
	OwnerFullName       string          `json:"owner_full_name"`
	PostLocationID      string          `json:"post_location_id"`
	Raw                 json.RawMessage `json:"-"`
}

// PostSource fetches up to limit posts from a provider.
type PostSource interface {
	Fetch(ctx context.Context, limit int) ([]SourcePost, error)
}

// FixtureSource serves posts from a provider export on disk. It stands in
// for the live provider API.
type FixtureSource struct {
	path string
}

func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{path: path}
}

type fixtureFile struct {
	Posts []json.RawMessage `json:"cameroon_posts"`
}

// Fetch returns the first limit posts of the file. A missing file yields no
// posts.
func (s *FixtureSource) Fetch(ctx context.Context, limit int) ([]SourcePost, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []SourcePost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post fixture: %w", err)
	}

	var file fixtureFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse post fixture: %w", err)
	}

	if limit <= 0 || limit > len(file.Posts) {
		limit = len(file.Posts)
	}
	posts := make([]SourcePost, 0, limit)
	for _, raw := range file.Posts[:limit] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var p SourcePost
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse post: %w", err)
		}
		p.Raw = raw
		posts = append(posts, p)
	}
	return posts, nil
}
