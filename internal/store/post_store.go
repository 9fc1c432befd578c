package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

var ErrNotFound = errors.New("record not found")

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// FindByPostID looks a post up by its provider id.
func (s *PostStore) FindByPostID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (s *PostStore) List(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Post{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}
	if err := query.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// DeleteAll removes every post and its analyses.
func (s *PostStore) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ContentAnalysis{}).Error; err != nil {
			return err
		}
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}
	return deleted, nil
}

// LatestUpdate returns the most recent post update time, or nil when there
// are no posts.
func (s *PostStore) LatestUpdate(ctx context.Context) (*time.Time, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Order("updated_at DESC").First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest post: %w", err)
	}
	return &post.UpdatedAt, nil
}

type AnalysisStore struct {
	db *gorm.DB
}

func NewAnalysisStore(db *gorm.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

func (s *AnalysisStore) Create(ctx context.Context, analysis *models.ContentAnalysis) error {
	if err := s.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create content analysis: %w", err)
	}
	return nil
}

// AverageConfidence averages classifier confidence over analyses that
// reported one. It is 0 when none did.
func (s *AnalysisStore) AverageConfidence(ctx context.Context) (float64, error) {
	var avg *float64
	err := s.db.WithContext(ctx).Model(&models.ContentAnalysis{}).
		Where("confidence IS NOT NULL").
		Select("AVG(confidence)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average confidence: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
