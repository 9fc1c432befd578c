package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/store"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

// memRecords evaluates queries in memory with Query.Matches.
type memRecords struct {
	mu      sync.Mutex
	records []models.FlaggedContent
	err     error
	calls   int
}

func (m *memRecords) Find(_ context.Context, q analytics.Query) ([]models.FlaggedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.FlaggedContent, 0)
	for i := range m.records {
		if q.Matches(&m.records[i]) {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *memRecords) Create(_ context.Context, r *models.FlaggedContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	r.ID = uuid.New()
	m.records = append(m.records, *r)
	return nil
}

func (m *memRecords) List(_ context.Context, limit, offset int) ([]models.FlaggedContent, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(len(m.records))
	if offset >= len(m.records) {
		return []models.FlaggedContent{}, total, nil
	}
	end := offset + limit
	if end > len(m.records) {
		end = len(m.records)
	}
	return m.records[offset:end], total, nil
}

type memPosts struct {
	posts []models.Post
}

func (m *memPosts) FindByPostID(_ context.Context, postID string) (*models.Post, error) {
	for i := range m.posts {
		if m.posts[i].PostID == postID {
			return &m.posts[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memPosts) Create(_ context.Context, p *models.Post) error {
	p.ID = uuid.New()
	m.posts = append(m.posts, *p)
	return nil
}

func (m *memPosts) List(_ context.Context, limit, offset int) ([]models.Post, int64, error) {
	return m.posts, int64(len(m.posts)), nil
}

func (m *memPosts) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.posts))
	m.posts = nil
	return n, nil
}

type memAnalyses struct {
	analyses []models.ContentAnalysis
}

func (m *memAnalyses) Create(_ context.Context, a *models.ContentAnalysis) error {
	m.analyses = append(m.analyses, *a)
	return nil
}

type memAlerts struct {
	alerts []models.Alert
}

func (m *memAlerts) Create(_ context.Context, a *models.Alert) error {
	a.ID = uuid.New()
	m.alerts = append(m.alerts, *a)
	return nil
}

func (m *memAlerts) List(_ context.Context, status string, limit, offset int) ([]models.Alert, int64, error) {
	out := make([]models.Alert, 0)
	for _, a := range m.alerts {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memAlerts) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			m.alerts[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

type stubClassifier struct {
	hate, misinfo classifier.Result
	texts         []string
}

func (s *stubClassifier) AnalyzeAll(_ context.Context, text string) (classifier.Result, classifier.Result) {
	s.texts = append(s.texts, text)
	return s.hate, s.misinfo
}

type stubSource struct {
	posts []SourcePost
}

func (s *stubSource) Fetch(_ context.Context, limit int) ([]SourcePost, error) {
	if limit > len(s.posts) {
		limit = len(s.posts)
	}
	return s.posts[:limit], nil
}

func flagged(contentType, platform, urgency string, at time.Time) models.FlaggedContent {
	return models.FlaggedContent{
		ID:           uuid.New(),
		ContentType:  contentType,
		Platform:     platform,
		UrgencyLevel: urgency,
		DateReported: at,
	}
}

func ptr[T any](v T) *T { return &v }
