package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/store"
)

type PostRepository interface {
	FindByPostID(ctx context.Context, postID string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, limit, offset int) ([]models.Post, int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.ContentAnalysis) error
}

type AlertCreator interface {
	Create(ctx context.Context, alert *models.Alert) error
}

// Classifier is satisfied by *classifier.Client.
type Classifier interface {
	AnalyzeAll(ctx context.Context, text string) (hate, misinfo classifier.Result)
}

// IngestResult tallies one ingest run.
type IngestResult struct {
	Fetched  int
	Saved    int
	Skipped  int
	Analyses int
	Alerts   int
}

type IngestService struct {
	source    PostSource
	posts     PostRepository
	analyses  AnalysisRepository
	alerts    AlertCreator
	clf       Classifier
	threshold float64
}

func NewIngestService(source PostSource, posts PostRepository, analyses AnalysisRepository, alerts AlertCreator, c Classifier, threshold float64) *IngestService {
	return &IngestService{
		source:    source,
		posts:     posts,
		analyses:  analyses,
		alerts:    alerts,
		clf:       c,
		threshold: threshold,
	}
}

// Ingest pulls posts from the source, saves the new ones and classifies
// their text. Classifier failures are logged and skipped.
func (s *IngestService) Ingest(ctx context.Context, limit int) (*IngestResult, error) {
	fetched, err := s.source.Fetch(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	res := &IngestResult{Fetched: len(fetched)}
	for i := range fetched {
		src := &fetched[i]
		if src.ID == "" {
			res.Skipped++
			continue
		}
		_, err := s.posts.FindByPostID(ctx, src.ID)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return res, err
		}

		post, err := toPost(src)
		if err != nil {
			return res, err
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return res, err
		}
		res.Saved++

		if strings.TrimSpace(post.Text) == "" {
			continue
		}
		analyses, alerts := s.classify(ctx, post)
		res.Analyses += analyses
		res.Alerts += alerts
	}

	slog.Info("posts ingested",
		"component", "ingest",
		"fetched", res.Fetched,
		"saved", res.Saved,
		"skipped", res.Skipped,
		"alerts", res.Alerts,
	)
	return res, nil
}

func (s *IngestService) classify(ctx context.Context, post *models.Post) (analyses, alerts int) {
	hate, misinfo := s.clf.AnalyzeAll(ctx, post.Text)
	for _, r := range []classifier.Result{hate, misinfo} {
		if r.Err != nil {
			slog.Warn("classifier call failed",
				"component", "ingest",
				"post_id", post.PostID,
				"error", r.Err.Error(),
			)
			continue
		}
		if r.Verdict == nil {
			continue
		}

		analysis, err := toAnalysis(post.ID, r.Verdict)
		if err != nil {
			slog.Error("failed to encode content analysis",
				"component", "ingest",
				"post_id", post.PostID,
				"error", err.Error(),
			)
			continue
		}
		if err := s.analyses.Create(ctx, analysis); err != nil {
			slog.Error("failed to save content analysis",
				"component", "ingest",
				"post_id", post.PostID,
				"error", err.Error(),
			)
			continue
		}
		analyses++

		alert := s.alertFor(post, r.Verdict)
		if alert == nil {
			continue
		}
		if err := s.alerts.Create(ctx, alert); err != nil {
			slog.Error("failed to create alert",
				"component", "ingest",
				"post_id", post.PostID,
				"error", err.Error(),
			)
			continue
		}
		alerts++
	}
	return analyses, alerts
}

// alertFor returns nil unless the verdict is harmful with confidence above
// the threshold.
func (s *IngestService) alertFor(post *models.Post, v *classifier.Verdict) *models.Alert {
	if !v.Harmful || v.Confidence == nil || *v.Confidence <= s.threshold {
		return nil
	}

	label, source := "Hate Speech", "Model API - Hate Speech"
	if v.Kind == classifier.KindMisinformation {
		label, source = "Misinformation", "Model API - Misinformation"
	}
	severity := models.UrgencyMedium
	if v.Severity == models.UrgencyHigh {
		severity = models.UrgencyHigh
	}
	postID := post.PostID

	return &models.Alert{
		Title:       fmt.Sprintf("%s Detected in Post %s", label, post.PostID),
		Description: fmt.Sprintf("%s detected with %.2f confidence. Severity: %s.", label, *v.Confidence, v.Severity),
		Severity:    severity,
		Status:      models.AlertStatusNew,
		Source:      source,
		PostID:      &postID,
	}
}

func (s *IngestService) List(ctx context.Context, limit, offset int) ([]models.Post, int64, error) {
	return s.posts.List(ctx, limit, offset)
}

func (s *IngestService) Clear(ctx context.Context) (int64, error) {
	return s.posts.DeleteAll(ctx)
}

// jsonList encodes a string list for a JSON column, nil as [].
func jsonList(items []string) (datatypes.JSON, error) {
	if items == nil {
		return datatypes.JSON("[]"), nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list: %w", err)
	}
	return datatypes.JSON(b), nil
}

func toPost(src *SourcePost) (*models.Post, error) {
	tags, err := jsonList(src.TextTags)
	if err != nil {
		return nil, err
	}
	raw := datatypes.JSON(src.Raw)
	if len(raw) == 0 {
		raw = datatypes.JSON("{}")
	}
	return &models.Post{
		PostID:              src.ID,
		Platform:            models.PlatformFacebook,
		CreatedTime:         src.CreatedTime,
		Timestamp:           src.Timestamp,
		PostType:            src.PostType,
		Text:                src.Text,
		TextLang:            src.TextLang,
		TextTags:            tags,
		AttachedLink:        src.AttachedLink,
		AttachedImageURL:    src.AttachedImageURL,
		ReactionsTotalCount: src.ReactionsTotalCount,
		CommentsCount:       src.CommentsCount,
		SharesCount:         src.SharesCount,
		VideoViewCount:      src.VideoViewCount,
		OwnerID:             src.OwnerID,
		OwnerUsername:       src.OwnerUsername,
		OwnerFullName:       src.OwnerFullName,
		PostLocationID:      src.PostLocationID,
		Raw:                 raw,
	}, nil
}

func toAnalysis(postID uuid.UUID, v *classifier.Verdict) (*models.ContentAnalysis, error) {
	analysisType := models.AnalysisHate
	if v.Kind == classifier.KindMisinformation {
		analysisType = models.AnalysisMisinformation
	}
	keywords, err := jsonList(v.Keywords)
	if err != nil {
		return nil, err
	}
	return &models.ContentAnalysis{
		PostID:           postID,
		AnalysisType:     analysisType,
		IsHarmful:        v.Harmful,
		Confidence:       v.Confidence,
		Severity:         v.Severity,
		Category:         v.Category,
		Explanation:      v.Explanation,
		DetectedKeywords: keywords,
		RawResponse:      datatypes.JSON(v.Raw),
	}, nil
}
