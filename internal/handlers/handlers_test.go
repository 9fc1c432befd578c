package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/services"
	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/store"
)

type fakeRecords struct {
	records []models.FlaggedContent
	err     error
}

func (f *fakeRecords) Find(_ context.Context, q analytics.Query) ([]models.FlaggedContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.FlaggedContent{}
	for i := range f.records {
		if q.Matches(&f.records[i]) {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeRecords) Create(_ context.Context, r *models.FlaggedContent) error {
	r.ID = uuid.New()
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeRecords) List(_ context.Context, limit, offset int) ([]models.FlaggedContent, int64, error) {
	return f.records, int64(len(f.records)), nil
}

type fakeAlerts struct {
	alerts []models.Alert
}

func (f *fakeAlerts) List(_ context.Context, status string, limit, offset int) ([]models.Alert, int64, error) {
	return f.alerts, int64(len(f.alerts)), nil
}

func (f *fakeAlerts) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeClassifier struct {
	raw json.RawMessage
	err error
}

func (f *fakeClassifier) Raw(context.Context, classifier.Kind, string) (json.RawMessage, error) {
	return f.raw, f.err
}

func newApp(records *fakeRecords) *fiber.App {
	app := fiber.New()
	reports := NewReportHandler(services.NewReportService(records, analytics.NewAggregator(nil), nil))
	content := NewContentHandler(services.NewIntakeService(records))
	app.Post("/api/reports/generate", reports.Generate)
	app.Get("/api/reports/analytics", reports.Analytics)
	app.Post("/api/suspicious-content", content.Submit)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestGenerateReport_EmptyDailyRange(t *testing.T) {
	status, body := do(t, newApp(&fakeRecords{}), http.MethodPost, "/api/reports/generate", map[string]any{
		"report_type": "daily",
		"date_range":  map[string]string{"start_date": "2026-03-01T00:00:00Z", "end_date": "2026-03-03T00:00:00Z"},
	})

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, 0.0, summary["total_posts_analyzed"])
	assert.Contains(t, summary, "average_processing_time_ms")
	assert.Equal(t, []any{}, data["platform_breakdown"])
	assert.Equal(t, []any{}, data["severity_distribution"])
	assert.Len(t, data["trends"], 2)
	assert.Contains(t, data["report_id"], "RPT-")
}

func TestGenerateReport_EmptyBodyDefaultsToDaily(t *testing.T) {
	status, body := do(t, newApp(&fakeRecords{}), http.MethodPost, "/api/reports/generate", nil)

	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "daily", data["report_type"])
}

func TestGenerateReport_StoreFailure(t *testing.T) {
	status, body := do(t, newApp(&fakeRecords{err: sql.ErrConnDone}), http.MethodPost, "/api/reports/generate", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "query")
	assert.NotContains(t, body["error"], "connection")
	assert.NotContains(t, body, "data")
}

func TestGenerateReport_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/reports/generate", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := newApp(&fakeRecords{}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyticsReport_InvalidPeriod(t *testing.T) {
	status, body := do(t, newApp(&fakeRecords{}), http.MethodGet, "/api/reports/analytics?period=3w", nil)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "3w")
}

func TestAnalyticsReport_DailyTrendKey(t *testing.T) {
	now := time.Now().UTC()
	records := &fakeRecords{records: []models.FlaggedContent{
		{ID: uuid.New(), ContentType: models.ContentSpam, Platform: "tiktok", UrgencyLevel: "low", DateReported: now.Add(-48 * time.Hour)},
	}}

	status, body := do(t, newApp(records), http.MethodGet, "/api/reports/analytics?period=7d&content_types=spam", nil)

	require.Equal(t, http.StatusOK, status)
	report := body["report"].(map[string]any)
	assert.Equal(t, "Last 7 Days", report["period_label"])
	assert.Equal(t, 1.0, report["total_reports"])
	assert.Contains(t, report, "daily_trend")
	assert.NotContains(t, report, "hourly_trend")
	assert.Equal(t, map[string]any{"tiktok": 1.0}, report["platform_breakdown"])
}

func TestSubmitSuspiciousContent(t *testing.T) {
	records := &fakeRecords{}
	app := newApp(records)

	status, body := do(t, app, http.MethodPost, "/api/suspicious-content", map[string]any{
		"content_type":  "misinformation",
		"platform":      "whatsapp",
		"url":           "https://chat.whatsapp.com/x",
		"urgency_level": "medium",
		"description":   "Fake vaccine claims",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, records.records[0].ID.String(), body["id"])

	status, body = do(t, app, http.MethodPost, "/api/suspicious-content", map[string]any{"platform": "facebook"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "content_type")
	assert.Contains(t, errs, "url")
	assert.NotContains(t, errs, "platform")
}

func TestClassifyPassThrough(t *testing.T) {
	app := fiber.New()
	ok := NewClassifyHandler(&fakeClassifier{raw: json.RawMessage(`{"is_hate_speech":false,"confidence":0.1}`)})
	down := NewClassifyHandler(&fakeClassifier{err: classifier.ErrUnavailable})
	app.Post("/ok", ok.HateSpeech)
	app.Post("/down", down.Misinformation)

	status, body := do(t, app, http.MethodPost, "/ok", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["is_hate_speech"])

	status, body = do(t, app, http.MethodPost, "/ok", map[string]string{"text": " "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No text provided.", body["error"])

	status, body = do(t, app, http.MethodPost, "/down", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Model service unavailable.", body["error"])
}

func TestAlertStatusUpdate(t *testing.T) {
	id := uuid.New()
	alerts := &fakeAlerts{alerts: []models.Alert{{ID: id, Status: models.AlertStatusNew}}}
	h := NewAlertHandler(services.NewAlertService(alerts))
	app := fiber.New()
	app.Get("/api/alerts", h.List)
	app.Put("/api/alerts/:id/status", h.UpdateStatus)

	status, _ := do(t, app, http.MethodPut, "/api/alerts/"+id.String()+"/status", map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.AlertStatusResolved, alerts.alerts[0].Status)

	status, _ = do(t, app, http.MethodPut, "/api/alerts/"+id.String()+"/status", map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPut, "/api/alerts/"+uuid.NewString()+"/status", map[string]string{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPut, "/api/alerts/nope/status", map[string]string{"status": "closed"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, app, http.MethodGet, "/api/alerts?limit=500", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100.0, body["limit"])
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("refused") }

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/a", NewHealthHandler(func() error { return nil }, nil).Check)
	app.Get("/b", NewHealthHandler(func() error { return errors.New("down") }, failingPinger{}).Check)

	_, body := do(t, app, http.MethodGet, "/a", nil)
	assert.Equal(t, "ok", body["db"])
	assert.Equal(t, "disabled", body["cache"])

	_, body = do(t, app, http.MethodGet, "/b", nil)
	assert.Equal(t, "unhealthy: down", body["db"])
	assert.Equal(t, "unhealthy: refused", body["cache"])
}
