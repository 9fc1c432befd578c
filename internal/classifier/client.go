// Package classifier talks to the external hate-speech and misinformation
// model API.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/metrics"
)

type Kind string

const (
	KindHate           Kind = "hate"
	KindMisinformation Kind = "misinformation"
)

// ErrUnavailable wraps every transport, status and decode failure.
var ErrUnavailable = errors.New("model service unavailable")

type Config struct {
	BaseURL     string
	HatePath    string
	MisinfoPath string
	Timeout     time.Duration
	// RPM caps outbound calls per minute across both endpoints. Zero
	// disables the limit.
	RPM int
}

// Verdict is one endpoint's answer normalised across both model shapes.
type Verdict struct {
	Kind        Kind
	Harmful     bool
	Confidence  *float64
	Severity    string
	Category    string
	Explanation string
	Keywords    []string
	Raw         json.RawMessage
}

// Result pairs a verdict with the error that prevented it.
type Result struct {
	Verdict *Verdict
	Err     error
}

type hateResponse struct {
	IsHateSpeech     bool     `json:"is_hate_speech"`
	Confidence       *float64 `json:"confidence"`
	Severity         string   `json:"severity"`
	Category         string   `json:"category"`
	Explanation      string   `json:"explanation"`
	DetectedKeywords []string `json:"detected_keywords"`
}

type misinfoResponse struct {
	Label       string   `json:"label"`
	Confidence  *float64 `json:"confidence"`
	Severity    string   `json:"severity"`
	Explanation string   `json:"explanation"`
}

type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPM > 0 {
		// burst of two lets both endpoints for one post go out together
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RPM)), 2)
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

func (c *Client) path(kind Kind) string {
	if kind == KindHate {
		return c.cfg.HatePath
	}
	return c.cfg.MisinfoPath
}

// Raw posts text to one endpoint and returns the body untouched.
func (c *Client) Raw(ctx context.Context, kind Kind, text string) (json.RawMessage, error) {
	payload := map[string]any{"text": text}
	if kind == KindHate {
		payload["store_result"] = true
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	start := time.Now()
	raw, err := c.post(ctx, strings.TrimRight(c.cfg.BaseURL, "/")+c.path(kind), body)
	metrics.RecordClassifierCall(string(kind), err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrUnavailable)
	}
	return respBody, nil
}

// Analyze classifies text with one endpoint.
func (c *Client) Analyze(ctx context.Context, kind Kind, text string) (*Verdict, error) {
	raw, err := c.Raw(ctx, kind, text)
	if err != nil {
		return nil, err
	}

	v := &Verdict{Kind: kind, Raw: raw}
	switch kind {
	case KindHate:
		var r hateResponse
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: failed to parse hate response: %v", ErrUnavailable, err)
		}
		v.Harmful = r.IsHateSpeech
		v.Confidence = r.Confidence
		v.Severity = r.Severity
		v.Category = r.Category
		v.Explanation = r.Explanation
		v.Keywords = r.DetectedKeywords
	default:
		var r misinfoResponse
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: failed to parse misinformation response: %v", ErrUnavailable, err)
		}
		v.Harmful = r.Label == "misinformation"
		v.Confidence = r.Confidence
		v.Severity = r.Severity
		v.Explanation = r.Explanation
	}
	return v, nil
}

// AnalyzeAll runs both endpoints concurrently. Each side reports its own
// error in its Result. The group is not bound to a context, so a failure on
// one side does not cancel the other.
func (c *Client) AnalyzeAll(ctx context.Context, text string) (hate, misinfo Result) {
	var g errgroup.Group
	g.Go(func() error {
		hate.Verdict, hate.Err = c.Analyze(ctx, KindHate, text)
		return hate.Err
	})
	g.Go(func() error {
		misinfo.Verdict, misinfo.Err = c.Analyze(ctx, KindMisinformation, text)
		return misinfo.Err
	})
	if err := g.Wait(); err != nil {
		slog.Debug("classifier call failed", "component", "classifier", "error", err.Error())
	}
	return hate, misinfo
}
