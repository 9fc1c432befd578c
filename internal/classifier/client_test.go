package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:     srv.URL + "/",
		HatePath:    "/hate/analyze",
		MisinfoPath: "/misinformation/analyze",
		Timeout:     time.Second,
	})
}

func TestAnalyzeAll_BothEndpoints(t *testing.T) {
	var hateBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch r.URL.Path {
		case "/hate/analyze":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&hateBody))
			w.Write([]byte(`{"is_hate_speech":true,"confidence":0.91,"severity":"high","category":"ethnic","explanation":"slur","detected_keywords":["x"]}`))
		case "/misinformation/analyze":
			w.Write([]byte(`{"label":"reliable","confidence":0.4,"severity":"low"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	hate, misinfo := c.AnalyzeAll(context.Background(), "some text")

	require.NoError(t, hate.Err)
	assert.True(t, hate.Verdict.Harmful)
	assert.Equal(t, 0.91, *hate.Verdict.Confidence)
	assert.Equal(t, "ethnic", hate.Verdict.Category)
	assert.Equal(t, []string{"x"}, hate.Verdict.Keywords)
	assert.Equal(t, "some text", hateBody["text"])
	assert.Equal(t, true, hateBody["store_result"])

	require.NoError(t, misinfo.Err)
	assert.False(t, misinfo.Verdict.Harmful)
	assert.Equal(t, KindMisinformation, misinfo.Verdict.Kind)
	assert.JSONEq(t, `{"label":"reliable","confidence":0.4,"severity":"low"}`, string(misinfo.Verdict.Raw))
}

func TestAnalyzeAll_OneSideFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/hate/analyze" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"label":"misinformation","confidence":0.8,"severity":"high"}`))
	})

	hate, misinfo := c.AnalyzeAll(context.Background(), "text")

	require.Error(t, hate.Err)
	assert.True(t, errors.Is(hate.Err, ErrUnavailable))
	assert.Nil(t, hate.Verdict)

	require.NoError(t, misinfo.Err)
	assert.True(t, misinfo.Verdict.Harmful)
}

func TestAnalyzeAll_BothSidesKeepTheirErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/hate/analyze" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`not json`))
	})

	hate, misinfo := c.AnalyzeAll(context.Background(), "text")

	require.Error(t, hate.Err)
	require.Error(t, misinfo.Err)
	assert.True(t, errors.Is(hate.Err, ErrUnavailable))
	assert.True(t, errors.Is(misinfo.Err, ErrUnavailable))
	assert.NotEqual(t, hate.Err.Error(), misinfo.Err.Error())
}

func TestRaw_RejectsNonJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	})

	_, err := c.Raw(context.Background(), KindHate, "text")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRaw_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	c := New(Config{BaseURL: srv.URL, HatePath: "/h", Timeout: 20 * time.Millisecond})

	_, err := c.Raw(context.Background(), KindHate, "text")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRaw_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	c := New(Config{BaseURL: srv.URL, HatePath: "/h", MisinfoPath: "/m", RPM: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	for i := 0; i < 2; i++ {
		_, err := c.Raw(ctx, KindHate, "text")
		require.NoError(t, err)
	}
	// burst is spent; the next token is a minute away
	_, err := c.Raw(ctx, KindHate, "text")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}
