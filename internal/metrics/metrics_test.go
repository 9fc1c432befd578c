package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/:id", "204"))
	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/:id", "204"))
	assert.Equal(t, 2.0, after-before)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(reportsGenerated.WithLabelValues("analytics", "error"))
	RecordReport("analytics", false, 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(reportsGenerated.WithLabelValues("analytics", "error"))-before)

	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	RecordCacheLookup(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))-hits)

	calls := testutil.ToFloat64(classifierCalls.WithLabelValues("hate", "success"))
	RecordClassifierCall("hate", true, time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(classifierCalls.WithLabelValues("hate", "success"))-calls)
}
