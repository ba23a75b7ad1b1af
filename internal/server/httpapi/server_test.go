package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/logging"
	"github.com/dmitrijs2005/fitquest/internal/server/config"
	"github.com/dmitrijs2005/fitquest/internal/server/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	env.pinger.err = errBoom
	rec = env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/healthz", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fitquest_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", "X-Request-ID", "req-123")
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec = env.do(t, http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestCORS(t *testing.T) {
	t.Run("any origin by default", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/healthz", "", "Origin", "http://frontend.example")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured origins", func(t *testing.T) {
		env := newTestEnv(t, func(c *config.Config) {
			c.CORSAllowedOrigins = []string{"http://frontend.example"}
		})

		rec := env.do(t, http.MethodGet, "/healthz", "", "Origin", "http://frontend.example")
		assert.Equal(t, "http://frontend.example", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = env.do(t, http.MethodGet, "/healthz", "", "Origin", "http://evil.example")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/nope", "").Code)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	srv := NewServer(cfg, logging.Discard(), &fakeUsers{}, &fakeActivity{}, metrics.New(), &fakePinger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	cfg := testConfig()
	cfg.EndpointAddrHTTP = "127.0.0.1:99999"
	srv := NewServer(cfg, logging.Discard(), &fakeUsers{}, &fakeActivity{}, metrics.New(), &fakePinger{})

	require.Error(t, srv.Run(context.Background()))
}
