package http_test

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/config"
	httpDelivery "github.com/planinfo-service/internal/delivery/http"
	"github.com/planinfo-service/internal/delivery/http/handler"
	"github.com/planinfo-service/internal/usecase"
	"github.com/planinfo-service/internal/zoning"
)

func newTestServer() *httpDelivery.Server {
	cfg := &config.Config{CORS: config.CORSConfig{AllowOrigins: "http://localhost:3000"}}
	log := zap.NewNop()
	resolver := zoning.NewDefaultResolver()

	planUC := usecase.NewPlanUseCase(resolver, nil, nil, log)
	userUC := usecase.NewUserUseCase(nil, nil, log, time.Minute)
	statsUC := usecase.NewStatsUseCase(resolver, nil, nil, log, time.Minute)

	return httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Plan:  handler.NewPlanHandler(planUC, log),
		User:  handler.NewUserHandler(userUC, log),
		Stats: handler.NewStatsHandler(statsUC, log),
		Map:   handler.NewMapHandler(usecase.NewMapConfigUseCase()),
	})
}

func TestServer_Routes(t *testing.T) {
	app := newTestServer().App()

	t.Run("health", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("lookup through the full middleware chain", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/plans/lookup?lat=58.13&lng=7.98", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "Grim")
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.True(t, strings.Contains(string(body), "planinfo_http_requests_total"))
	})

	t.Run("unknown route uses the error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"code":"NOT_FOUND"`)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

// scrapeRequests reads planinfo_http_requests_total from /metrics keyed by label set
func scrapeRequests(t *testing.T, app *fiber.App) map[string]float64 {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	series := make(map[string]float64)
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "planinfo_http_requests_total{") {
			continue
		}
		idx := strings.LastIndex(line, " ")
		value, err := strconv.ParseFloat(line[idx+1:], 64)
		require.NoError(t, err)
		series[strings.TrimPrefix(line[:idx], "planinfo_http_requests_total")] = value
	}
	require.NoError(t, scanner.Err())
	return series
}

func TestServer_RequestMetrics(t *testing.T) {
	app := newTestServer().App()
	before := scrapeRequests(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	after := scrapeRequests(t, app)
	delta := func(labels string) float64 { return after[labels] - before[labels] }

	assert.Equal(t, 1.0, delta(`{method="POST",path="/api/users/",status="400"}`),
		"later requests must not rewrite the POST label")
	assert.Equal(t, 3.0, delta(`{method="GET",path="/api/v1/health",status="200"}`))
	assert.Equal(t, 1.0, delta(`{method="GET",path="/",status="404"}`), "unknown routes count as 404")
	assert.Zero(t, delta(`{method="GET",path="/",status="200"}`))

	for labels := range after {
		method := strings.TrimPrefix(strings.SplitN(labels, ",", 2)[0], `{method="`)
		assert.Contains(t, []string{`GET"`, `POST"`, `OPTIONS"`}, method, "corrupted method label in %s", labels)
	}
}
