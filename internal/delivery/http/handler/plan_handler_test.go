package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/delivery/http/handler"
	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/usecase"
	"github.com/planinfo-service/internal/usecase/dto"
	"github.com/planinfo-service/internal/zoning"
)

func newPlanApp() *fiber.App {
	uc := usecase.NewPlanUseCase(zoning.NewDefaultResolver(), nil, nil, zap.NewNop())
	h := handler.NewPlanHandler(uc, zap.NewNop())

	app := fiber.New()
	app.Get("/plans/lookup", h.Lookup)
	app.Post("/plans/lookup", h.LookupPOST)
	app.Post("/batch/plans/lookup", h.BatchLookup)
	app.Get("/plans/search", h.Search)
	app.Get("/plans/regions", h.Regions)
	return app
}

func TestPlanHandler_Lookup(t *testing.T) {
	app := newPlanApp()

	t.Run("GET resolves and passes the address through", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodGet, "/plans/lookup?lat=58.150&lng=8.000&address=Markens%20gate%201", "")
		require.Equal(t, http.StatusOK, status)

		var lookup domain.PlanLookup
		require.NoError(t, json.Unmarshal(env.Data, &lookup))
		assert.Equal(t, "Markens gate 1", lookup.Address)
		assert.Equal(t, "sentrum", lookup.RegionKey)
		assert.Equal(t, domain.LookupResolved, lookup.State)
		assert.Equal(t, "Reguleringsplan for Kristiansand sentrum", lookup.Plan.Name)
	})

	t.Run("GET without coordinates", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodGet, "/plans/lookup?lat=abc", "")
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_COORDINATES", env.Error.Code)
	})

	t.Run("POST outside the municipality", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPost, "/plans/lookup", `{"lat": 90, "lng": 180}`)
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "POINT_OUTSIDE_MUNICIPALITY", env.Error.Code)
	})

	t.Run("POST default plan", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPost, "/plans/lookup", `{"lat": 58.3, "lng": 8.2, "address": "Tveit"}`)
		require.Equal(t, http.StatusOK, status)

		var lookup domain.PlanLookup
		require.NoError(t, json.Unmarshal(env.Data, &lookup))
		assert.Equal(t, "Kommunedelplan", lookup.Plan.SourceCategory)
		assert.Empty(t, lookup.RegionKey)
	})

	t.Run("POST invalid body", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPost, "/plans/lookup", `{"lat":`)
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})
}

func TestPlanHandler_BatchLookup(t *testing.T) {
	app := newPlanApp()

	t.Run("mixed batch", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPost, "/batch/plans/lookup",
			`{"points": [{"lat": 58.158, "lng": 8.018}, {"lat": 60.0, "lng": 10.0}]}`)
		require.Equal(t, http.StatusOK, status)

		var resp dto.BatchPlanLookupResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "lund", resp.Results[0].Lookup.RegionKey)
		assert.NotEmpty(t, resp.Results[1].Error)
		assert.Equal(t, 1, resp.Meta.Rejected)
		assert.EqualValues(t, 2, env.Meta["total"])
		require.Contains(t, env.Meta, "time_ms")
		assert.Greater(t, env.Meta["time_ms"].(float64), 0.0)
	})

	t.Run("empty batch fails validation", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodPost, "/batch/plans/lookup", `{"points": []}`)
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "points")
	})
}

func TestPlanHandler_SearchAndRegions(t *testing.T) {
	app := newPlanApp()

	t.Run("search without geocoder", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodGet, "/plans/search?q=Markens", "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "GEOCODER_DISABLED", env.Error.Code)
	})

	t.Run("search query too short", func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodGet, "/plans/search?q=M", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("regions", func(t *testing.T) {
		status, env := doRequest(t, app, http.MethodGet, "/plans/regions", "")
		require.Equal(t, http.StatusOK, status)

		var resp dto.RegionsResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		require.Len(t, resp.Regions, 5)
		assert.Equal(t, []string{"sentrum", "lund", "vagsbygd", "kvadraturen", "grim"},
			[]string{resp.Regions[0].Key, resp.Regions[1].Key, resp.Regions[2].Key, resp.Regions[3].Key, resp.Regions[4].Key})
	})
}
