package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/planinfo-service/internal/config"
	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/domain/repository"
)

const (
	placesPath = "/geocoding/v5/mapbox.places/"
	country    = "no"
	language   = "nb"
)

// ErrNoResult - reverse geocoding found nothing at the point
var ErrNoResult = errors.New("mapbox: no result")

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewGeocoder creates a Mapbox Geocoding API client
func NewGeocoder(cfg *config.MapboxConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		limiter:     newLimiter(cfg.RateLimit),
		logger:      logger,
	}
}

// newLimiter - Mapbox enforces per-minute quotas on the geocoding endpoints
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // [lng, lat]
	Relevance float64   `json:"relevance"`
}

// Search runs forward geocoding restricted to bbox, results ordered by relevance
func (c *client) Search(ctx context.Context, query string, bbox domain.BoundingBox, limit int) ([]domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("bbox", fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(bbox.MinLng), formatCoord(bbox.MinLat), formatCoord(bbox.MaxLng), formatCoord(bbox.MaxLat)))
	params.Set("country", country)
	params.Set("language", language)
	params.Set("limit", strconv.Itoa(limit))

	fc, err := c.get(ctx, url.PathEscape(query)+".json", params)
	if err != nil {
		return nil, err
	}

	results := make([]domain.GeocodeResult, 0, len(fc.Features))
	for _, f := range fc.Features {
		if len(f.Center) != 2 {
			continue
		}
		results = append(results, domain.GeocodeResult{
			PlaceName: f.PlaceName,
			Point:     domain.GeoPoint{Lat: f.Center[1], Lng: f.Center[0]},
			Relevance: f.Relevance,
		})
	}

	c.logger.Debug("Mapbox geocoding call successful",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return results, nil
}

// Reverse returns the nearest address for a point
func (c *client) Reverse(ctx context.Context, point domain.GeoPoint) (string, error) {
	params := url.Values{}
	params.Set("types", "address")
	params.Set("language", language)
	params.Set("limit", "1")

	fc, err := c.get(ctx, formatCoord(point.Lng)+","+formatCoord(point.Lat)+".json", params)
	if err != nil {
		return "", err
	}
	if len(fc.Features) == 0 {
		return "", ErrNoResult
	}

	return fc.Features[0].PlaceName, nil
}

func (c *client) get(ctx context.Context, path string, params url.Values) (*featureCollection, error) {
	params.Set("access_token", c.accessToken)
	endpoint := c.baseURL + placesPath + path + "?" + params.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.logger.Debug("Calling Mapbox Geocoding API", zap.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &fc, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
