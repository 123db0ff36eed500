package repository

import (
	"context"

	"github.com/planinfo-service/internal/domain"
)

// GeocoderRepository - external address search provider
type GeocoderRepository interface {
	// Search returns hits for a free-text address restricted to bbox, best first
	Search(ctx context.Context, query string, bbox domain.BoundingBox, limit int) ([]domain.GeocodeResult, error)

	// Reverse returns the display address for a point, "" if nothing is known
	Reverse(ctx context.Context, point domain.GeoPoint) (string, error)
}
