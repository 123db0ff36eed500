package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/domain/repository"
	"github.com/planinfo-service/internal/pkg/errors"
	"github.com/planinfo-service/internal/pkg/metrics"
	"github.com/planinfo-service/internal/pkg/utils"
	"github.com/planinfo-service/internal/usecase/dto"
	"github.com/planinfo-service/internal/zoning"
)

const addressSearchLimit = 5

// PlanUseCase - zoning plan lookups for points and addresses
type PlanUseCase struct {
	resolver  zoning.Resolver
	geocoder  repository.GeocoderRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewPlanUseCase - geocoder and cacheRepo may be nil (address search and counters are then disabled)
func NewPlanUseCase(
	resolver zoning.Resolver,
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *PlanUseCase {
	return &PlanUseCase{
		resolver:  resolver,
		geocoder:  geocoder,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// LookupByPoint resolves the plan for a point inside the municipality.
// Points outside the extent are rejected before resolution; a failed resolution
// yields the error placeholder instead of an error.
func (uc *PlanUseCase) LookupByPoint(ctx context.Context, point domain.GeoPoint, address string) (*domain.PlanLookup, error) {
	if err := uc.checkPoint(point); err != nil {
		uc.record(ctx, domain.LookupOutcome{Rejected: true})
		return nil, err
	}

	if address == "" && uc.geocoder != nil {
		addr, err := uc.geocoder.Reverse(ctx, point)
		if err != nil {
			uc.logger.Warn("Reverse geocoding failed, continuing without address",
				zap.Float64("lat", point.Lat),
				zap.Float64("lng", point.Lng),
				zap.Error(err))
		} else {
			address = addr
		}
	}

	lookup := uc.resolve(point, address)
	uc.record(ctx, outcomeOf(lookup))

	return lookup, nil
}

// LookupByAddress geocodes the query inside the municipality and resolves the best hit.
func (uc *PlanUseCase) LookupByAddress(ctx context.Context, req dto.AddressSearchRequest) (*dto.AddressSearchResponse, error) {
	if uc.geocoder == nil {
		return nil, errors.ErrGeocoderDisabled
	}

	query := strings.TrimSpace(req.Query)
	results, err := uc.geocoder.Search(ctx, query, domain.MunicipalityExtent, addressSearchLimit)
	if err != nil {
		uc.logger.Error("Address search failed", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrGeocoderError
	}

	candidates := make([]domain.GeocodeResult, 0, len(results))
	for _, r := range results {
		if domain.MunicipalityExtent.Contains(r.Point) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		uc.logger.Debug("Address not found", zap.String("query", query), zap.Int("raw_hits", len(results)))
		return nil, errors.ErrAddressNotFound
	}

	best := candidates[0]
	lookup, err := uc.LookupByPoint(ctx, best.Point, best.PlaceName)
	if err != nil {
		return nil, err
	}

	return &dto.AddressSearchResponse{
		Lookup:     *lookup,
		Candidates: candidates,
	}, nil
}

// BatchLookup resolves every point independently; rejected points carry an error
// entry instead of failing the batch.
func (uc *PlanUseCase) BatchLookup(ctx context.Context, req dto.BatchPlanLookupRequest) (*dto.BatchPlanLookupResponse, error) {
	if len(req.Points) == 0 {
		return nil, errors.ErrInvalidRequest
	}

	resp := &dto.BatchPlanLookupResponse{
		Results: make([]dto.BatchPlanLookupResult, len(req.Points)),
		Meta:    dto.BatchPlanLookupMeta{Total: len(req.Points)},
	}

	for i, p := range req.Points {
		lookup, err := uc.LookupByPoint(ctx, domain.GeoPoint{Lat: p.Lat, Lng: p.Lng}, p.Address)
		if err != nil {
			resp.Results[i] = dto.BatchPlanLookupResult{Index: i, Error: err.Error()}
			resp.Meta.Rejected++
			continue
		}

		resp.Results[i] = dto.BatchPlanLookupResult{Index: i, Lookup: lookup}
		if lookup.State == domain.LookupError {
			resp.Meta.Failed++
		} else {
			resp.Meta.Resolved++
		}
	}

	uc.logger.Info("Batch plan lookup completed",
		zap.Int("total", resp.Meta.Total),
		zap.Int("resolved", resp.Meta.Resolved),
		zap.Int("failed", resp.Meta.Failed),
		zap.Int("rejected", resp.Meta.Rejected))

	return resp, nil
}

// Regions - the configured zoning table
func (uc *PlanUseCase) Regions() *dto.RegionsResponse {
	return &dto.RegionsResponse{
		Regions:            uc.resolver.Regions(),
		DefaultPlan:        uc.resolver.DefaultPlan(),
		MunicipalityExtent: domain.MunicipalityExtent,
	}
}

func (uc *PlanUseCase) checkPoint(point domain.GeoPoint) error {
	if !utils.ValidateCoordinates(point.Lat, point.Lng) {
		return errors.ErrInvalidCoordinates
	}
	if !domain.MunicipalityExtent.Contains(point) {
		return errors.ErrOutsideMunicipality.WithDetails(map[string]interface{}{
			"lat":    point.Lat,
			"lng":    point.Lng,
			"extent": domain.MunicipalityExtent,
		})
	}
	return nil
}

// resolve never fails: a panicking resolver is turned into the error placeholder
func (uc *PlanUseCase) resolve(point domain.GeoPoint, address string) (lookup *domain.PlanLookup) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Plan resolution failed",
				zap.Float64("lat", point.Lat),
				zap.Float64("lng", point.Lng),
				zap.String("panic", fmt.Sprint(r)))
			lookup = &domain.PlanLookup{
				Address: address,
				Point:   point,
				State:   domain.LookupError,
				Plan:    zoning.ErrorPlan(),
			}
		}
	}()

	plan, key := uc.resolver.Resolve(point)
	state := domain.LookupResolved
	if plan.Error {
		state = domain.LookupError
	}

	return &domain.PlanLookup{
		Address:   address,
		Point:     point,
		State:     state,
		RegionKey: key,
		Plan:      plan,
	}
}

func (uc *PlanUseCase) record(ctx context.Context, outcome domain.LookupOutcome) {
	switch {
	case outcome.Rejected:
		metrics.ZoneResolutions.WithLabelValues(metrics.OutcomeRejected).Inc()
	case outcome.Error:
		metrics.ZoneResolutions.WithLabelValues(metrics.OutcomeError).Inc()
	case outcome.Default:
		metrics.ZoneResolutions.WithLabelValues(metrics.OutcomeDefault).Inc()
	default:
		metrics.ZoneResolutions.WithLabelValues(metrics.OutcomeRegion).Inc()
	}

	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.RecordLookup(ctx, outcome); err != nil {
		uc.logger.Warn("Failed to record lookup counters", zap.Error(err))
	}
}

func outcomeOf(lookup *domain.PlanLookup) domain.LookupOutcome {
	if lookup.State == domain.LookupError {
		return domain.LookupOutcome{Error: true}
	}
	outcome := domain.LookupOutcome{Default: lookup.RegionKey == ""}
	if lookup.Plan.PlanID != nil {
		outcome.PlanID = *lookup.Plan.PlanID
	}
	return outcome
}
