package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/pkg/errors"
	"github.com/planinfo-service/internal/pkg/utils"
	"github.com/planinfo-service/internal/pkg/validator"
	"github.com/planinfo-service/internal/usecase"
	"github.com/planinfo-service/internal/usecase/dto"
)

// PlanHandler - zoning plan lookups
type PlanHandler struct {
	planUC *usecase.PlanUseCase
	logger *zap.Logger
}

func NewPlanHandler(planUC *usecase.PlanUseCase, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planUC: planUC,
		logger: logger,
	}
}

// Lookup godoc
// @Summary Look up the zoning plan for a point
// @Description Resolves the regulation plan covering a point inside Kristiansand. Points outside the municipality are rejected; the address is returned unchanged.
// @Tags Plans
// @Produce json
// @Param lat query number true "Latitude (WGS84)"
// @Param lng query number true "Longitude (WGS84)"
// @Param address query string false "Address shown alongside the plan"
// @Success 200 {object} utils.SuccessResponse{data=domain.PlanLookup}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/plans/lookup [get]
func (h *PlanHandler) Lookup(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithMessage("lat and lng query parameters are required numbers"))
	}

	req := dto.PlanLookupRequest{Lat: lat, Lng: lng, Address: c.Query("address")}
	return h.lookup(c, req)
}

// LookupPOST godoc
// @Summary Look up the zoning plan for a point (JSON body)
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body dto.PlanLookupRequest true "Point and optional address"
// @Success 200 {object} utils.SuccessResponse{data=domain.PlanLookup}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/plans/lookup [post]
func (h *PlanHandler) LookupPOST(c *fiber.Ctx) error {
	var req dto.PlanLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}
	return h.lookup(c, req)
}

func (h *PlanHandler) lookup(c *fiber.Ctx, req dto.PlanLookupRequest) error {
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.planUC.LookupByPoint(c.Context(), domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}, req.Address)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// BatchLookup godoc
// @Summary Batch zoning plan lookup
// @Description Resolves up to 100 points. Points outside the municipality get an error entry instead of failing the batch.
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body dto.BatchPlanLookupRequest true "Points"
// @Success 200 {object} utils.SuccessResponse{data=dto.BatchPlanLookupResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/batch/plans/lookup [post]
func (h *PlanHandler) BatchLookup(c *fiber.Ctx) error {
	var req dto.BatchPlanLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.planUC.BatchLookup(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Meta.Total,
		TimeMSec: float64(time.Since(start).Nanoseconds()) / 1e6,
	})
}

// Search godoc
// @Summary Search an address and look up its plan
// @Description Geocodes the query inside the municipality and resolves the plan for the best hit.
// @Tags Plans
// @Produce json
// @Param q query string true "Address (at least 2 characters)"
// @Success 200 {object} utils.SuccessResponse{data=dto.AddressSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/plans/search [get]
func (h *PlanHandler) Search(c *fiber.Ctx) error {
	req := dto.AddressSearchRequest{Query: c.Query("q")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.planUC.LookupByAddress(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Candidates)})
}

// Regions godoc
// @Summary Configured zoning regions
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.RegionsResponse}
// @Router /api/v1/plans/regions [get]
func (h *PlanHandler) Regions(c *fiber.Ctx) error {
	result := h.planUC.Regions()
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Regions)})
}
