package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/planinfo-service/internal/pkg/utils"
	"github.com/planinfo-service/internal/usecase"
)

// MapHandler - map viewer configuration
type MapHandler struct {
	mapUC *usecase.MapConfigUseCase
}

func NewMapHandler(mapUC *usecase.MapConfigUseCase) *MapHandler {
	return &MapHandler{mapUC: mapUC}
}

// GetConfig godoc
// @Summary Map view configuration
// @Description Initial centre, zoom limits, max bounds and WMS overlay layer definitions.
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.MapConfig}
// @Router /api/v1/map/config [get]
func (h *MapHandler) GetConfig(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.mapUC.GetMapConfig(), nil)
}
