package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-tracker/internal/api/dto"
	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/service"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// AssetsHandler serves the asset inventory.
type AssetsHandler struct {
	service *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{service: assetService}
}

// List GET /api/v1/assets?type=&status=&search=.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	query := service.AssetQuery{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	details := map[string]any{}
	if query.Type != "" && query.Type != service.StatusAll && !domain.AssetType(query.Type).Valid() {
		details["type"] = "must be all, computer, printer, network, projector or other"
	}
	if query.Status != "" && query.Status != service.StatusAll && !domain.AssetStatus(query.Status).Valid() {
		details["status"] = "must be all, operational, maintenance or broken"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid query", details)
	}

	assets, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetList(assets)})
}

// Get GET /api/v1/assets/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	asset, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}
