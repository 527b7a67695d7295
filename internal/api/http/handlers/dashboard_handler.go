package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-tracker/internal/api/dto"
	"github.com/spec-kit/repair-tracker/internal/service"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

const (
	defaultRecent = 5
	maxRecent     = 50
)

// DashboardHandler serves the summary view.
type DashboardHandler struct {
	service *service.RequestService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(requestService *service.RequestService) *DashboardHandler {
	return &DashboardHandler{service: requestService}
}

// Get GET /api/v1/dashboard?recent=.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	limit := defaultRecent
	if raw := c.Query("recent"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxRecent {
			return apperrors.NewValidationError("invalid query", map[string]any{
				"recent": "must be an integer between 1 and 50",
			})
		}
		limit = parsed
	}

	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	recent, err := h.service.Recent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Stats:  stats,
		Recent: dto.NewRequestList(recent),
	}})
}
