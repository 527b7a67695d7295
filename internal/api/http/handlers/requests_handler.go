package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-tracker/internal/api/dto"
	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/service"
	apperrors "github.com/spec-kit/repair-tracker/pkg/util/errorutil"
)

// RequestsHandler serves the repair request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Create POST /api/v1/requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var body dto.CreateRequestRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req, err := h.service.Submit(c.UserContext(), user, body.Draft())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestResponse(req)})
}

// List GET /api/v1/requests?status=&search=&sort=.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	query := service.ListQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}
	details := map[string]any{}
	if query.Status != "" && query.Status != service.StatusAll && !domain.RequestStatus(query.Status).Valid() {
		details["status"] = "must be all, pending, in_progress, resolved or closed"
	}
	switch query.Sort {
	case service.SortNone, service.SortPriority, service.SortRecent:
	default:
		details["sort"] = "must be priority or recent"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid query", details)
	}

	requests, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestList(requests)})
}

// Get GET /api/v1/requests/:id.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	req, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(req)})
}

// Accept POST /api/v1/requests/:id/accept.
func (h *RequestsHandler) Accept(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	req, err := h.service.Accept(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(req)})
}

// Complete POST /api/v1/requests/:id/complete.
func (h *RequestsHandler) Complete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	req, err := h.service.Complete(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(req)})
}

// Reprioritize PATCH /api/v1/requests/:id/priority.
func (h *RequestsHandler) Reprioritize(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var body dto.ReprioritizeRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req, err := h.service.Reprioritize(c.UserContext(), user, c.Params("id"), domain.RequestPriority(body.Priority))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(req)})
}

// Assigned GET /api/v1/requests/assigned. Admins may pass technician_id to
// read another technician's worklist.
func (h *RequestsHandler) Assigned(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	technicianID := c.Query("technician_id", user.ID)
	if err := auth.AuthorizeWorklist(user, technicianID); err != nil {
		return err
	}
	requests, err := h.service.AssignedTo(c.UserContext(), technicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestList(requests)})
}

// History GET /api/v1/requests/history?search=.
func (h *RequestsHandler) History(c *fiber.Ctx) error {
	requests, err := h.service.History(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestList(requests)})
}

func currentUser(c *fiber.Ctx) (domain.User, error) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return domain.User{}, apperrors.NewUnauthorized("authentication required")
	}
	return user, nil
}
