package handlers

import (
	"errors"

	"scrapseva/internal/core/domain"
	"scrapseva/internal/core/services"
	"scrapseva/internal/pkg/pagination"
	"scrapseva/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GaudaanHandler handles the animal-donation endpoints for donors, volunteers
// and admins
type GaudaanHandler struct {
	gaudaanService *services.GaudaanService
}

// NewGaudaanHandler creates a new gaudaan handler
func NewGaudaanHandler(gaudaanService *services.GaudaanService) *GaudaanHandler {
	return &GaudaanHandler{gaudaanService: gaudaanService}
}

// Create godoc
// @Summary Create an animal donation request
// @Tags gaudaan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /gaudaan [post]
func (h *GaudaanHandler) Create(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)

	var req services.CreateGaudaanInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errs := map[string]string{}
	if req.AnimalType == "" {
		errs["animalType"] = "Animal type is required"
	}
	if req.Address == "" {
		errs["address"] = "Address is required"
	}
	if len(errs) > 0 {
		return response.ValidationFailed(c, errs)
	}

	gaudaan, err := h.gaudaanService.Create(c.Context(), donorID, &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create request")
	}

	return response.Created(c, "Request created", gaudaan)
}

// ListMine godoc
// @Summary List own animal donation requests
// @Tags gaudaan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /gaudaan/my [get]
func (h *GaudaanHandler) ListMine(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	gaudaans, meta, err := h.gaudaanService.List(c.Context(), &services.ListGaudaanInput{
		Status:  c.Query("status"),
		DonorID: &donorID,
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return c.JSON(pagination.Response{Data: gaudaans, Meta: meta})
}

// ListAll godoc
// @Summary List all animal donation requests (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /admin/gaudaans [get]
func (h *GaudaanHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	gaudaans, meta, err := h.gaudaanService.List(c.Context(), &services.ListGaudaanInput{
		Status: c.Query("status"),
		City:   c.Query("city"),
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}

	return c.JSON(pagination.Response{Data: gaudaans, Meta: meta})
}

// ListAssigned godoc
// @Summary List rescues assigned to the signed-in volunteer
// @Tags volunteer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /volunteer/gaudaan [get]
func (h *GaudaanHandler) ListAssigned(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	gaudaans, meta, err := h.gaudaanService.List(c.Context(), &services.ListGaudaanInput{
		Status:      c.Query("status"),
		VolunteerID: &volunteerID,
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list rescues")
	}

	return c.JSON(pagination.Response{Data: gaudaans, Meta: meta})
}

// GetDetail godoc
// @Summary Get a gaudaan request with its lifecycle timeline
// @Tags gaudaan
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gaudaan ID"
// @Success 200 {object} response.Response
// @Router /gaudaan/{id} [get]
func (h *GaudaanHandler) GetDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gaudaan ID")
	}

	detail, err := h.gaudaanService.GetDetail(c.Context(), uint(id))
	if err != nil {
		return gaudaanError(c, err)
	}

	// Donors may only read their own requests, volunteers only those
	// assigned to them
	userID := c.Locals("userID").(uint)
	switch c.Locals("role").(string) {
	case string(domain.RoleUser):
		if detail.Gaudaan.DonorID != userID {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	case string(domain.RoleVolunteer):
		if detail.Gaudaan.VolunteerID == nil || *detail.Gaudaan.VolunteerID != userID {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	}

	return response.Success(c, "", detail)
}

// AssignVolunteer godoc
// @Summary Assign a volunteer to an unassigned request (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gaudaan ID"
// @Success 200 {object} response.Response
// @Router /admin/assignVolunteer/{id} [patch]
func (h *GaudaanHandler) AssignVolunteer(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gaudaan ID")
	}

	var req struct {
		VolunteerID uint  `json:"volunteer_id"`
		ShelterID   *uint `json:"shelter_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.VolunteerID == 0 {
		return response.BadRequest(c, "volunteer_id is required")
	}

	gaudaan, err := h.gaudaanService.AssignVolunteer(c.Context(), uint(id), req.VolunteerID, req.ShelterID, adminID)
	if err != nil {
		return gaudaanError(c, err)
	}

	return response.Success(c, "Volunteer assigned", gaudaan)
}

// Reject godoc
// @Summary Reject an animal donation request (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gaudaan ID"
// @Success 200 {object} response.Response
// @Router /admin/gaudaans/{id}/reject [patch]
func (h *GaudaanHandler) Reject(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gaudaan ID")
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&req)
	if req.Note == "" {
		req.Note = "Request rejected"
	}

	gaudaan, err := h.gaudaanService.Reject(c.Context(), uint(id), actorID, req.Note)
	if err != nil {
		return gaudaanError(c, err)
	}

	return response.Success(c, "Request rejected", gaudaan)
}

// UpdateStatus godoc
// @Summary Walk an assigned rescue forward (volunteer)
// @Tags volunteer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gaudaan ID"
// @Success 200 {object} response.Response
// @Router /volunteer/gaudaan/{id}/status [patch]
func (h *GaudaanHandler) UpdateStatus(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gaudaan ID")
	}

	var req struct {
		Status    string `json:"status"`
		ShelterID *uint  `json:"shelter_id"`
		Note      string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return response.BadRequest(c, "status is required")
	}

	gaudaan, err := h.gaudaanService.UpdateStatus(c.Context(), uint(id), volunteerID, req.Status, req.ShelterID, req.Note)
	if err != nil {
		return gaudaanError(c, err)
	}

	return response.Success(c, "Status updated", gaudaan)
}

// Release godoc
// @Summary Give an assigned rescue back to the pool (volunteer)
// @Tags volunteer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gaudaan ID"
// @Success 200 {object} response.Response
// @Router /volunteer/gaudaan/{id}/release [patch]
func (h *GaudaanHandler) Release(c *fiber.Ctx) error {
	volunteerID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid gaudaan ID")
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&req)

	gaudaan, err := h.gaudaanService.Unassign(c.Context(), uint(id), volunteerID, req.Note)
	if err != nil {
		return gaudaanError(c, err)
	}

	return response.Success(c, "Rescue released", gaudaan)
}

// gaudaanError maps gaudaan service errors to HTTP responses
func gaudaanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrGaudaanNotFound):
		return response.NotFound(c, "Request not found")
	case errors.Is(err, domain.ErrShelterNotFound):
		return response.BadRequest(c, "Shelter not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrVolunteerNotFound):
		return response.BadRequest(c, "Volunteer not found or not active")
	case errors.Is(err, services.ErrShelterRequired):
		return response.BadRequest(c, "A shelter must be chosen first")
	case errors.Is(err, services.ErrStatusNotAllowed):
		return response.BadRequest(c, "Volunteers may only mark picked_up, shelter or dropped")
	case errors.Is(err, services.ErrNotAssignedVolunteer):
		return response.Forbidden(c, "You don't have permission to access this resource")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
