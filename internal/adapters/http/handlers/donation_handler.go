package handlers

import (
	"errors"

	"scrapseva/internal/config"
	"scrapseva/internal/core/domain"
	"scrapseva/internal/core/services"
	"scrapseva/internal/pkg/pagination"
	"scrapseva/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles the scrap donation endpoints for donors, dealers
// and admins
type DonationHandler struct {
	donationService *services.DonationService
	cfg             *config.Config
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService, cfg *config.Config) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		cfg:             cfg,
	}
}

// Create godoc
// @Summary Create a scrap pickup request
// @Description Accepts multipart form data with optional image files under "images"
// @Tags donations
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)

	input := &services.CreateDonationInput{
		ScrapType:   c.FormValue("scrapType"),
		Description: c.FormValue("description"),
		PickupDate:  c.FormValue("pickupDate"),
		PickupTime:  c.FormValue("pickupTime"),
		Address:     c.FormValue("address"),
		City:        c.FormValue("city"),
	}

	errs := map[string]string{}
	if input.ScrapType == "" {
		errs["scrapType"] = "Scrap type is required"
	}
	if input.PickupDate == "" {
		errs["pickupDate"] = "Pickup date is required"
	}
	if input.Address == "" {
		errs["address"] = "Address is required"
	}
	if len(errs) > 0 {
		return response.ValidationFailed(c, errs)
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["images"] {
			path, err := saveImage(c, file, h.cfg, "donations")
			if err != nil {
				return uploadError(c, err)
			}
			input.Images = append(input.Images, path)
		}
	}

	donation, err := h.donationService.Create(c.Context(), donorID, input)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, "Pickup request created", donation)
}

// ListMine godoc
// @Summary List own donations
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param search query string false "Search term"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Router /donations/my [get]
func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	donations, meta, err := h.donationService.List(c.Context(), &services.ListDonationsInput{
		Status:  c.Query("status"),
		City:    c.Query("city"),
		Search:  c.Query("search"),
		DonorID: &donorID,
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return c.JSON(pagination.Response{Data: donations, Meta: meta})
}

// ListAll godoc
// @Summary List all donations (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /admin/donations [get]
func (h *DonationHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	donations, meta, err := h.donationService.List(c.Context(), &services.ListDonationsInput{
		Status: c.Query("status"),
		City:   c.Query("city"),
		Search: c.Query("search"),
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return c.JSON(pagination.Response{Data: donations, Meta: meta})
}

// ListAssigned godoc
// @Summary List pickups assigned to the signed-in dealer
// @Tags dealer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /dealer/pickups [get]
func (h *DonationHandler) ListAssigned(c *fiber.Ctx) error {
	dealerID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	donations, meta, err := h.donationService.List(c.Context(), &services.ListDonationsInput{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		DealerID: &dealerID,
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pickups")
	}

	return c.JSON(pagination.Response{Data: donations, Meta: meta})
}

// ListHistory godoc
// @Summary List the signed-in dealer's completed pickups
// @Tags dealer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /dealer/history [get]
func (h *DonationHandler) ListHistory(c *fiber.Ctx) error {
	dealerID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	donations, meta, err := h.donationService.List(c.Context(), &services.ListDonationsInput{
		Status:   c.Query("status", "donated"),
		Search:   c.Query("search"),
		DealerID: &dealerID,
	}, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pickup history")
	}

	return c.JSON(pagination.Response{Data: donations, Meta: meta})
}

// GetDetail godoc
// @Summary Get a donation with its lifecycle timeline
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) GetDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	detail, err := h.donationService.GetDetail(c.Context(), uint(id))
	if err != nil {
		return donationError(c, err)
	}

	// Donors may only read their own donations, dealers only those
	// assigned to them
	userID := c.Locals("userID").(uint)
	switch c.Locals("role").(string) {
	case string(domain.RoleUser):
		if detail.Donation.DonorID != userID {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	case string(domain.RoleDealer):
		if detail.Donation.DealerID == nil || *detail.Donation.DealerID != userID {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	}

	return response.Success(c, "", detail)
}

// AssignDealer godoc
// @Summary Assign a dealer to a pending donation (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /admin/assigndealer/{id} [patch]
func (h *DonationHandler) AssignDealer(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var req struct {
		DealerID uint `json:"dealer_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.DealerID == 0 {
		return response.BadRequest(c, "dealer_id is required")
	}

	donation, err := h.donationService.AssignDealer(c.Context(), uint(id), req.DealerID, adminID)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Dealer assigned", donation)
}

// Reject godoc
// @Summary Reject a donation (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /admin/donations/{id}/reject [patch]
func (h *DonationHandler) Reject(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&req)
	if req.Note == "" {
		req.Note = "Request rejected"
	}

	donation, err := h.donationService.Reject(c.Context(), uint(id), actorID, req.Note)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Donation rejected", donation)
}

// Cancel godoc
// @Summary Cancel own donation (donor)
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /donations/{id}/cancel [patch]
func (h *DonationHandler) Cancel(c *fiber.Ctx) error {
	donorID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.Cancel(c.Context(), uint(id), donorID)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Donation cancelled", donation)
}

// Accept godoc
// @Summary Accept an assigned pickup (dealer)
// @Tags dealer
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /dealer/pickups/{id}/accept [patch]
func (h *DonationHandler) Accept(c *fiber.Ctx) error {
	dealerID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.Accept(c.Context(), uint(id), dealerID)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Pickup accepted", donation)
}

// Decline godoc
// @Summary Decline an assigned pickup, returning it to the pending pool (dealer)
// @Tags dealer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /dealer/pickups/{id}/reject [patch]
func (h *DonationHandler) Decline(c *fiber.Ctx) error {
	dealerID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&req)

	donation, err := h.donationService.Unassign(c.Context(), uint(id), dealerID, req.Note)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Pickup declined", donation)
}

// MarkPickedUp godoc
// @Summary Mark an assigned pickup as picked up (dealer)
// @Tags dealer
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /dealer/pickups/{id}/pickedup [patch]
func (h *DonationHandler) MarkPickedUp(c *fiber.Ctx) error {
	dealerID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.MarkPickedUp(c.Context(), uint(id), dealerID)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Pickup recorded", donation)
}

// MarkDonated godoc
// @Summary Record price and weight, closing the pickup (dealer)
// @Tags dealer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /dealer/pickups/{id}/donated [patch]
func (h *DonationHandler) MarkDonated(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	asDealer := c.Locals("role").(string) != string(domain.RoleAdmin)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	var req services.DonatedInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donation, err := h.donationService.MarkDonated(c.Context(), uint(id), actorID, asDealer, &req)
	if err != nil {
		if errors.Is(err, services.ErrPriceWeightRequired) {
			return response.ValidationFailed(c, map[string]string{
				"price":  "Price must be greater than zero",
				"weight": "Weight must be greater than zero",
			})
		}
		return donationError(c, err)
	}

	return response.Success(c, "Donation recorded", donation)
}

// MarkProcessed godoc
// @Summary Mark a donated pickup as processed (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /admin/donations/{id}/processed [patch]
func (h *DonationHandler) MarkProcessed(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.MarkProcessed(c.Context(), uint(id), actorID)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Donation processed", donation)
}

// MarkRecycled godoc
// @Summary Mark a processed pickup as recycled (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Router /admin/donations/{id}/recycled [patch]
func (h *DonationHandler) MarkRecycled(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.MarkRecycled(c.Context(), uint(id), actorID)
	if err != nil {
		return donationError(c, err)
	}

	return response.Success(c, "Donation recycled", donation)
}

// donationError maps donation service errors to HTTP responses
func donationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDonationNotFound):
		return response.NotFound(c, "Donation not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrDealerNotFound):
		return response.BadRequest(c, "Dealer not found or not active")
	case errors.Is(err, services.ErrNotDonationOwner),
		errors.Is(err, services.ErrNotAssignedDealer):
		return response.Forbidden(c, "You don't have permission to access this resource")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
