package handlers

import (
	"scrapseva/internal/core/services"
	"scrapseva/internal/pkg/response"
	"scrapseva/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler handles the unauthenticated landing-page endpoints
type PublicHandler struct {
	contactService *services.ContactService
	logoService    *services.LogoService
	shelterService *services.ShelterService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(contactService *services.ContactService, logoService *services.LogoService, shelterService *services.ShelterService) *PublicHandler {
	return &PublicHandler{
		contactService: contactService,
		logoService:    logoService,
		shelterService: shelterService,
	}
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Tags public
// @Accept json
// @Produce json
// @Success 201 {object} response.Response
// @Router /contact [post]
func (h *PublicHandler) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	form := validation.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if errs := form.Validate(); len(errs) > 0 {
		return response.ValidationFailed(c, errs)
	}

	msg, err := h.contactService.Submit(c.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return response.InternalServerError(c, "Failed to submit message")
	}

	return response.Created(c, "Thank you, we will get back to you soon", msg)
}

// ListLogos godoc
// @Summary List partner logos
// @Tags public
// @Produce json
// @Success 200 {object} response.Response
// @Router /logos [get]
func (h *PublicHandler) ListLogos(c *fiber.Ctx) error {
	logos, err := h.logoService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list logos")
	}
	return response.Success(c, "", logos)
}

// ListShelters godoc
// @Summary List active shelters
// @Tags public
// @Produce json
// @Success 200 {object} response.Response
// @Router /shelters [get]
func (h *PublicHandler) ListShelters(c *fiber.Ctx) error {
	shelters, err := h.shelterService.List(c.Context(), true)
	if err != nil {
		return response.InternalServerError(c, "Failed to list shelters")
	}
	return response.Success(c, "", shelters)
}
