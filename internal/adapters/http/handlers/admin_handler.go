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

// AdminHandler handles the admin dashboard, user management, shelters and
// partner logos
type AdminHandler struct {
	dashboardService *services.DashboardService
	userService      *services.UserService
	shelterService   *services.ShelterService
	logoService      *services.LogoService
	contactService   *services.ContactService
	cfg              *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	dashboardService *services.DashboardService,
	userService *services.UserService,
	shelterService *services.ShelterService,
	logoService *services.LogoService,
	contactService *services.ContactService,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
		userService:      userService,
		shelterService:   shelterService,
		logoService:      logoService,
		contactService:   contactService,
		cfg:              cfg,
	}
}

// Dashboard godoc
// @Summary Get the full dashboard aggregate bundle
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "", stats)
}

// statFunc is one independently refreshable dashboard figure
type statFunc func(c *fiber.Ctx) (interface{}, error)

// Stat returns a handler for a single dashboard figure
func (h *AdminHandler) Stat(name string) fiber.Handler {
	stats := map[string]statFunc{
		"totalpickups": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.TotalPickups(c.Context())
		},
		"totalscraped": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.TotalScraped(c.Context())
		},
		"totaldonationValue": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.TotalDonationValue(c.Context())
		},
		"activeUsers": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.ActiveCountByRole(c.Context(), domain.RoleUser)
		},
		"activeDealers": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.ActiveCountByRole(c.Context(), domain.RoleDealer)
		},
		"activeVolunteers": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.ActiveCountByRole(c.Context(), domain.RoleVolunteer)
		},
		"pendingDonation": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.PendingDonations(c.Context())
		},
		"shelters": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.ShelterCount(c.Context())
		},
		"logos": func(c *fiber.Ctx) (interface{}, error) {
			return h.dashboardService.LogoCount(c.Context())
		},
	}

	fn := stats[name]
	return func(c *fiber.Ctx) error {
		value, err := fn(c)
		if err != nil {
			return response.InternalServerError(c, "Failed to load "+name)
		}
		return response.Success(c, "", fiber.Map{name: value})
	}
}

// ListUsers godoc
// @Summary List users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param city query string false "City filter"
// @Param search query string false "Search by name, email or phone"
// @Success 200 {object} pagination.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var active *bool
	if v := c.Query("active"); v == "true" || v == "false" {
		b := v == "true"
		active = &b
	}

	users, meta, err := h.userService.ListUsers(c.Context(), c.Query("role"), c.Query("city"), c.Query("search"), active, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return c.JSON(pagination.Response{Data: users, Meta: meta})
}

// ListDealers godoc
// @Summary List active dealers (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /admin/dealers [get]
func (h *AdminHandler) ListDealers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	dealers, meta, err := h.userService.ListDealers(c.Context(), c.Query("city"), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list dealers")
	}

	return c.JSON(pagination.Response{Data: dealers, Meta: meta})
}

// ListVolunteers godoc
// @Summary List active volunteers (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /admin/volunteers [get]
func (h *AdminHandler) ListVolunteers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	volunteers, meta, err := h.userService.ListVolunteers(c.Context(), c.Query("city"), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list volunteers")
	}

	return c.JSON(pagination.Response{Data: volunteers, Meta: meta})
}

// GetUser godoc
// @Summary Get any user (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.AdminGetUser(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "", user)
}

// UpdateUser godoc
// @Summary Edit any user, including activation state (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req services.AdminUpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.AdminUpdateUser(c.Context(), adminID, uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotEditSelf):
			return response.BadRequest(c, "You cannot change your own account state")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email is already in use")
		case errors.Is(err, services.ErrPhoneTaken):
			return response.Conflict(c, "Phone number is already in use")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated", user)
}

// DeleteUser godoc
// @Summary Delete any user (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.AdminDeleteUser(c.Context(), adminID, uint(id)); err != nil {
		if errors.Is(err, services.ErrCannotEditSelf) {
			return response.BadRequest(c, "You cannot delete your own account")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted", nil)
}

// ListShelters godoc
// @Summary List all shelters including inactive (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/shelters [get]
func (h *AdminHandler) ListShelters(c *fiber.Ctx) error {
	shelters, err := h.shelterService.List(c.Context(), false)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch shelters")
	}
	return response.Success(c, "Shelters fetched", shelters)
}

// GetShelter godoc
// @Summary Get a shelter (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shelter ID"
// @Success 200 {object} response.Response
// @Router /admin/shelters/{id} [get]
func (h *AdminHandler) GetShelter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	shelter, err := h.shelterService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return response.NotFound(c, "Shelter not found")
		}
		return response.InternalServerError(c, "Failed to fetch shelter")
	}

	return response.Success(c, "Shelter fetched", shelter)
}

// CreateShelter godoc
// @Summary Register a shelter (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /admin/shelters [post]
func (h *AdminHandler) CreateShelter(c *fiber.Ctx) error {
	var req services.ShelterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.ValidationFailed(c, map[string]string{"name": "Name is required"})
	}

	shelter, err := h.shelterService.Create(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, "Failed to create shelter")
	}

	return response.Created(c, "Shelter created", shelter)
}

// UpdateShelter godoc
// @Summary Edit a shelter (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shelter ID"
// @Success 200 {object} response.Response
// @Router /admin/shelters/{id} [patch]
func (h *AdminHandler) UpdateShelter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	var req services.ShelterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	shelter, err := h.shelterService.Update(c.Context(), uint(id), &req)
	if err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return response.NotFound(c, "Shelter not found")
		}
		return response.InternalServerError(c, "Failed to update shelter")
	}

	return response.Success(c, "Shelter updated", shelter)
}

// DeleteShelter godoc
// @Summary Delete a shelter (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shelter ID"
// @Success 200 {object} response.Response
// @Router /admin/shelters/{id} [delete]
func (h *AdminHandler) DeleteShelter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	if err := h.shelterService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrShelterNotFound) {
			return response.NotFound(c, "Shelter not found")
		}
		return response.InternalServerError(c, "Failed to delete shelter")
	}

	return response.Success(c, "Shelter deleted", nil)
}

// UploadLogo godoc
// @Summary Upload a partner logo (admin)
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /admin/logos [post]
func (h *AdminHandler) UploadLogo(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	file, err := c.FormFile("logo")
	if err != nil {
		return response.BadRequest(c, "logo file is required")
	}

	path, err := saveImage(c, file, h.cfg, "logos")
	if err != nil {
		return uploadError(c, err)
	}

	logo, err := h.logoService.Create(c.Context(), c.FormValue("title"), path, adminID)
	if err != nil {
		return response.InternalServerError(c, "Failed to store logo")
	}

	return response.Created(c, "Logo uploaded", logo)
}

// DeleteLogo godoc
// @Summary Delete a partner logo (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Logo ID"
// @Success 200 {object} response.Response
// @Router /admin/logos/{id} [delete]
func (h *AdminHandler) DeleteLogo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid logo ID")
	}

	if err := h.logoService.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete logo")
	}

	return response.Success(c, "Logo deleted", nil)
}

// ListContactMessages godoc
// @Summary List contact form submissions (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} pagination.Response
// @Router /admin/contact-messages [get]
func (h *AdminHandler) ListContactMessages(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	messages, meta, err := h.contactService.List(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return c.JSON(pagination.Response{Data: messages, Meta: meta})
}
