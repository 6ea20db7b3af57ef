package handlers

import (
	"errors"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/config"
	"scrapseva/internal/core/services"
	"scrapseva/internal/pkg/response"
	"scrapseva/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile self-service and device token registration
type UserHandler struct {
	userService     *services.UserService
	deviceTokenRepo repositories.DeviceTokenRepository
	cfg             *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, deviceTokenRepo repositories.DeviceTokenRepository, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService:     userService,
		deviceTokenRepo: deviceTokenRepo,
		cfg:             cfg,
	}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "", profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Accepts multipart form data; profileImage is an optional image file
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [patch]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := &services.UpdateProfileInput{}
	if v := c.FormValue("name"); v != "" {
		input.Name = &v
	}
	if v := c.FormValue("phone"); v != "" {
		if !validation.IsPhone(v) {
			return response.ValidationFailed(c, map[string]string{"phone": "Phone must be 10 digits"})
		}
		input.Phone = &v
	}
	if v := c.FormValue("address"); v != "" {
		input.Address = &v
	}
	if v := c.FormValue("city"); v != "" {
		input.City = &v
	}
	if v := c.FormValue("shopName"); v != "" {
		input.ShopName = &v
	}

	if file, err := c.FormFile("profileImage"); err == nil {
		path, err := saveImage(c, file, h.cfg, "profiles")
		if err != nil {
			return uploadError(c, err)
		}
		input.ProfileImage = &path
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrPhoneTaken) {
			return response.Conflict(c, "Phone number is already in use")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated", profile)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile/password [patch]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.NewPassword) < 6 {
		return response.ValidationFailed(c, map[string]string{"password": "Password must be at least 6 characters"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return response.ValidationFailed(c, map[string]string{"confirm_password": "Passwords do not match"})
	}

	if err := h.userService.ChangePassword(c.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return response.BadRequest(c, "Current password is incorrect")
		}
		return response.InternalServerError(c, "Failed to change password")
	}

	return response.Success(c, "Password changed, please sign in again", nil)
}

// DeleteAccount godoc
// @Summary Delete own account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := h.userService.DeleteAccount(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to delete account")
	}

	return response.Success(c, "Account deleted", nil)
}

// RegisterDeviceToken godoc
// @Summary Register an FCM device token for push notifications
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /device-tokens [post]
func (h *UserHandler) RegisterDeviceToken(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Token == "" {
		return response.BadRequest(c, "token is required")
	}
	if req.Platform == "" {
		req.Platform = "web"
	}

	token := &models.DeviceToken{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	}
	if err := h.deviceTokenRepo.Upsert(c.Context(), token); err != nil {
		return response.InternalServerError(c, "Failed to register device token")
	}

	return response.Success(c, "Device token registered", nil)
}

// RemoveDeviceToken godoc
// @Summary Remove an FCM device token
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /device-tokens [delete]
func (h *UserHandler) RemoveDeviceToken(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Token == "" {
		return response.BadRequest(c, "token is required")
	}

	if err := h.deviceTokenRepo.DeleteByToken(c.Context(), req.Token); err != nil {
		return response.InternalServerError(c, "Failed to remove device token")
	}

	return response.Success(c, "Device token removed", nil)
}

// uploadError maps upload failures to HTTP responses
func uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errFileTooLarge):
		return response.Error(c, fiber.StatusRequestEntityTooLarge, "File is too large")
	case errors.Is(err, errBadFileType):
		return response.BadRequest(c, "Only jpg, jpeg, png and webp files are allowed")
	default:
		return response.InternalServerError(c, "Failed to store file")
	}
}
