package handlers

import (
	"errors"
	"time"

	"scrapseva/internal/config"
	"scrapseva/internal/core/services"
	"scrapseva/internal/pkg/response"
	"scrapseva/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OTPService
	smsService  *services.SMSService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, otpService *services.OTPService, smsService *services.SMSService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
		smsService:  smsService,
		cfg:         cfg,
	}
}

// SendOTP godoc
// @Summary Send a signup OTP
// @Description Sends a 4-digit OTP to the given phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object true "Phone"
// @Success 200 {object} response.Response
// @Router /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !validation.IsPhone(req.Phone) {
		return response.ValidationFailed(c, map[string]string{"phone": "Phone must be 10 digits"})
	}

	code, err := h.otpService.Generate(req.Phone)
	if err != nil {
		if errors.Is(err, services.ErrOTPTooSoon) {
			return response.Error(c, fiber.StatusTooManyRequests, "Please wait before requesting another OTP")
		}
		return response.InternalServerError(c, "Failed to generate OTP")
	}

	if err := h.smsService.SendOTP(c.Context(), req.Phone, code); err != nil {
		return response.InternalServerError(c, "Failed to send OTP")
	}

	return response.Success(c, "OTP sent", nil)
}

// VerifyOTP godoc
// @Summary Verify a signup OTP
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !validation.IsPhone(req.Phone) {
		return response.ValidationFailed(c, map[string]string{"phone": "Phone must be 10 digits"})
	}
	if !validation.IsOTP(req.OTP) {
		return response.ValidationFailed(c, map[string]string{"otp": "OTP must be 4 digits"})
	}

	if err := h.otpService.Verify(req.Phone, req.OTP); err != nil {
		switch {
		case errors.Is(err, services.ErrOTPNotFound), errors.Is(err, services.ErrOTPExpired):
			return response.BadRequest(c, "OTP expired, please request a new one")
		case errors.Is(err, services.ErrOTPMaxAttempts):
			return response.Error(c, fiber.StatusTooManyRequests, "Too many wrong attempts, please request a new OTP")
		case errors.Is(err, services.ErrOTPMismatch):
			return response.BadRequest(c, "Incorrect OTP")
		default:
			return response.InternalServerError(c, "Failed to verify OTP")
		}
	}

	return response.Success(c, "Phone verified", nil)
}

// Signup godoc
// @Summary Register a new account
// @Description Registers a donor, dealer or volunteer. The phone must carry a verified OTP.
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		Role            string `json:"role"`
		Address         string `json:"address"`
		City            string `json:"city"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	form := validation.SignupForm{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	if errs := form.Validate(); len(errs) > 0 {
		return response.ValidationFailed(c, errs)
	}

	result, err := h.authService.Signup(c.Context(), &services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
		Address:  req.Address,
		City:     req.City,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhoneNotVerified):
			return response.BadRequest(c, "Phone number is not verified")
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, services.ErrPhoneAlreadyUsed):
			return response.Conflict(c, "An account with this phone already exists")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Invalid role")
		default:
			return response.InternalServerError(c, "Failed to create account")
		}
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	return response.Created(c, "Account created", result)
}

// Signin godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.Signin(c.Context(), &services.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "Your account has been deactivated")
		default:
			return response.InternalServerError(c, "Failed to sign in")
		}
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	return response.Success(c, "Signed in", result)
}

// GoogleSignin godoc
// @Summary Sign in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/google [post]
func (h *AuthHandler) GoogleSignin(c *fiber.Ctx) error {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.IDToken == "" {
		return response.BadRequest(c, "idToken is required")
	}

	result, err := h.authService.GoogleSignin(c.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoogleTokenInvalid):
			return response.Unauthorized(c, "Google sign-in failed")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "Your account has been deactivated")
		default:
			return response.InternalServerError(c, "Failed to sign in")
		}
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	return response.Success(c, "Signed in", result)
}

// Refresh godoc
// @Summary Refresh the access token
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token required")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, services.ErrTokenRevoked):
			return response.Unauthorized(c, "Refresh token revoked")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "Your account has been deactivated")
		default:
			return response.Unauthorized(c, "Invalid refresh token")
		}
	}

	h.setTokenCookies(c, result.AccessToken, result.RefreshToken)
	return response.Success(c, "Token refreshed", result)
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Mobile clients don't carry the cookie, they send the token in the body
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearTokenCookies(c)
	return response.Success(c, "Signed out", nil)
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !validation.IsEmail(req.Email) {
		return response.ValidationFailed(c, map[string]string{"email": "Email is invalid"})
	}

	if err := h.authService.ForgotPassword(c.Context(), req.Email); err != nil {
		return response.InternalServerError(c, "Failed to process request")
	}

	// Same response whether or not the email exists
	return response.Success(c, "If an account exists for this email, a reset link has been sent", nil)
}

// ResetPassword godoc
// @Summary Reset the password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	// The reset link puts the token in the path; older clients send it in the body
	if token := c.Params("token"); token != "" {
		req.Token = token
	}
	if req.Token == "" {
		return response.BadRequest(c, "Reset token is required")
	}
	if len(req.Password) < 6 {
		return response.ValidationFailed(c, map[string]string{"password": "Password must be at least 6 characters"})
	}
	if req.Password != req.ConfirmPassword {
		return response.ValidationFailed(c, map[string]string{"confirm_password": "Passwords do not match"})
	}

	if err := h.authService.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrResetTokenInvalid) {
			return response.BadRequest(c, "Reset link is invalid or has expired")
		}
		return response.InternalServerError(c, "Failed to reset password")
	}

	return response.Success(c, "Password reset, please sign in again", nil)
}

// Me godoc
// @Summary Get the signed-in user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "", user.ToResponse())
}

// setTokenCookies sets access and refresh token cookies
func (h *AuthHandler) setTokenCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 3600,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
	})
}

// clearTokenCookies expires both token cookies
func (h *AuthHandler) clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   h.cfg.Cookie.Domain,
			Expires:  expired,
			Secure:   h.cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: h.cfg.Cookie.SameSite,
		})
	}
}
