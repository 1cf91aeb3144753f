package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/config"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token when the cookie is not available
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login handles staff login
// @Summary Login
// @Description Authenticate a usuario and return tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return handleError(c, err, "Failed to login")
	}

	h.setRefreshCookie(c, result.RefreshToken)
	return response.Success(c, "Login successful", result)
}

// RefreshToken handles token refresh
// @Summary Refresh tokens
// @Description Rotate the refresh token (cookie or body) and issue a new pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := h.refreshTokenFrom(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		return handleError(c, err, "Failed to refresh token")
	}

	h.setRefreshCookie(c, result.RefreshToken)
	return response.Success(c, "Token refreshed successfully", result)
}

// Logout handles logout
// @Summary Logout
// @Description Revoke the refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token"
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := h.refreshTokenFrom(c); refreshToken != "" {
		if err := h.authService.Logout(c.Context(), refreshToken); err != nil {
			return handleError(c, err, "Failed to logout")
		}
	}

	h.clearRefreshCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll revokes every refresh token of the caller
// @Summary Logout from all sessions
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return handleError(c, err, "Failed to logout")
	}

	h.clearRefreshCookie(c)
	return response.Success(c, "Logged out from all sessions", nil)
}

// Me returns the current usuario
// @Summary Current usuario
// @Description Get the authenticated usuario
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	usuario, err := h.authService.GetUsuarioByID(c.Context(), userID)
	if err != nil {
		return handleError(c, err, "Failed to get usuario")
	}

	return response.Success(c, "Usuario retrieved successfully", fiber.Map{
		"usuario": usuario,
	})
}

// refreshTokenFrom prefers the cookie and falls back to the JSON body
func (h *AuthHandler) refreshTokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies("refresh_token"); token != "" {
		return token
	}
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/api/v1/auth",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
