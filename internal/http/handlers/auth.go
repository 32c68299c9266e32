package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/auth"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

const refreshCookieName = "refresh_token"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Login user
// @Description Authenticate user and return a JWT access token; the refresh token is set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	response, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}

	h.setRefreshCookie(c, response.RefreshToken)
	return c.JSON(http.StatusOK, response)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchange the refresh cookie for a new access token and a rotated refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} auth.LoginResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return respondError(c, apierr.New(apierr.CodeRefreshTokenMissing, "no refresh token, please login again"))
	}

	response, err := h.authService.Refresh(cookie.Value)
	if err != nil {
		h.clearRefreshCookie(c)
		return respondError(c, err)
	}

	h.setRefreshCookie(c, response.RefreshToken)
	return c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary Logout
// @Description Clear the refresh cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// GetProfile godoc
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	claims, ok := c.Get("claims").(*auth.TokenClaims)
	if !ok {
		return respondError(c, apierr.New(apierr.CodeNoToken, "no token provided"))
	}

	user, err := h.authService.GetUser(claims.UserID)
	if err != nil {
		return notFound(c, "user")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update user profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile data"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, apierr.New(apierr.CodeNoToken, "no token provided"))
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.authService.UpdateProfile(userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, apierr.New(apierr.CodeNoToken, "no token provided"))
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		MaxAge:   h.authService.RefreshCookieMaxAge(),
		HttpOnly: true,
		Secure:   os.Getenv("ENV") != "development",
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   os.Getenv("ENV") != "development",
		SameSite: http.SameSiteStrictMode,
	})
}
