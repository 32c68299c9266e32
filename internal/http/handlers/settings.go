package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// SettingsHandler handles settings endpoints
type SettingsHandler struct {
	settingsRepo *repo.SettingsRepository
	brandRepo    *repo.BrandRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsRepo *repo.SettingsRepository, brandRepo *repo.BrandRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo, brandRepo: brandRepo}
}

// List godoc
// @Summary List settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) List(c echo.Context) error {
	settings, err := h.settingsRepo.List()
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list settings", err))
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return c.JSON(http.StatusOK, out)
}

// Update godoc
// @Summary Upsert settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.UpdateSettingsRequest true "Key/value pairs"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	var req models.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	for key, value := range req.Settings {
		if err := h.settingsRepo.Upsert(key, value); err != nil {
			return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to save setting "+key, err))
		}
	}

	return h.List(c)
}

// ListBrandSettings godoc
// @Summary List per-brand defaults
// @Tags settings
// @Produce json
// @Success 200 {array} models.BrandSetting
// @Security BearerAuth
// @Router /settings/brands [get]
func (h *SettingsHandler) ListBrandSettings(c echo.Context) error {
	settings, err := h.settingsRepo.ListBrandSettings()
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list brand settings", err))
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateBrandSetting godoc
// @Summary Upsert per-brand defaults
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.UpdateBrandSettingRequest true "Brand defaults"
// @Success 200 {object} models.BrandSetting
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /settings/brands [put]
func (h *SettingsHandler) UpdateBrandSetting(c echo.Context) error {
	var req models.UpdateBrandSettingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.brandRepo.GetByID(req.BrandID); err != nil {
		return notFound(c, "brand")
	}

	setting := &models.BrandSetting{BrandID: req.BrandID, Visible: true}
	if existing, err := h.settingsRepo.GetBrandSetting(req.BrandID); err == nil {
		setting = existing
	}

	if req.DefaultMarkupPercent != nil {
		setting.DefaultMarkupPercent = *req.DefaultMarkupPercent
	}
	if req.Visible != nil {
		setting.Visible = *req.Visible
	}

	if err := h.settingsRepo.SaveBrandSetting(setting); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to save brand setting", err))
	}

	return c.JSON(http.StatusOK, setting)
}
