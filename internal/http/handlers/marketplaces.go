package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// MarketplaceHandler handles marketplace endpoints
type MarketplaceHandler struct {
	marketplaceRepo *repo.MarketplaceRepository
}

// NewMarketplaceHandler creates a new marketplace handler
func NewMarketplaceHandler(marketplaceRepo *repo.MarketplaceRepository) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceRepo: marketplaceRepo}
}

// List godoc
// @Summary List marketplaces
// @Tags marketplaces
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by name or channel"
// @Success 200 {object} models.PaginationResult[models.Marketplace]
// @Security BearerAuth
// @Router /marketplaces [get]
func (h *MarketplaceHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	marketplaces, total, err := h.marketplaceRepo.List(limit, offset, c.QueryParam("search"))
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list marketplaces", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(marketplaces, total, page, limit))
}

// Get godoc
// @Summary Get marketplace by ID
// @Tags marketplaces
// @Produce json
// @Param id path string true "Marketplace ID"
// @Success 200 {object} models.Marketplace
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /marketplaces/{id} [get]
func (h *MarketplaceHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	marketplace, err := h.marketplaceRepo.GetByID(id)
	if err != nil {
		return notFound(c, "marketplace")
	}

	return c.JSON(http.StatusOK, marketplace)
}

// Create godoc
// @Summary Create marketplace
// @Tags marketplaces
// @Accept json
// @Produce json
// @Param request body models.Marketplace true "Marketplace data"
// @Success 201 {object} models.Marketplace
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /marketplaces [post]
func (h *MarketplaceHandler) Create(c echo.Context) error {
	var marketplace models.Marketplace
	if err := c.Bind(&marketplace); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&marketplace); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.marketplaceRepo.Create(&marketplace); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create marketplace", err))
	}

	return c.JSON(http.StatusCreated, marketplace)
}

// Update godoc
// @Summary Update marketplace
// @Tags marketplaces
// @Accept json
// @Produce json
// @Param id path string true "Marketplace ID"
// @Param request body models.Marketplace true "Marketplace data"
// @Success 200 {object} models.Marketplace
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /marketplaces/{id} [put]
func (h *MarketplaceHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	existing, err := h.marketplaceRepo.GetByID(id)
	if err != nil {
		return notFound(c, "marketplace")
	}

	var marketplace models.Marketplace
	if err := c.Bind(&marketplace); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&marketplace); err != nil {
		return badRequest(c, err.Error())
	}

	marketplace.ID = existing.ID
	marketplace.CreatedAt = existing.CreatedAt
	if err := h.marketplaceRepo.Update(&marketplace); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update marketplace", err))
	}

	return c.JSON(http.StatusOK, marketplace)
}

// Delete godoc
// @Summary Delete marketplace
// @Tags marketplaces
// @Param id path string true "Marketplace ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /marketplaces/{id} [delete]
func (h *MarketplaceHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.marketplaceRepo.GetByID(id); err != nil {
		return notFound(c, "marketplace")
	}

	if err := h.marketplaceRepo.Delete(id); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete marketplace", err))
	}

	return c.NoContent(http.StatusNoContent)
}
