package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// ShippingHandler handles shipping company endpoints
type ShippingHandler struct {
	shippingRepo *repo.ShippingRepository
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(shippingRepo *repo.ShippingRepository) *ShippingHandler {
	return &ShippingHandler{shippingRepo: shippingRepo}
}

// List godoc
// @Summary List shipping companies
// @Tags shipping
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by name or carrier code"
// @Success 200 {object} models.PaginationResult[models.ShippingCompany]
// @Security BearerAuth
// @Router /shipping-companies [get]
func (h *ShippingHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	companies, total, err := h.shippingRepo.List(limit, offset, c.QueryParam("search"))
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list shipping companies", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(companies, total, page, limit))
}

// Get godoc
// @Summary Get shipping company by ID
// @Tags shipping
// @Produce json
// @Param id path string true "Shipping company ID"
// @Success 200 {object} models.ShippingCompany
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /shipping-companies/{id} [get]
func (h *ShippingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	company, err := h.shippingRepo.GetByID(id)
	if err != nil {
		return notFound(c, "shipping company")
	}

	return c.JSON(http.StatusOK, company)
}

// Create godoc
// @Summary Create shipping company
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body models.ShippingCompany true "Shipping company data"
// @Success 201 {object} models.ShippingCompany
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /shipping-companies [post]
func (h *ShippingHandler) Create(c echo.Context) error {
	var company models.ShippingCompany
	if err := c.Bind(&company); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&company); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.shippingRepo.Create(&company); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create shipping company", err))
	}

	return c.JSON(http.StatusCreated, company)
}

// Update godoc
// @Summary Update shipping company
// @Tags shipping
// @Accept json
// @Produce json
// @Param id path string true "Shipping company ID"
// @Param request body models.ShippingCompany true "Shipping company data"
// @Success 200 {object} models.ShippingCompany
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /shipping-companies/{id} [put]
func (h *ShippingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	existing, err := h.shippingRepo.GetByID(id)
	if err != nil {
		return notFound(c, "shipping company")
	}

	var company models.ShippingCompany
	if err := c.Bind(&company); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&company); err != nil {
		return badRequest(c, err.Error())
	}

	company.ID = existing.ID
	company.CreatedAt = existing.CreatedAt
	if err := h.shippingRepo.Update(&company); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update shipping company", err))
	}

	return c.JSON(http.StatusOK, company)
}

// Delete godoc
// @Summary Delete shipping company
// @Tags shipping
// @Param id path string true "Shipping company ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /shipping-companies/{id} [delete]
func (h *ShippingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.shippingRepo.GetByID(id); err != nil {
		return notFound(c, "shipping company")
	}

	if err := h.shippingRepo.Delete(id); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete shipping company", err))
	}

	return c.NoContent(http.StatusNoContent)
}
