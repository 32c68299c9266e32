package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/internal/services"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// BrandHandler handles brand endpoints
type BrandHandler struct {
	brandRepo *repo.BrandRepository
	storage   *services.StorageService
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandRepo *repo.BrandRepository, storage *services.StorageService) *BrandHandler {
	return &BrandHandler{brandRepo: brandRepo, storage: storage}
}

// List godoc
// @Summary List brands
// @Tags brands
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by name"
// @Success 200 {object} models.PaginationResult[models.Brand]
// @Security BearerAuth
// @Router /brands [get]
func (h *BrandHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	brands, total, err := h.brandRepo.List(limit, offset, c.QueryParam("search"))
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list brands", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(brands, total, page, limit))
}

// Get godoc
// @Summary Get brand by ID
// @Tags brands
// @Produce json
// @Param id path string true "Brand ID"
// @Success 200 {object} models.Brand
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /brands/{id} [get]
func (h *BrandHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	brand, err := h.brandRepo.GetByID(id)
	if err != nil {
		return notFound(c, "brand")
	}

	return c.JSON(http.StatusOK, brand)
}

// Create godoc
// @Summary Create brand
// @Tags brands
// @Accept json
// @Produce json
// @Param request body models.Brand true "Brand data"
// @Success 201 {object} models.Brand
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /brands [post]
func (h *BrandHandler) Create(c echo.Context) error {
	var brand models.Brand
	if err := c.Bind(&brand); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&brand); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.brandRepo.GetByName(brand.Name); err == nil {
		return respondError(c, apierr.New(apierr.CodeConflict, "brand name already exists"))
	}

	if err := h.brandRepo.Create(&brand); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create brand", err))
	}

	return c.JSON(http.StatusCreated, brand)
}

// Update godoc
// @Summary Update brand
// @Tags brands
// @Accept json
// @Produce json
// @Param id path string true "Brand ID"
// @Param request body models.Brand true "Brand data"
// @Success 200 {object} models.Brand
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /brands/{id} [put]
func (h *BrandHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	existing, err := h.brandRepo.GetByID(id)
	if err != nil {
		return notFound(c, "brand")
	}

	var brand models.Brand
	if err := c.Bind(&brand); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&brand); err != nil {
		return badRequest(c, err.Error())
	}

	brand.ID = existing.ID
	brand.CreatedAt = existing.CreatedAt
	if err := h.brandRepo.Update(&brand); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update brand", err))
	}

	return c.JSON(http.StatusOK, brand)
}

// Delete godoc
// @Summary Delete brand
// @Description A brand with products attached cannot be deleted
// @Tags brands
// @Param id path string true "Brand ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /brands/{id} [delete]
func (h *BrandHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.brandRepo.GetByID(id); err != nil {
		return notFound(c, "brand")
	}

	count, err := h.brandRepo.CountProducts(id)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to check brand usage", err))
	}
	if count > 0 {
		return respondError(c, apierr.New(apierr.CodeConflict, "brand has products attached"))
	}

	if err := h.brandRepo.Delete(id); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete brand", err))
	}

	return c.NoContent(http.StatusNoContent)
}

// Upload godoc
// @Summary Upload a brand asset
// @Tags brands
// @Accept multipart/form-data
// @Produce json
// @Param brand_id formData string true "Brand ID"
// @Param file formData file true "Asset file"
// @Success 200 {object} models.Brand
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /brands/upload [post]
func (h *BrandHandler) Upload(c echo.Context) error {
	brandID, err := uuid.Parse(c.FormValue("brand_id"))
	if err != nil {
		return badRequest(c, "invalid brand_id")
	}

	brand, err := h.brandRepo.GetByID(brandID)
	if err != nil {
		return notFound(c, "brand")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	url, err := h.storage.UploadBrandAsset(fileHeader, brandID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	brand.AssetURL = url
	if err := h.brandRepo.Update(brand); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to save brand asset", err))
	}

	return c.JSON(http.StatusOK, brand)
}
