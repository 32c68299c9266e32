package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/internal/services"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/bundle"
	"sellerdesk/pkg/models"
)

const defaultMaxCombinationItems = 12

// ListingHandler handles listing endpoints
type ListingHandler struct {
	listingRepo *repo.ListingRepository
	productRepo *repo.ProductRepository
	storage     *services.StorageService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingRepo *repo.ListingRepository, productRepo *repo.ProductRepository, storage *services.StorageService) *ListingHandler {
	return &ListingHandler{
		listingRepo: listingRepo,
		productRepo: productRepo,
		storage:     storage,
	}
}

// CreateListingRequest creates a listing from a product or a confirmed
// combination. The SKU prefix comes from the source and is fixed afterwards.
type CreateListingRequest struct {
	MarketplaceID uuid.UUID            `json:"marketplace_id" validate:"required"`
	ProductID     *uuid.UUID           `json:"product_id"`
	Title         string               `json:"title" validate:"required"`
	SKUPrefix     string               `json:"sku_prefix" validate:"required"`
	SKUSuffix     string               `json:"sku_suffix"`
	Price         string               `json:"price"`
	IsCombination bool                 `json:"is_combination"`
	Items         []models.ListingItem `json:"items" validate:"dive"`
}

// UpdateListingRequest updates the editable listing fields. The SKU prefix
// is intentionally absent.
type UpdateListingRequest struct {
	Title     string                `json:"title" validate:"required"`
	SKUSuffix string                `json:"sku_suffix"`
	Price     string                `json:"price"`
	Status    *models.ListingStatus `json:"status"`
	ImageURL  *string               `json:"image_url"`
	Items     []models.ListingItem  `json:"items" validate:"dive"`
}

// CombinationRequest asks for bundle suggestions over selected products.
// Fewer than two IDs is not an error; it just yields no combinations.
type CombinationRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// List godoc
// @Summary List listings
// @Tags listings
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search title or SKU prefix"
// @Param marketplace_id query string false "Filter by marketplace"
// @Param status query string false "Filter by status"
// @Success 200 {object} models.PaginationResult[models.Listing]
// @Security BearerAuth
// @Router /listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	filter := repo.ListingFilter{
		Search: c.QueryParam("search"),
		Status: models.ListingStatus(c.QueryParam("status")),
	}
	if raw := c.QueryParam("marketplace_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid marketplace_id")
		}
		filter.MarketplaceID = &id
	}

	listings, total, err := h.listingRepo.List(limit, offset, filter)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list listings", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(listings, total, page, limit))
}

// Get godoc
// @Summary Get listing by ID
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	listing, err := h.listingRepo.GetByID(id)
	if err != nil {
		return notFound(c, "listing")
	}

	return c.JSON(http.StatusOK, listing)
}

// Create godoc
// @Summary Create listing
// @Tags listings
// @Accept json
// @Produce json
// @Param request body CreateListingRequest true "Listing data"
// @Success 201 {object} models.Listing
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	listing := models.Listing{
		MarketplaceID: req.MarketplaceID,
		ProductID:     req.ProductID,
		Title:         req.Title,
		SKUPrefix:     req.SKUPrefix,
		SKUSuffix:     models.NormalizeSuffix(req.SKUSuffix),
		Price:         req.Price,
		Status:        models.ListingStatusDraft,
		IsCombination: req.IsCombination,
		Items:         req.Items,
	}
	if listing.Price == "" {
		listing.Price = "0"
	}

	if err := h.listingRepo.Create(&listing); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create listing", err))
	}

	return c.JSON(http.StatusCreated, listing)
}

// Update godoc
// @Summary Update listing
// @Description The SKU prefix is protected; only the suffix and the other editable fields change
// @Tags listings
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body UpdateListingRequest true "Listing data"
// @Success 200 {object} models.Listing
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	listing, err := h.listingRepo.GetByID(id)
	if err != nil {
		return notFound(c, "listing")
	}

	var req UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if req.Status != nil && !models.ValidStatusTransition(listing.Status, *req.Status) {
		return badRequest(c, "invalid status transition")
	}

	listing.Title = req.Title
	listing.SKUSuffix = models.NormalizeSuffix(req.SKUSuffix)
	if req.Price != "" {
		listing.Price = req.Price
	}
	if req.Status != nil {
		listing.Status = *req.Status
	}
	if req.ImageURL != nil {
		listing.ImageURL = *req.ImageURL
	}

	if err := h.listingRepo.Update(listing); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update listing", err))
	}

	if req.Items != nil {
		if err := h.listingRepo.ReplaceItems(listing.ID, req.Items); err != nil {
			return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update listing items", err))
		}
		listing.Items = req.Items
	}

	return c.JSON(http.StatusOK, listing)
}

// Delete godoc
// @Summary Delete listing
// @Tags listings
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.listingRepo.GetByID(id); err != nil {
		return notFound(c, "listing")
	}

	if err := h.listingRepo.Delete(id); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete listing", err))
	}

	return c.NoContent(http.StatusNoContent)
}

// StatusCounts godoc
// @Summary Listing counts per status
// @Tags listings
// @Produce json
// @Success 200 {array} models.ListingStatusCount
// @Security BearerAuth
// @Router /listings/status [get]
func (h *ListingHandler) StatusCounts(c echo.Context) error {
	counts, err := h.listingRepo.CountByStatus()
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to count listings", err))
	}

	return c.JSON(http.StatusOK, counts)
}

// Combinations godoc
// @Summary Generate bundle suggestions from selected products
// @Description Returns every combination of size >= 2 of the given products. Fewer than two products yields an empty list; selections above the configured cap are rejected.
// @Tags listings
// @Accept json
// @Produce json
// @Param request body CombinationRequest true "Selected product IDs"
// @Success 200 {object} map[string][]bundle.Combination
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /listings/combinations [post]
func (h *ListingHandler) Combinations(c echo.Context) error {
	var req CombinationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	// Deduplicate preserving selection order
	seen := make(map[uuid.UUID]bool, len(req.ProductIDs))
	ids := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if len(ids) < 2 {
		return c.JSON(http.StatusOK, map[string][]bundle.Combination{"combinations": {}})
	}
	if len(ids) > maxCombinationItems() {
		return badRequest(c, "too many products selected for combination generation")
	}

	products, err := h.productRepo.GetByIDs(ids)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to load products", err))
	}
	if len(products) != len(ids) {
		return notFound(c, "product")
	}

	combinations := bundle.Generate(products)
	return c.JSON(http.StatusOK, map[string][]bundle.Combination{"combinations": combinations})
}

// ImagesTemplate godoc
// @Summary Download the listing images template
// @Tags listings
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /listings/images/template [get]
func (h *ListingHandler) ImagesTemplate(c echo.Context) error {
	f, err := services.BuildListingImagesTemplate()
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to build template", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listing_images_template.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// BulkImages godoc
// @Summary Bulk upload listing images
// @Description Multipart upload where each file's form field name is the target listing SKU
// @Tags listings
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /listings/images [put]
func (h *ListingHandler) BulkImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "multipart form is required")
	}

	updated := make([]string, 0)
	errors := make(map[string]string)

	for sku, files := range form.File {
		if len(files) == 0 {
			continue
		}

		listing, err := h.listingRepo.FindBySKU(sku)
		if err != nil {
			errors[sku] = "listing not found"
			continue
		}

		url, err := h.storage.UploadListingImage(files[0], sku)
		if err != nil {
			errors[sku] = err.Error()
			continue
		}

		listing.ImageURL = url
		if err := h.listingRepo.Update(listing); err != nil {
			errors[sku] = "failed to save image"
			continue
		}
		updated = append(updated, sku)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"updated": updated,
		"errors":  errors,
	})
}

func maxCombinationItems() int {
	if raw := os.Getenv("MAX_COMBINATION_ITEMS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 1 {
			return v
		}
	}
	return defaultMaxCombinationItems
}
