package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/internal/services"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productRepo *repo.ProductRepository
	importer    *services.ImporterService
	storage     *services.StorageService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productRepo *repo.ProductRepository, importer *services.ImporterService, storage *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
		importer:    importer,
		storage:     storage,
	}
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search title or SKU"
// @Param brand_id query string false "Filter by brand"
// @Param min_price query number false "Minimum brand real price"
// @Param max_price query number false "Maximum brand real price"
// @Param has_stock query bool false "Only products with stock"
// @Success 200 {object} models.PaginationResult[models.Product]
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	filter := repo.ProductFilter{
		Search:   c.QueryParam("search"),
		HasStock: c.QueryParam("has_stock") == "true",
	}
	if raw := c.QueryParam("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid brand_id")
		}
		filter.BrandID = &id
	}
	if raw := c.QueryParam("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "invalid min_price")
		}
		filter.MinPrice = &v
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "invalid max_price")
		}
		filter.MaxPrice = &v
	}

	products, total, err := h.productRepo.List(limit, offset, filter)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list products", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(products, total, page, limit))
}

// Get godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return notFound(c, "product")
	}

	return c.JSON(http.StatusOK, product)
}

// Create godoc
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param request body models.Product true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&product); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.productRepo.GetByGroupSKU(product.GroupSKU); err == nil {
		return respondError(c, apierr.New(apierr.CodeConflict, "group SKU already exists"))
	}

	if err := h.productRepo.Create(&product); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create product", err))
	}

	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.Product true "Product data"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	existing, err := h.productRepo.GetByID(id)
	if err != nil {
		return notFound(c, "product")
	}

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&product); err != nil {
		return badRequest(c, err.Error())
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := h.productRepo.Update(&product); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update product", err))
	}

	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.productRepo.GetByID(id); err != nil {
		return notFound(c, "product")
	}

	if err := h.productRepo.Delete(id); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete product", err))
	}

	return c.NoContent(http.StatusNoContent)
}

// Import godoc
// @Summary Import products from CSV or XLSX
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 202 {object} models.ImportJob
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /products/import [post]
func (h *ProductHandler) Import(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, apierr.New(apierr.CodeNoToken, "no token provided"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "failed to open file")
	}
	defer file.Close()

	job, err := h.importer.CreateProductImportJob(c.Request().Context(), userID, file, fileHeader)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusAccepted, job)
}

// ImportTemplate godoc
// @Summary Download the product import template
// @Tags products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /products/import/template [get]
func (h *ProductHandler) ImportTemplate(c echo.Context) error {
	f, err := services.BuildProductImportTemplate()
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to build template", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="product_import_template.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

// GetImportJob godoc
// @Summary Get import job progress
// @Tags products
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.ImportJobProgress
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/import/jobs/{id} [get]
func (h *ProductHandler) GetImportJob(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	progress, err := h.importer.GetJobProgress(id)
	if err != nil {
		return notFound(c, "import job")
	}

	return c.JSON(http.StatusOK, progress)
}

// ListImportJobs godoc
// @Summary List the current user's import jobs
// @Tags products
// @Produce json
// @Success 200 {object} models.PaginationResult[models.ImportJob]
// @Security BearerAuth
// @Router /products/import/jobs [get]
func (h *ProductHandler) ListImportJobs(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondError(c, apierr.New(apierr.CodeNoToken, "no token provided"))
	}

	limit, offset, page := paginationParams(c)
	jobs, total, err := h.importer.ListJobs(userID, limit, offset)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list import jobs", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(jobs, total, page, limit))
}

// AddImage godoc
// @Summary Upload a product gallery image
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param file formData file true "Image file"
// @Success 201 {object} models.ProductImage
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id}/images [post]
func (h *ProductHandler) AddImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.productRepo.GetByID(id); err != nil {
		return notFound(c, "product")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	url, s3Key, err := h.storage.UploadProductImage(fileHeader, id)
	if err != nil {
		return badRequest(c, err.Error())
	}

	image := models.ProductImage{
		ProductID: id,
		URL:       url,
		S3Key:     s3Key,
		Alt:       c.FormValue("alt"),
	}
	if order := c.FormValue("sort_order"); order != "" {
		image.SortOrder, _ = strconv.Atoi(order)
	}

	if err := h.productRepo.AddImage(&image); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to save image", err))
	}

	return c.JSON(http.StatusCreated, image)
}

// ListImages godoc
// @Summary List a product's gallery images
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} models.ProductImage
// @Security BearerAuth
// @Router /products/{id}/images [get]
func (h *ProductHandler) ListImages(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	images, err := h.productRepo.ListImages(id)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list images", err))
	}

	return c.JSON(http.StatusOK, images)
}

// DeleteImage godoc
// @Summary Delete a product gallery image
// @Tags products
// @Param id path string true "Product ID"
// @Param image_id path string true "Image ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id}/images/{image_id} [delete]
func (h *ProductHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return respondError(c, err)
	}

	image, err := h.productRepo.GetImage(id, imageID)
	if err != nil {
		return notFound(c, "image")
	}

	if image.S3Key != "" {
		if err := h.storage.DeleteFile(image.S3Key); err != nil {
			return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete stored file", err))
		}
	}

	if err := h.productRepo.DeleteImage(id, imageID); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to delete image", err))
	}

	return c.NoContent(http.StatusNoContent)
}
