package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sellerdesk/internal/repo"
	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventoryRepo *repo.InventoryRepository
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryRepo *repo.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{inventoryRepo: inventoryRepo}
}

// List godoc
// @Summary List inventory
// @Tags inventory
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by sub SKU"
// @Param low_stock query bool false "Only low-stock records"
// @Success 200 {object} models.PaginationResult[models.Inventory]
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	records, total, err := h.inventoryRepo.List(limit, offset, c.QueryParam("search"), c.QueryParam("low_stock") == "true")
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list inventory", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(records, total, page, limit))
}

// LowStock godoc
// @Summary List low-stock inventory
// @Tags inventory
// @Produce json
// @Success 200 {object} models.PaginationResult[models.Inventory]
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c echo.Context) error {
	limit, offset, page := paginationParams(c)

	records, total, err := h.inventoryRepo.List(limit, offset, c.QueryParam("search"), true)
	if err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to list inventory", err))
	}

	return c.JSON(http.StatusOK, models.Paginate(records, total, page, limit))
}

// Get godoc
// @Summary Get inventory record by ID
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory ID"
// @Success 200 {object} models.Inventory
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	record, err := h.inventoryRepo.GetByID(id)
	if err != nil {
		return notFound(c, "inventory record")
	}

	return c.JSON(http.StatusOK, record)
}

// Create godoc
// @Summary Create inventory record
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body models.Inventory true "Inventory data"
// @Success 201 {object} models.Inventory
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	var record models.Inventory
	if err := c.Bind(&record); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&record); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.inventoryRepo.GetBySubSKU(record.SubSKU); err == nil {
		return respondError(c, apierr.New(apierr.CodeConflict, "inventory record for sub SKU already exists"))
	}

	if err := h.inventoryRepo.Create(&record); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to create inventory record", err))
	}

	return c.JSON(http.StatusCreated, record)
}

// Adjust godoc
// @Summary Adjust inventory quantities
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory ID"
// @Param request body models.InventoryAdjustRequest true "Adjustments"
// @Success 200 {object} models.Inventory
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Adjust(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	record, err := h.inventoryRepo.GetByID(id)
	if err != nil {
		return notFound(c, "inventory record")
	}

	var req models.InventoryAdjustRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	if req.OnHand != nil {
		record.OnHand = *req.OnHand
	}
	if req.Reserved != nil {
		record.Reserved = *req.Reserved
	}
	if req.ReorderThreshold != nil {
		record.ReorderThreshold = *req.ReorderThreshold
	}
	if req.WarehouseCode != nil {
		record.WarehouseCode = *req.WarehouseCode
	}

	if record.Reserved > record.OnHand {
		return badRequest(c, "reserved quantity cannot exceed on-hand quantity")
	}

	if err := h.inventoryRepo.Update(record); err != nil {
		return respondError(c, apierr.Wrap(apierr.CodeInternal, "failed to update inventory record", err))
	}

	return c.JSON(http.StatusOK, record)
}
