package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itemkeeper/core/internal/infrastructure/logger"
	"github.com/itemkeeper/core/internal/ports"
)

// CatalogHandler handles catalog item requests
type CatalogHandler struct {
	catalogService ports.CatalogService
	logger         *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService ports.CatalogService, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Register mounts the catalog routes on e
func (h *CatalogHandler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/items", h.ListItems)
	e.GET("/items/:id", h.GetItem)
	e.POST("/items/", h.CreateItem)
	e.POST("/items", h.CreateItem)
	e.PUT("/items/:id", h.UpdateItem)
	e.DELETE("/items/:id", h.DeleteItem)
}

// Root godoc
// @Summary Service banner
// @Tags catalog
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func (h *CatalogHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Message:  "Welcome to the Items API!",
		Database: h.catalogService.DatabasePath(),
	})
}

// Health godoc
// @Summary Health check
// @Tags catalog
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} ErrorResponse
// @Router /health [get]
func (h *CatalogHandler) Health(c echo.Context) error {
	count, err := h.catalogService.CountItems(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy", ItemsCount: count})
}

// ListItems godoc
// @Summary List all items
// @Tags catalog
// @Produce json
// @Success 200 {object} ItemListResponse
// @Router /items [get]
func (h *CatalogHandler) ListItems(c echo.Context) error {
	items, err := h.catalogService.ListItems(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ItemListResponse{Items: items})
}

// GetItem godoc
// @Summary Get item by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} entities.Item
// @Failure 404 {object} ErrorResponse
// @Router /items/{id} [get]
func (h *CatalogHandler) GetItem(c echo.Context) error {
	item, err := h.catalogService.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, item)
}

// CreateItem godoc
// @Summary Create a new item
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body ports.ItemRequest true "Item data"
// @Success 200 {object} ItemResponse
// @Failure 422 {object} ErrorResponse
// @Router /items/ [post]
func (h *CatalogHandler) CreateItem(c echo.Context) error {
	req, err := h.bindItem(c)
	if err != nil {
		return err
	}

	id, item, err := h.catalogService.CreateItem(c.Request().Context(), req)
	if err != nil {
		h.logger.WithError(err).Errorw("Create item failed")
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, ItemResponse{
		Message: "Item created successfully",
		ItemID:  id,
		Item:    *item,
	})
}

// UpdateItem godoc
// @Summary Replace an item
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body ports.ItemRequest true "Item data"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /items/{id} [put]
func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	id := c.Param("id")

	req, err := h.bindItem(c)
	if err != nil {
		return err
	}

	item, err := h.catalogService.UpdateItem(c.Request().Context(), id, req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, ItemResponse{
		Message: "Item updated successfully",
		ItemID:  id,
		Item:    *item,
	})
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags catalog
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} DeletedItemResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c echo.Context) error {
	item, err := h.catalogService.DeleteItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, DeletedItemResponse{
		Message: "Item deleted successfully",
		Item:    *item,
	})
}

func (h *CatalogHandler) bindItem(c echo.Context) (ports.ItemRequest, error) {
	var req ports.ItemRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return req, invalidInput("Invalid request body", err)
	}

	if err := c.Validate(&req); err != nil {
		return req, err
	}

	return req, nil
}
