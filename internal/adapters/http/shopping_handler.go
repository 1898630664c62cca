package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/itemkeeper/core/internal/infrastructure/logger"
	"github.com/itemkeeper/core/internal/ports"
)

// ShoppingHandler handles shopping list requests
type ShoppingHandler struct {
	shoppingService ports.ShoppingService
	logger          *logger.Logger
}

// NewShoppingHandler creates a new shopping list handler
func NewShoppingHandler(shoppingService ports.ShoppingService, logger *logger.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
		logger:          logger,
	}
}

// Register mounts the shopping list routes on e
func (h *ShoppingHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/items", h.ListItems)
	e.POST("/items/", h.CreateItem)
	e.POST("/items", h.CreateItem)
}

// Health reports the list size
func (h *ShoppingHandler) Health(c echo.Context) error {
	count, err := h.shoppingService.CountItems(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy", ItemsCount: count})
}

// ListItems godoc
// @Summary List the shopping list
// @Tags shopping
// @Produce json
// @Success 200 {array} entities.ShoppingItem
// @Router /items [get]
func (h *ShoppingHandler) ListItems(c echo.Context) error {
	list, err := h.shoppingService.ListItems(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// CreateItem godoc
// @Summary Add an entry to the shopping list
// @Tags shopping
// @Produce json
// @Param name query string true "Item name"
// @Param quantity query int true "Quantity"
// @Success 200 {object} ShoppingItemResponse
// @Failure 422 {object} ErrorResponse
// @Router /items/ [post]
func (h *ShoppingHandler) CreateItem(c echo.Context) error {
	var req ports.ShoppingItemRequest

	query := c.QueryParams()
	if query.Has("name") {
		name := query.Get("name")
		req.Name = &name
	}
	if query.Has("quantity") {
		quantity, err := strconv.Atoi(query.Get("quantity"))
		if err != nil {
			return invalidInput("quantity must be an integer", err)
		}
		req.Quantity = &quantity
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.shoppingService.CreateItem(c.Request().Context(), req)
	if err != nil {
		h.logger.WithError(err).Errorw("Create shopping item failed")
		return err
	}

	return c.JSON(http.StatusOK, ShoppingItemResponse{
		Message: "Item created successfully",
		Item:    *item,
	})
}
