package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itemkeeper/core/internal/domain/entities"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// RootResponse describes the running catalog service
type RootResponse struct {
	Message  string `json:"message"`
	Database string `json:"database"`
}

// HealthResponse reports service health and record count
type HealthResponse struct {
	Status     string `json:"status"`
	ItemsCount int    `json:"items_count"`
}

// ItemListResponse wraps every catalog item keyed by id
type ItemListResponse struct {
	Items map[string]entities.Item `json:"items"`
}

// ItemResponse is returned by catalog create and update
type ItemResponse struct {
	Message string        `json:"message"`
	ItemID  string        `json:"item_id"`
	Item    entities.Item `json:"item"`
}

// DeletedItemResponse is returned by catalog delete
type DeletedItemResponse struct {
	Message string        `json:"message"`
	Item    entities.Item `json:"item"`
}

// ShoppingItemResponse is returned by shopping list create
type ShoppingItemResponse struct {
	Message string                `json:"message"`
	Item    entities.ShoppingItem `json:"item"`
}

const msgItemNotFound = "Item not found"

// toHTTPError maps domain errors to HTTP errors; anything else is left for
// the server error handler to report as a 500.
func toHTTPError(err error) error {
	if errors.Is(err, entities.ErrItemNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msgItemNotFound).SetInternal(err)
	}
	return err
}

func invalidInput(message string, err error) error {
	he := echo.NewHTTPError(http.StatusUnprocessableEntity, message)
	if err != nil {
		he = he.SetInternal(err)
	}
	return he
}
