package ports

import (
	"context"

	"github.com/itemkeeper/core/internal/domain/entities"
)

// CatalogService interface for catalog item operations
type CatalogService interface {
	DatabasePath() string
	CountItems(ctx context.Context) (int, error)
	ListItems(ctx context.Context) (map[string]entities.Item, error)
	GetItem(ctx context.Context, id string) (*entities.Item, error)
	CreateItem(ctx context.Context, req ItemRequest) (string, *entities.Item, error)
	UpdateItem(ctx context.Context, id string, req ItemRequest) (*entities.Item, error)
	DeleteItem(ctx context.Context, id string) (*entities.Item, error)
}

// ShoppingService interface for shopping list operations
type ShoppingService interface {
	CountItems(ctx context.Context) (int, error)
	ListItems(ctx context.Context) (entities.ShoppingList, error)
	CreateItem(ctx context.Context, req ShoppingItemRequest) (*entities.ShoppingItem, error)
}

// Request types

// ItemRequest is the catalog item input schema. Pointers tell a missing
// field apart from a zero value.
type ItemRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
}

// ToItem converts a validated request into a record
func (r ItemRequest) ToItem() entities.Item {
	item := entities.Item{Description: r.Description}
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	return item
}

// ShoppingItemRequest is the shopping list input, taken from query parameters
type ShoppingItemRequest struct {
	Name     *string `validate:"required"`
	Quantity *int    `validate:"required"`
}
