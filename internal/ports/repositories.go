package ports

import (
	"context"

	"github.com/itemkeeper/core/internal/domain/entities"
)

// CatalogRepository defines the load/save pair for the catalog document
type CatalogRepository interface {
	Load(ctx context.Context) (*entities.CatalogDocument, error)
	Update(ctx context.Context, fn func(doc *entities.CatalogDocument) error) error
	Path() string
}

// ShoppingRepository defines the load/save pair for the shopping list document
type ShoppingRepository interface {
	Load(ctx context.Context) (entities.ShoppingList, error)
	Update(ctx context.Context, fn func(list *entities.ShoppingList) error) error
	Path() string
}

// IDGenerator assigns ids to new records
type IDGenerator interface {
	NextCatalogID(items map[string]entities.Item) string
	NextShoppingID(list entities.ShoppingList) int
}
