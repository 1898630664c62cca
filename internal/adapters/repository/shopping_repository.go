package repository

import (
	"context"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/ports"
)

// ShoppingRepository implements ports.ShoppingRepository on a JSON file
type ShoppingRepository struct {
	store *DocumentStore[entities.ShoppingList]
}

// NewShoppingRepository creates a new shopping list repository. A missing
// or malformed file reads as an empty list.
func NewShoppingRepository(opts StoreOptions) *ShoppingRepository {
	opts.Service = entities.ServiceShopping
	opts.Policy = PolicyLenient
	return &ShoppingRepository{
		store: NewDocumentStore(opts, func() entities.ShoppingList {
			return entities.ShoppingList{}
		}, func(list entities.ShoppingList) int {
			return len(list)
		}),
	}
}

var _ ports.ShoppingRepository = (*ShoppingRepository)(nil)

// Load reads the whole shopping list
func (r *ShoppingRepository) Load(ctx context.Context) (entities.ShoppingList, error) {
	return r.store.Load(ctx)
}

// Save overwrites the shopping list file
func (r *ShoppingRepository) Save(ctx context.Context, list entities.ShoppingList) error {
	return r.store.Save(ctx, list)
}

// Update runs one read-modify-write cycle
func (r *ShoppingRepository) Update(ctx context.Context, fn func(list *entities.ShoppingList) error) error {
	return r.store.Update(ctx, func(list entities.ShoppingList) (entities.ShoppingList, error) {
		if err := fn(&list); err != nil {
			return nil, err
		}
		return list, nil
	})
}

// Path returns the shopping list file path
func (r *ShoppingRepository) Path() string {
	return r.store.Path()
}

// Exists reports entities.ErrDatabaseNotFound when the file is absent
func (r *ShoppingRepository) Exists() error {
	return r.store.Exists()
}

// Init creates an empty shopping list when the file does not exist
func (r *ShoppingRepository) Init(ctx context.Context) (bool, error) {
	return r.store.Init(ctx)
}
