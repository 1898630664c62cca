package repository

import (
	"context"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/ports"
)

// CatalogRepository implements ports.CatalogRepository on a JSON file
type CatalogRepository struct {
	store *DocumentStore[*entities.CatalogDocument]
}

// NewCatalogRepository creates a new catalog repository. A missing or
// malformed file is an error.
func NewCatalogRepository(opts StoreOptions) *CatalogRepository {
	opts.Service = entities.ServiceCatalog
	opts.Policy = PolicyStrict
	return &CatalogRepository{
		store: NewDocumentStore(opts, entities.NewCatalogDocument, func(doc *entities.CatalogDocument) int {
			return len(doc.Items)
		}),
	}
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// Load reads the whole catalog
func (r *CatalogRepository) Load(ctx context.Context) (*entities.CatalogDocument, error) {
	return r.store.Load(ctx)
}

// Save overwrites the catalog file
func (r *CatalogRepository) Save(ctx context.Context, doc *entities.CatalogDocument) error {
	return r.store.Save(ctx, doc)
}

// Update runs one read-modify-write cycle
func (r *CatalogRepository) Update(ctx context.Context, fn func(doc *entities.CatalogDocument) error) error {
	return r.store.Update(ctx, func(doc *entities.CatalogDocument) (*entities.CatalogDocument, error) {
		if err := fn(doc); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

// Path returns the catalog file path
func (r *CatalogRepository) Path() string {
	return r.store.Path()
}

// Exists reports entities.ErrDatabaseNotFound when the file is absent
func (r *CatalogRepository) Exists() error {
	return r.store.Exists()
}

// Init creates an empty catalog when the file does not exist
func (r *CatalogRepository) Init(ctx context.Context) (bool, error) {
	return r.store.Init(ctx)
}
