package services

import (
	"context"
	"fmt"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/logger"
	"github.com/itemkeeper/core/internal/ports"
)

// CatalogService handles catalog item operations
type CatalogService struct {
	repo   ports.CatalogRepository
	ids    ports.IDGenerator
	logger *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo ports.CatalogRepository, ids ports.IDGenerator, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		ids:    ids,
		logger: logger.WithComponent("catalog_service"),
	}
}

var _ ports.CatalogService = (*CatalogService)(nil)

// DatabasePath returns the path of the catalog file
func (s *CatalogService) DatabasePath() string {
	return s.repo.Path()
}

// CountItems returns the number of stored items
func (s *CatalogService) CountItems(ctx context.Context) (int, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}
	return len(doc.Items), nil
}

// ListItems returns every item keyed by id
func (s *CatalogService) ListItems(ctx context.Context) (map[string]entities.Item, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return doc.Items, nil
}

// GetItem retrieves an item by id
func (s *CatalogService) GetItem(ctx context.Context, id string) (*entities.Item, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	item, ok := doc.Items[id]
	if !ok {
		return nil, entities.ErrItemNotFound
	}

	return &item, nil
}

// CreateItem stores a new item under the next id
func (s *CatalogService) CreateItem(ctx context.Context, req ports.ItemRequest) (string, *entities.Item, error) {
	item := req.ToItem()

	var id string
	err := s.repo.Update(ctx, func(doc *entities.CatalogDocument) error {
		id = s.ids.NextCatalogID(doc.Items)
		if _, taken := doc.Items[id]; taken {
			s.logger.Warnw("Overwriting existing item with reused id", "item_id", id)
		}
		doc.Items[id] = item
		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Infow("Item created successfully", "item_id", id, "name", item.Name)

	return id, &item, nil
}

// UpdateItem replaces an existing item wholesale
func (s *CatalogService) UpdateItem(ctx context.Context, id string, req ports.ItemRequest) (*entities.Item, error) {
	item := req.ToItem()

	err := s.repo.Update(ctx, func(doc *entities.CatalogDocument) error {
		if _, ok := doc.Items[id]; !ok {
			return entities.ErrItemNotFound
		}
		doc.Items[id] = item
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", id, err)
	}

	s.logger.Infow("Item updated successfully", "item_id", id, "name", item.Name)

	return &item, nil
}

// DeleteItem removes an item and returns it
func (s *CatalogService) DeleteItem(ctx context.Context, id string) (*entities.Item, error) {
	var deleted entities.Item

	err := s.repo.Update(ctx, func(doc *entities.CatalogDocument) error {
		item, ok := doc.Items[id]
		if !ok {
			return entities.ErrItemNotFound
		}
		deleted = item
		delete(doc.Items, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete item %s: %w", id, err)
	}

	s.logger.Infow("Item deleted successfully", "item_id", id)

	return &deleted, nil
}
