package services

import (
	"context"
	"fmt"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/logger"
	"github.com/itemkeeper/core/internal/ports"
)

// ShoppingService handles shopping list operations
type ShoppingService struct {
	repo   ports.ShoppingRepository
	ids    ports.IDGenerator
	logger *logger.Logger
}

// NewShoppingService creates a new shopping list service
func NewShoppingService(repo ports.ShoppingRepository, ids ports.IDGenerator, logger *logger.Logger) *ShoppingService {
	return &ShoppingService{
		repo:   repo,
		ids:    ids,
		logger: logger.WithComponent("shopping_service"),
	}
}

var _ ports.ShoppingService = (*ShoppingService)(nil)

// CountItems returns the number of list entries
func (s *ShoppingService) CountItems(ctx context.Context) (int, error) {
	list, err := s.ListItems(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ListItems returns the whole list
func (s *ShoppingService) ListItems(ctx context.Context) (entities.ShoppingList, error) {
	list, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return list, nil
}

// CreateItem appends a new entry with the next id
func (s *ShoppingService) CreateItem(ctx context.Context, req ports.ShoppingItemRequest) (*entities.ShoppingItem, error) {
	var item entities.ShoppingItem

	err := s.repo.Update(ctx, func(list *entities.ShoppingList) error {
		item = entities.ShoppingItem{
			ID: s.ids.NextShoppingID(*list),
		}
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		*list = append(*list, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}

	s.logger.Infow("Shopping item created successfully", "item_id", item.ID, "name", item.Name)

	return &item, nil
}
