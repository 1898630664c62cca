package repository

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/config"
	"github.com/itemkeeper/core/internal/ports"
)

// SequentialIDs assigns count+1. Ids are reused after a delete.
type SequentialIDs struct{}

// NextCatalogID returns len(items)+1 as a string
func (SequentialIDs) NextCatalogID(items map[string]entities.Item) string {
	return strconv.Itoa(len(items) + 1)
}

// NextShoppingID returns len(list)+1
func (SequentialIDs) NextShoppingID(list entities.ShoppingList) int {
	return len(list) + 1
}

// UniqueIDs never hands out an id that is already taken.
type UniqueIDs struct{}

// NextCatalogID returns a random UUID
func (UniqueIDs) NextCatalogID(items map[string]entities.Item) string {
	for {
		id := uuid.NewString()
		if _, taken := items[id]; !taken {
			return id
		}
	}
}

// NextShoppingID returns the highest id plus one
func (UniqueIDs) NextShoppingID(list entities.ShoppingList) int {
	next := 1
	for _, item := range list {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}

// NewIDGenerator returns the generator for a configured strategy
func NewIDGenerator(strategy string) ports.IDGenerator {
	if strategy == config.IDStrategyUnique {
		return UniqueIDs{}
	}
	return SequentialIDs{}
}
