package repository

import (
	"testing"

	"github.com/google/uuid"

	"github.com/itemkeeper/core/internal/domain/entities"
)

func TestSequentialIDs(t *testing.T) {
	ids := SequentialIDs{}
	items := map[string]entities.Item{"1": {}, "3": {}}
	if got := ids.NextCatalogID(items); got != "3" {
		t.Fatalf("expected count+1 to reuse \"3\", got %q", got)
	}
	list := entities.ShoppingList{{ID: 1}, {ID: 5}}
	if got := ids.NextShoppingID(list); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := ids.NextShoppingID(nil); got != 1 {
		t.Fatalf("expected 1 for empty list, got %d", got)
	}
}

func TestUniqueIDs(t *testing.T) {
	ids := UniqueIDs{}
	id := ids.NextCatalogID(map[string]entities.Item{"1": {}})
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid, got %q", id)
	}
	list := entities.ShoppingList{{ID: 1}, {ID: 5}}
	if got := ids.NextShoppingID(list); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestNewIDGenerator(t *testing.T) {
	if _, ok := NewIDGenerator("unique").(UniqueIDs); !ok {
		t.Fatalf("expected UniqueIDs")
	}
	if _, ok := NewIDGenerator("sequential").(SequentialIDs); !ok {
		t.Fatalf("expected SequentialIDs")
	}
}
