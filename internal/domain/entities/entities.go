package entities

import (
	"encoding/json"
	"errors"
)

// Common errors
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrDatabaseNotFound  = errors.New("database file not found")
	ErrMalformedDocument = errors.New("database file is not valid JSON")
	ErrDocumentMismatch  = errors.New("database file does not match the record schema")
)

// Service names
const (
	ServiceCatalog  = "catalog"
	ServiceShopping = "shopping"
)

// Item is a catalog record stored under its string id in the catalog document.
// Fields other than name, description and price are kept in Extra.
type Item struct {
	Name        string                     `json:"name"`
	Description *string                    `json:"description"`
	Price       float64                    `json:"price"`
	Extra       map[string]json.RawMessage `json:"-"`
}

type itemFields Item

var itemKeys = []string{"name", "description", "price"}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (i *Item) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*itemFields)(i)); err != nil {
		return err
	}
	extra, err := extraKeys(data, itemKeys)
	if err != nil {
		return err
	}
	i.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields together with Extra.
func (i Item) MarshalJSON() ([]byte, error) {
	if len(i.Extra) == 0 {
		return json.Marshal(itemFields(i))
	}
	return withExtra(i.Extra, map[string]interface{}{
		"name":        i.Name,
		"description": i.Description,
		"price":       i.Price,
	})
}

// CatalogDocument is the full catalog database file.
//
// Only the "items" key is interpreted; any other top-level keys are kept
// verbatim so that a load followed by a save leaves them untouched.
type CatalogDocument struct {
	Items map[string]Item
	Extra map[string]json.RawMessage
}

const catalogItemsKey = "items"

// NewCatalogDocument returns an empty catalog document.
func NewCatalogDocument() *CatalogDocument {
	return &CatalogDocument{Items: map[string]Item{}}
}

// UnmarshalJSON decodes the document, treating a missing or null "items" key as empty.
func (d *CatalogDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Items = map[string]Item{}
	d.Extra = nil

	for key, value := range raw {
		if key == catalogItemsKey {
			var items map[string]Item
			if err := json.Unmarshal(value, &items); err != nil {
				return err
			}
			if items != nil {
				d.Items = items
			}
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]json.RawMessage)
		}
		d.Extra[key] = value
	}

	return nil
}

// MarshalJSON encodes the items together with any preserved extra keys.
func (d CatalogDocument) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Extra)+1)
	for key, value := range d.Extra {
		out[key] = value
	}

	items := d.Items
	if items == nil {
		items = map[string]Item{}
	}
	out[catalogItemsKey] = items

	return json.Marshal(out)
}

// ShoppingItem is one entry of the shopping list. Fields other than id, name
// and quantity are kept in Extra.
type ShoppingItem struct {
	ID       int                        `json:"id"`
	Name     string                     `json:"name"`
	Quantity int                        `json:"quantity"`
	Extra    map[string]json.RawMessage `json:"-"`
}

type shoppingItemFields ShoppingItem

var shoppingItemKeys = []string{"id", "name", "quantity"}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (i *ShoppingItem) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*shoppingItemFields)(i)); err != nil {
		return err
	}
	extra, err := extraKeys(data, shoppingItemKeys)
	if err != nil {
		return err
	}
	i.Extra = extra
	return nil
}

// MarshalJSON encodes the known fields together with Extra.
func (i ShoppingItem) MarshalJSON() ([]byte, error) {
	if len(i.Extra) == 0 {
		return json.Marshal(shoppingItemFields(i))
	}
	return withExtra(i.Extra, map[string]interface{}{
		"id":       i.ID,
		"name":     i.Name,
		"quantity": i.Quantity,
	})
}

// ShoppingList is the full shopping list database file.
type ShoppingList []ShoppingItem

// extraKeys returns the members of the JSON object data not named in known,
// or nil when there are none.
func extraKeys(data []byte, known []string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(raw, key)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func withExtra(extra map[string]json.RawMessage, fields map[string]interface{}) ([]byte, error) {
	out := make(map[string]interface{}, len(extra)+len(fields))
	for key, value := range extra {
		out[key] = value
	}
	for key, value := range fields {
		out[key] = value
	}
	return json.Marshal(out)
}
