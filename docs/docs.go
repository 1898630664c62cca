// Package docs registers the Swagger documents served under /docs/ by each service.
package docs

import "github.com/swaggo/swag"

const itemSchema = `{
            "type": "object",
            "required": ["name", "price"],
            "properties": {
                "name": {"type": "string", "example": "Laptop"},
                "description": {"type": "string", "x-nullable": true, "example": "14 inch, 16GB"},
                "price": {"type": "number", "example": 999.99}
            }
        }`

const catalogTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/": {
            "get": {
                "tags": ["catalog"],
                "summary": "Service banner",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Welcome message and database path"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["catalog"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Status and item count"},
                    "500": {"description": "Database unreadable"}
                }
            }
        },
        "/items": {
            "get": {
                "tags": ["catalog"],
                "summary": "List all items",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Items keyed by id"}}
            }
        },
        "/items/": {
            "post": {
                "tags": ["catalog"],
                "summary": "Create a new item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/Item"}}
                ],
                "responses": {
                    "200": {"description": "Item created"},
                    "422": {"description": "Invalid item"}
                }
            }
        },
        "/items/{id}": {
            "get": {
                "tags": ["catalog"],
                "summary": "Get item by ID",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "The item", "schema": {"$ref": "#/definitions/Item"}},
                    "404": {"description": "Item not found"}
                }
            },
            "put": {
                "tags": ["catalog"],
                "summary": "Replace an item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/Item"}}
                ],
                "responses": {
                    "200": {"description": "Item updated"},
                    "404": {"description": "Item not found"},
                    "422": {"description": "Invalid item"}
                }
            },
            "delete": {
                "tags": ["catalog"],
                "summary": "Delete an item",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Item deleted"},
                    "404": {"description": "Item not found"}
                }
            }
        }
    },
    "definitions": {
        "Item": ` + itemSchema + `
    }
}`

const shoppingTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/health": {
            "get": {
                "tags": ["shopping"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Status and item count"}}
            }
        },
        "/items": {
            "get": {
                "tags": ["shopping"],
                "summary": "List the shopping list",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "All entries", "schema": {"type": "array", "items": {"$ref": "#/definitions/ShoppingItem"}}}
                }
            }
        },
        "/items/": {
            "post": {
                "tags": ["shopping"],
                "summary": "Add an entry",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "name", "type": "string", "required": true},
                    {"in": "query", "name": "quantity", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Entry created"},
                    "422": {"description": "Missing or invalid parameters"}
                }
            }
        }
    },
    "definitions": {
        "ShoppingItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "milk"},
                "quantity": {"type": "integer", "example": 2}
            }
        }
    }
}`

// CatalogInfo describes the catalog service API
var CatalogInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Items API",
	Description:      "CRUD over the catalog JSON database",
	InfoInstanceName: "catalog",
	SwaggerTemplate:  catalogTemplate,
}

// ShoppingInfo describes the shopping list service API
var ShoppingInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Shopping List API",
	Description:      "Shopping list kept in a JSON file",
	InfoInstanceName: "shopping",
	SwaggerTemplate:  shoppingTemplate,
}

func init() {
	swag.Register(CatalogInfo.InstanceName(), CatalogInfo)
	swag.Register(ShoppingInfo.InstanceName(), ShoppingInfo)
}
