// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

// Package docs holds the OpenAPI document served at /swagger. Regenerate
// with `swag init -g cmd/server/docs.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/lineup/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/listings": {
            "get": {
                "description": "Fans the query out to every selected provider, normalizes and merges the pages. Failed providers contribute placeholder items and a diagnostic.",
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "Get an aggregated listing",
                "parameters": [
                    {"enum": ["models", "videos"], "type": "string", "description": "Content kind", "name": "kind", "in": "query", "required": true},
                    {"type": "string", "description": "Provider IDs, repeated or comma-separated; all when omitted", "name": "provider", "in": "query"},
                    {"type": "string", "description": "Canonical category", "name": "category", "in": "query"},
                    {"type": "string", "description": "Canonical subcategory", "name": "subcategory", "in": "query"},
                    {"type": "string", "example": "blonde,couple", "description": "Comma-separated canonical tags", "name": "tags", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 24, "description": "Items per page", "name": "limit", "in": "query"},
                    {"minimum": 0, "type": "integer", "default": 0, "description": "Global offset", "name": "offset", "in": "query"},
                    {"enum": ["popular", "newest", "random"], "type": "string", "description": "Sort order", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Listing; success is false when every provider failed", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid query or unknown provider", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Listings"],
                "summary": "Get an aggregated listing from a JSON query",
                "parameters": [
                    {"description": "Canonical listing query", "name": "query", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Query"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Malformed body or invalid query", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Providers"],
                "summary": "List registered providers",
                "parameters": [
                    {"enum": ["models", "videos"], "type": "string", "description": "Only providers serving this kind", "name": "kind", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/taxonomy/{provider}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Providers"],
                "summary": "Get a provider's filter vocabulary",
                "parameters": [
                    {"type": "string", "description": "Provider ID", "name": "provider", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown provider", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"},
                "request_id": {"type": "string"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "duration_ms": {"type": "integer"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"}
            }
        },
        "models.Query": {
            "type": "object",
            "required": ["kind"],
            "properties": {
                "providers": {"type": "array", "items": {"type": "string"}},
                "kind": {"type": "string", "enum": ["models", "videos"]},
                "category": {"type": "string"},
                "subcategory": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "filters": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "limit": {"type": "integer", "minimum": 1},
                "offset": {"type": "integer", "minimum": 0, "maximum": 100000},
                "sort": {"type": "string", "enum": ["default", "popular", "newest", "random"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Lineup API",
	Description:      "Aggregated and normalized listings from several content provider APIs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
