// Package docs registers the OpenAPI document for the handlers in
// internal/adapters/handler/http. It is maintained by hand alongside their
// swag annotations; response bodies are described as plain objects.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/dashboard/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Reconciled metric cards",
                "parameters": [
                    {"type": "string", "description": "comma separated store ids, all stores when empty", "name": "store_ids", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD, defaults to 6 days before end_date", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Summary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/dashboard/series": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Bucketed time series with period-over-period growth",
                "parameters": [
                    {"type": "string", "description": "sales, orders, visitors, conversion_rate or basket_size", "name": "metric", "in": "query", "required": true},
                    {"type": "string", "description": "daily, weekly, monthly or quarterly (default daily)", "name": "granularity", "in": "query"},
                    {"type": "string", "description": "comma separated store ids", "name": "store_ids", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SeriesResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/dashboard/weekday": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Totals and averages per day of week",
                "parameters": [
                    {"type": "string", "description": "metric name", "name": "metric", "in": "query", "required": true},
                    {"type": "string", "description": "comma separated store ids", "name": "store_ids", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WeekdayResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/dashboard/quarters": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Quarterly sales, orders and basket size",
                "parameters": [
                    {"type": "integer", "description": "calendar year, defaults to the current one", "name": "year", "in": "query"},
                    {"type": "string", "description": "comma separated store ids", "name": "store_ids", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.QuarterResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/dashboard/yoy": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Monthly sales compared with the previous year",
                "parameters": [
                    {"type": "integer", "description": "calendar year", "name": "year", "in": "query"},
                    {"type": "string", "description": "comma separated store ids", "name": "store_ids", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.YearOverYearResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "List connected stores",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Store"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "Connect a marketplace store",
                "parameters": [
                    {"description": "store", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.connectStoreRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Store"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/stores/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stores"],
                "summary": "Get one store",
                "parameters": [
                    {"type": "string", "description": "store id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Store"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["stores"],
                "summary": "Disconnect a store and drop its cached metrics",
                "parameters": [
                    {"type": "string", "description": "store id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Summary": {"type": "object"},
        "domain.SeriesResult": {"type": "object"},
        "domain.WeekdayResult": {"type": "object"},
        "domain.QuarterResult": {"type": "object"},
        "domain.YearOverYearResult": {"type": "object"},
        "domain.Store": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "merchant_id": {"type": "string"},
                "marketplace_id": {"type": "string"},
                "name": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "http.connectStoreRequest": {
            "type": "object",
            "required": ["marketplace_id", "name"],
            "properties": {
                "marketplace_id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "http.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Seller Metrics API",
	Description:      "Multi-store marketplace analytics: reconciled cards, bucketed series, weekday and quarter rollups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
