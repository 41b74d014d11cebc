// Package docs registers the swagger document served at /v1/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["ops"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/tickets": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Tickets"], "summary": "List tickets", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/tickets/batch": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["Tickets"], "summary": "Fetch tickets by id", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/tickets/{ticketID}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["Tickets"], "summary": "Get a ticket", "parameters": [{"type": "string", "name": "ticketID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["Tickets"], "summary": "Delete a ticket", "parameters": [{"type": "string", "name": "ticketID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/dashboard/summary": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Dashboard"], "summary": "Dashboard summary", "responses": {"200": {"description": "OK"}}}},
        "/dashboard/statuses": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Dashboard"], "summary": "Status counts", "responses": {"200": {"description": "OK"}}}},
        "/dashboard/daily": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Dashboard"], "summary": "Daily series", "responses": {"200": {"description": "OK"}}}},
        "/exports/tickets.xlsx": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Exports"], "summary": "Export tickets as xlsx", "responses": {"200": {"description": "OK"}}}},
        "/exports/tickets.pdf": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Exports"], "summary": "Export tickets as pdf", "responses": {"200": {"description": "OK"}}}},
        "/lookups/activities": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Lookups"], "summary": "Resolve activities", "responses": {"200": {"description": "OK"}}}},
        "/lookups/providers": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Lookups"], "summary": "Resolve providers", "responses": {"200": {"description": "OK"}}}},
        "/lookups/employees": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Lookups"], "summary": "All employees", "responses": {"200": {"description": "OK"}}}},
        "/lookups/companies": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["Lookups"], "summary": "All companies", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Tour Dashboard API",
	Description:      "Ticket monitoring, aggregation and exports for tour operations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
