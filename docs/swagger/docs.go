// Package swagger holds the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/start.go -o docs/swagger`.
package swagger

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
        "/plane": {
            "get": {
                "description": "Returns the plane name, the resource it was configured from and the resources exposed for inspection.",
                "produces": ["application/json"],
                "tags": ["plane"],
                "summary": "Plane Info",
                "responses": {
                    "200": {
                        "description": "Plane",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/plane/resources/{name}": {
            "get": {
                "description": "Loads a resource (by alias or name) through the resource search path and returns the decoded value as JSON, or as Recon with ?as=recon.",
                "produces": ["application/json"],
                "tags": ["plane"],
                "summary": "Inspect Resource",
                "parameters": [
                    {"type": "string", "description": "Resource alias or name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Decoding format (json or recon); inferred from the extension when omitted", "name": "format", "in": "query"},
                    {"type": "string", "description": "Output notation (json or recon)", "name": "as", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Decoded value", "schema": {"type": "object"}},
                    "400": {"description": "Unknown format", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Resource not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Resource could not be decoded", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ui/{path}": {
            "get": {
                "description": "Serves a file of the plane UI from the resource search path. /ui/ serves ui/index.html.",
                "produces": ["text/html"],
                "tags": ["ui"],
                "summary": "UI Asset",
                "parameters": [
                    {"type": "string", "description": "Asset path", "name": "path", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Asset", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cellular API",
	Description:      "Cellular plane configuration and resource inspection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
