// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/prestamos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Prestamos"],
                "summary": "List prestamos",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Prestamos"],
                "summary": "Create prestamo",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreatePrestamoInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/prestamos/detalles/{id}/devolver": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Prestamos"],
                "summary": "Return prestamo detalle",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/services.ReturnDetalleInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "meta": {},
                "error": {"type": "string"}
            }
        },
        "services.CreateDetalleInput": {
            "type": "object",
            "properties": {
                "material_bibliografico_id": {"type": "integer"},
                "material_fisico_id": {"type": "integer"},
                "material_virtual_id": {"type": "integer"},
                "tipo": {"type": "string", "enum": ["FISICO", "VIRTUAL"]}
            }
        },
        "services.CreatePrestamoInput": {
            "type": "object",
            "properties": {
                "lector_id": {"type": "integer"},
                "observacion": {"type": "string"},
                "detalles": {"type": "array", "items": {"$ref": "#/definitions/services.CreateDetalleInput"}}
            }
        },
        "services.ReturnDetalleInput": {
            "type": "object",
            "properties": {
                "estado_final": {"type": "string", "enum": ["disponible", "dañado", "perdido"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Biblioteca CEDIS API",
	Description:      "University library loans and catalog API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
