// Package docs registra la definición OpenAPI servida en /swagger.
// Regenerar con: swag init -g cmd/cowcatalog/main.go
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
        "/cows": {
            "get": {
                "description": "Lista las vacas del catálogo (más recientes primero) aplicando los filtros guardados.",
                "produces": ["application/json"],
                "tags": ["cows"],
                "summary": "Listar vacas",
                "parameters": [
                    {"type": "string", "description": "Búsqueda por ear tag", "name": "q", "in": "query"},
                    {"type": "string", "description": "Active, In Treatment, Deceased o all", "name": "status", "in": "query"},
                    {"type": "string", "description": "Corral exacto", "name": "pen", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cows.cowListItem"}}},
                    "400": {"description": "status inválido", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Da de alta una vaca.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cows"],
                "summary": "Registrar vaca",
                "parameters": [
                    {"description": "Datos de la vaca", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cows.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cows.Cow"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/cows.validationErrorResponse"}}
                }
            }
        },
        "/cows/{cowID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cows"],
                "summary": "Detalle de vaca",
                "parameters": [{"type": "string", "description": "ID de la vaca", "name": "cowID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cows.cowDetailResponse"}},
                    "404": {"description": "cow not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cows"],
                "summary": "Reemplazar vaca",
                "parameters": [
                    {"type": "string", "description": "ID de la vaca", "name": "cowID", "in": "path", "required": true},
                    {"description": "Registro completo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cows.Cow"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cows.Cow"}},
                    "404": {"description": "cow not found", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/cows.validationErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cows"],
                "summary": "Modificar vaca (JSON merge patch)",
                "parameters": [
                    {"type": "string", "description": "ID de la vaca", "name": "cowID", "in": "path", "required": true},
                    {"description": "Merge patch", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cows.Cow"}},
                    "404": {"description": "cow not found", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/cows.validationErrorResponse"}}
                }
            }
        },
        "/pens": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cows"],
                "summary": "Listar corrales",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        },
        "/filters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["filters"],
                "summary": "Obtener filtros",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cows.Filters"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["filters"],
                "summary": "Guardar filtros",
                "parameters": [{"description": "Filtros", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cows.Filters"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cows.Filters"}},
                    "400": {"description": "invalid json / status inválido", "schema": {"type": "string"}}
                }
            }
        },
        "/catalog": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Borrar catálogo",
                "parameters": [{"type": "boolean", "description": "Debe ser true", "name": "confirm", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cows.resetResponse"}},
                    "400": {"description": "confirm=true requerido", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "cows.CowEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["created", "weight_check", "treatment", "pen_move", "death"]},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "weight": {"type": "number"},
                "fromPen": {"type": "string"},
                "toPen": {"type": "string"}
            }
        },
        "cows.Cow": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "earTag": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female"]},
                "pen": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "In Treatment", "Deceased"]},
                "weight": {"type": "number"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/cows.CowEvent"}},
                "createdAt": {"type": "string"}
            }
        },
        "cows.RegisterInput": {
            "type": "object",
            "required": ["earTag", "pen", "sex"],
            "properties": {
                "earTag": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female"]},
                "pen": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "In Treatment", "Deceased"]},
                "weight": {"type": "number"}
            }
        },
        "cows.Filters": {
            "type": "object",
            "properties": {
                "searchQuery": {"type": "string"},
                "statusFilter": {"type": "string"},
                "penFilter": {"type": "string"}
            }
        },
        "cows.cowListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "earTag": {"type": "string"},
                "sex": {"type": "string"},
                "pen": {"type": "string"},
                "status": {"type": "string"},
                "weight": {"type": "number"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/cows.CowEvent"}},
                "createdAt": {"type": "string"},
                "lastEventLabel": {"type": "string"},
                "lastEventDate": {"type": "string"}
            }
        },
        "cows.timelineItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "label": {"type": "string"},
                "when": {"type": "string"}
            }
        },
        "cows.cowDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "earTag": {"type": "string"},
                "sex": {"type": "string"},
                "pen": {"type": "string"},
                "status": {"type": "string"},
                "weight": {"type": "number"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/cows.CowEvent"}},
                "createdAt": {"type": "string"},
                "lastEventLabel": {"type": "string"},
                "lastEventDate": {"type": "string"},
                "latestWeight": {"type": "number"},
                "dailyWeightGain": {"type": "number"},
                "timeline": {"type": "array", "items": {"$ref": "#/definitions/cows.timelineItem"}}
            }
        },
        "cows.validationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "cows.resetResponse": {
            "type": "object",
            "properties": {"cleared": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Cow Catalog API",
	Description:      "Catálogo de ganado: alta, historial de eventos, filtros y derivados (ADG, último evento).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
