package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ATAM Academic Sync API",
        "description": "Classroom score reconciliation and student performance analytics",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classroom", "description": "External classroom score reconciliation"},
        {"name": "Performance", "description": "Derived student performance summaries"},
        {"name": "Resources", "description": "Learning resource harvest intake"}
    ],
    "paths": {
        "/classroom/sync-scores": {
            "post": {
                "tags": ["Classroom"],
                "summary": "Reconcile classroom scores into the gradebook",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SyncScoresInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Reauthorization required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course or coursework not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/performance": {
            "get": {
                "tags": ["Performance"],
                "summary": "Performance summary for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/performance/export": {
            "get": {
                "tags": ["Performance"],
                "summary": "Download a performance summary as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/resources/harvest": {
            "post": {
                "tags": ["Resources"],
                "summary": "Submit harvested learning resources",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HarvestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SyncScoresInput": {
            "type": "object",
            "required": ["class_id", "component_id", "course_id", "coursework_id"],
            "properties": {
                "class_id": {"type": "integer"},
                "component_id": {"type": "integer"},
                "course_id": {"type": "string"},
                "coursework_id": {"type": "string"},
                "grade_period": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}}
            }
        },
        "HarvestRequest": {
            "type": "object",
            "properties": {
                "resources": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ResourceInput"}
                }
            }
        },
        "ResourceInput": {
            "type": "object",
            "required": ["title", "type", "url"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["video", "article", "book", "course", "other"]},
                "source": {"type": "string"},
                "url": {"type": "string"},
                "author": {"type": "string"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "requires_reauth": {"type": "boolean"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
