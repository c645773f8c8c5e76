// Package docs registers the OpenAPI description of the thoughts API with swag.
// It mirrors the handler annotations and is maintained by hand.
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
        "/": {
            "get": {
                "produces": ["text/plain"],
                "summary": "Greeting",
                "responses": {
                    "200": {"description": "happy thoughts", "schema": {"type": "string"}}
                }
            }
        },
        "/thoughts": {
            "get": {
                "description": "Up to 20 thoughts, newest first.",
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Most recent thoughts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/http.Envelope"},
                                {"type": "object", "properties": {"response": {"type": "array", "items": {"$ref": "#/definitions/domain.Thought"}}}}
                            ]
                        }
                    },
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Post a thought",
                "parameters": [
                    {
                        "description": "message, 5..140 characters",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.createThoughtReq"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/http.Envelope"},
                                {"type": "object", "properties": {"response": {"$ref": "#/definitions/domain.Thought"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/thoughts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Thought by id",
                "parameters": [
                    {"type": "string", "description": "thought id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/http.Envelope"},
                                {"type": "object", "properties": {"response": {"$ref": "#/definitions/domain.Thought"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Delete a thought",
                "parameters": [
                    {"type": "string", "description": "thought id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        },
        "/thoughts/{id}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Add one heart",
                "parameters": [
                    {"type": "string", "description": "thought id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/http.Envelope"},
                                {"type": "object", "properties": {"response": {"$ref": "#/definitions/domain.Thought"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Envelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Thought": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "hearts": {"type": "integer", "minimum": 0},
                "message": {"type": "string", "maxLength": 140, "minLength": 5}
            }
        },
        "http.Envelope": {
            "type": "object",
            "properties": {
                "error": {},
                "message": {"type": "string"},
                "response": {},
                "success": {"type": "boolean"}
            }
        },
        "http.createThoughtReq": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Feeling grateful for sunny mornings"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Happy Thoughts API",
	Description:      "Post short thoughts, list the latest ones and send hearts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
