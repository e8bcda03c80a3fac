// Package docs holds the OpenAPI document served at /swagger.
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
		"/api/v1/admin/tree": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Get content tree",
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.LevelTree"
							}
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/sections/save": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Create or update section",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "SaveSectionRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.SaveSectionRequest"
						}
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.SaveResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/sections/delete": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Delete section",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "DeleteRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.DeleteRequest"
						}
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.OKResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/sections/reorder": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Reorder sections",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "ReorderSectionsRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ReorderSectionsRequest"
						}
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.OKResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/lessons/save": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Create or update lesson",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "SaveLessonRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.SaveLessonRequest"
						}
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.SaveResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/lessons/delete": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Delete lesson",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "DeleteRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.DeleteRequest"
						}
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.OKResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/lessons/reorder": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Reorder lessons",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "ReorderLessonsRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ReorderLessonsRequest"
						}
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.OKResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/admin/images": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"admin"
				],
				"summary": "Upload lesson image",
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "Lesson ID",
						"name": "lesson_id",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "Image file",
						"name": "file",
						"in": "formData",
						"required": true
					}
				],
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.StoredImage"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"413": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"415": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/auth/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Admin login",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "LoginRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.LoginResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/auth/logout": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Admin logout",
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.OKResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/auth/session": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Check admin session",
				"security": [
					{
						"AdminToken": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.OKResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/levels": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reader"
				],
				"summary": "Get levels",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Level"
							}
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/levels/{level}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reader"
				],
				"summary": "Get level",
				"parameters": [
					{
						"type": "string",
						"description": "Level path, {n}-{slug}",
						"name": "level",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.LevelDetail"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/levels/{level}/{section}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reader"
				],
				"summary": "Get section",
				"parameters": [
					{
						"type": "string",
						"description": "Level path, {n}-{slug}",
						"name": "level",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Section path, {n}-{slug}",
						"name": "section",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.SectionDetail"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/v1/levels/{level}/{section}/{lesson}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"reader"
				],
				"summary": "Get lesson",
				"parameters": [
					{
						"type": "string",
						"description": "Level path, {n}-{slug}",
						"name": "level",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Section path, {n}-{slug}",
						"name": "section",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Lesson path, {n}-{slug}",
						"name": "lesson",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.LessonPage"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"models.ErrorResponse": {
			"type": "object",
			"properties": {
				"ok": {
					"type": "boolean"
				},
				"error": {
					"type": "string"
				},
				"kind": {
					"type": "string"
				}
			}
		},
		"models.OKResponse": {
			"type": "object",
			"properties": {
				"ok": {
					"type": "boolean"
				}
			}
		},
		"models.SaveResponse": {
			"type": "object",
			"properties": {
				"ok": {
					"type": "boolean"
				},
				"id": {
					"type": "integer"
				}
			}
		},
		"models.DeleteRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				}
			}
		},
		"models.Level": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"number": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				}
			}
		},
		"models.LevelDetail": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"number": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"sections": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Section"
					}
				}
			}
		},
		"models.LevelTree": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"number": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"sections": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.SectionTree"
					}
				}
			}
		},
		"models.Section": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"level_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"section_order": {
					"type": "integer"
				}
			}
		},
		"models.SectionTree": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"level_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"section_order": {
					"type": "integer"
				},
				"lessons": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Lesson"
					}
				}
			}
		},
		"models.SectionDetail": {
			"type": "object",
			"properties": {
				"level": {
					"$ref": "#/definitions/models.Level"
				},
				"section": {
					"$ref": "#/definitions/models.Section"
				},
				"lessons": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.LessonSummary"
					}
				}
			}
		},
		"models.Lesson": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"section_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"lesson_order": {
					"type": "integer"
				},
				"is_published": {
					"type": "boolean"
				},
				"content": {
					"$ref": "#/definitions/models.LessonContent"
				}
			}
		},
		"models.LessonSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"lesson_order": {
					"type": "integer"
				}
			}
		},
		"models.LessonPage": {
			"type": "object",
			"properties": {
				"level": {
					"$ref": "#/definitions/models.Level"
				},
				"section": {
					"$ref": "#/definitions/models.Section"
				},
				"lesson": {
					"$ref": "#/definitions/models.Lesson"
				},
				"prev": {
					"$ref": "#/definitions/models.LessonSummary"
				},
				"next": {
					"$ref": "#/definitions/models.LessonSummary"
				}
			}
		},
		"models.LessonContent": {
			"type": "object",
			"properties": {
				"theory_html": {
					"type": "string"
				},
				"tests": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Question"
					}
				},
				"tasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Task"
					}
				}
			}
		},
		"models.Question": {
			"type": "object",
			"properties": {
				"question": {
					"type": "string"
				},
				"answers": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"correctIndex": {
					"type": "integer"
				}
			}
		},
		"models.Task": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"text_html": {
					"type": "string"
				}
			}
		},
		"models.SaveSectionRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"level_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"section_order": {
					"type": "integer"
				}
			}
		},
		"models.SaveLessonRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"section_id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"lesson_order": {
					"type": "integer"
				},
				"is_published": {
					"type": "boolean"
				},
				"content": {
					"$ref": "#/definitions/models.LessonContent"
				}
			}
		},
		"models.ReorderSectionsRequest": {
			"type": "object",
			"properties": {
				"level_id": {
					"type": "integer"
				},
				"ids": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				}
			}
		},
		"models.ReorderLessonsRequest": {
			"type": "object",
			"properties": {
				"section_id": {
					"type": "integer"
				},
				"ids": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				}
			}
		},
		"models.StoredImage": {
			"type": "object",
			"properties": {
				"url": {
					"type": "string"
				},
				"filename": {
					"type": "string"
				}
			}
		},
		"models.LoginRequest": {
			"type": "object",
			"properties": {
				"login": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"models.LoginResponse": {
			"type": "object",
			"properties": {
				"ok": {
					"type": "boolean"
				},
				"token": {
					"type": "string"
				},
				"expires_at": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"AdminToken": {
			"description": "Type \"Bearer\" followed by a space and the admin token",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DomLearn Content API",
	Description:      "Public reader and admin authoring API for levels, sections and lessons",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
