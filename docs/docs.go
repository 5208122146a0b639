// Package docs registers the swagger document served at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/articles": {
            "get": {
                "description": "記事を取得します。例: /api/articles?sort=timestamp desc,title&offset=0&limit=10",
                "produces": ["application/json", "application/xml"],
                "tags": ["articles"],
                "summary": "記事一覧取得（ソート・オフセット・件数指定対応）",
                "parameters": [
                    {"type": "string", "description": "ソート条件 (id, title, body, timestamp)", "name": "sort", "in": "query"},
                    {"minimum": 0, "type": "integer", "description": "スキップする件数", "name": "offset", "in": "query"},
                    {"minimum": 0, "type": "integer", "description": "返す最大件数", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "記事一覧",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/article.DTO"}},
                        "headers": {"X-Total-Count": {"type": "integer", "description": "保存されている記事の総数"}}
                    },
                    "400": {"description": "Invalid query parameters or sort parameter", "schema": {"type": "string"}},
                    "500": {"description": "サーバーエラー", "schema": {"type": "string"}}
                }
            },
            "post": {
                "security": [{"SuperToken": []}],
                "description": "新しい記事を作成します。timestamp はサーバー側で設定されます。",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/xml"],
                "tags": ["articles"],
                "summary": "記事作成",
                "parameters": [
                    {"description": "記事情報", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/article.UpdateDTO"}}
                ],
                "responses": {
                    "201": {
                        "description": "作成された記事",
                        "schema": {"$ref": "#/definitions/article.DTO"},
                        "headers": {"Location": {"type": "string", "description": "作成された記事のURL"}}
                    },
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/respond.Problem"}},
                    "401": {"description": "Authentication required - missing or invalid SuperToken header", "schema": {"type": "string"}},
                    "500": {"description": "サーバーエラー", "schema": {"type": "string"}}
                }
            }
        },
        "/api/articles/{id}": {
            "get": {
                "description": "指定されたIDの記事を取得します",
                "produces": ["application/json", "application/xml"],
                "tags": ["articles"],
                "summary": "記事取得",
                "parameters": [
                    {"type": "integer", "description": "記事ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "記事", "schema": {"$ref": "#/definitions/article.DTO"}},
                    "400": {"description": "Bad request - invalid article ID", "schema": {"type": "string"}},
                    "404": {"description": "Not found - article not found", "schema": {"type": "string"}},
                    "500": {"description": "サーバーエラー", "schema": {"type": "string"}}
                }
            },
            "put": {
                "security": [{"SuperToken": []}],
                "description": "記事の title と body を置き換えます",
                "consumes": ["application/json"],
                "tags": ["articles"],
                "summary": "記事更新",
                "parameters": [
                    {"type": "integer", "description": "記事ID", "name": "id", "in": "path", "required": true},
                    {"description": "更新内容", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/article.UpdateDTO"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/respond.Problem"}},
                    "401": {"description": "Authentication required - missing or invalid SuperToken header", "schema": {"type": "string"}},
                    "404": {"description": "Not found - article not found", "schema": {"type": "string"}},
                    "500": {"description": "サーバーエラー", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "security": [{"SuperToken": []}],
                "description": "記事を削除します",
                "tags": ["articles"],
                "summary": "記事削除",
                "parameters": [
                    {"type": "integer", "description": "記事ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad request - invalid article ID", "schema": {"type": "string"}},
                    "401": {"description": "Authentication required - missing or invalid SuperToken header", "schema": {"type": "string"}},
                    "404": {"description": "Not found - article not found", "schema": {"type": "string"}},
                    "500": {"description": "サーバーエラー", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "security": [{"SuperToken": []}],
                "description": "RFC 6902 JSON Patch を記事の title/body に適用します。例: [{\"op\":\"replace\",\"path\":\"/title\",\"value\":\"new\"}]",
                "consumes": ["application/json-patch+json", "application/json"],
                "tags": ["articles"],
                "summary": "記事部分更新",
                "parameters": [
                    {"type": "integer", "description": "記事ID", "name": "id", "in": "path", "required": true},
                    {"description": "JSON Patch ドキュメント", "name": "patch", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "object"}}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Missing patch, invalid patch or validation failed", "schema": {"$ref": "#/definitions/respond.Problem"}},
                    "401": {"description": "Authentication required - missing or invalid SuperToken header", "schema": {"type": "string"}},
                    "404": {"description": "Not found - article not found", "schema": {"type": "string"}},
                    "500": {"description": "サーバーエラー", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "article.DTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "article.UpdateDTO": {
            "type": "object",
            "required": ["title", "body"],
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "body": {"type": "string"}
            }
        },
        "respond.Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "SuperToken": {
            "description": "共有シークレットをヘッダーにそのまま指定してください。",
            "type": "apiKey",
            "name": "SuperToken",
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
	Title:            "Simple CMS API",
	Description:      "記事 (Article) の CRUD を提供する REST API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
