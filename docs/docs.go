// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Home view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HomeView"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}}
                }
            }
        },
        "/login": {
            "get": {
                "tags": ["Auth"],
                "summary": "Redirect to Steam sign-in",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/steam/callback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Steam OpenID return point",
                "responses": {
                    "200": {"description": "authentication failed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "302": {"description": "Found"}
                }
            }
        },
        "/logout": {
            "get": {
                "tags": ["Auth"],
                "summary": "Clear the session",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/api/games": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Games"],
                "summary": "Owned games",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.GamesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/games/exclude": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Games"],
                "summary": "Exclude a game from recommendations",
                "parameters": [{"description": "Steam app id", "name": "appid", "in": "body", "required": true, "schema": {"type": "integer"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.GameActionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/games/include": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Games"],
                "summary": "Include a previously excluded game",
                "parameters": [{"description": "Steam app id", "name": "appid", "in": "body", "required": true, "schema": {"type": "integer"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.GameActionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/games/refresh": {
            "post": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Games"],
                "summary": "Refetch the library and clear enrichment caches",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StatusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/recommendations": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend games",
                "parameters": [
                    {"type": "string", "description": "What the player is in the mood for", "name": "user_prompt", "in": "formData", "required": true},
                    {"type": "string", "description": "Model override", "name": "custom_model", "in": "formData"},
                    {"type": "string", "description": "System prompt override", "name": "custom_prompt", "in": "formData"},
                    {"type": "integer", "description": "Skip games played longer than this", "name": "playtime_threshold_hours", "in": "formData"},
                    {"type": "boolean", "description": "Skip games played past their main story time", "name": "exclude_by_hltb", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RecommendationsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/recommendations/surprise-me": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend a single game",
                "parameters": [
                    {"type": "string", "default": "Surprise me!", "description": "Prompt", "name": "user_prompt", "in": "formData"},
                    {"type": "string", "description": "Model override", "name": "custom_model", "in": "formData"},
                    {"type": "string", "description": "System prompt override", "name": "custom_prompt", "in": "formData"},
                    {"type": "integer", "description": "Skip games played longer than this", "name": "playtime_threshold_hours", "in": "formData"},
                    {"type": "boolean", "description": "Skip games played past their main story time", "name": "exclude_by_hltb", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SurpriseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.APIResponse"}}
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
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {
                    "type": "object",
                    "properties": {
                        "request_id": {"type": "string"},
                        "timestamp": {"type": "string"}
                    }
                }
            }
        },
        "api.HomeView": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/auth.Player"},
                "default_model": {"type": "string"},
                "default_prompt": {"type": "string"},
                "last_refreshed": {"type": "string"}
            }
        },
        "auth.Player": {
            "type": "object",
            "properties": {
                "steam_id": {"type": "string"},
                "persona_name": {"type": "string"}
            }
        },
        "api.GamesResponse": {
            "type": "object",
            "properties": {
                "games": {"type": "array", "items": {"$ref": "#/definitions/models.LibraryGame"}}
            }
        },
        "models.LibraryGame": {
            "type": "object",
            "properties": {
                "appid": {"type": "integer"},
                "name": {"type": "string"},
                "playtime_forever": {"type": "integer"},
                "is_excluded": {"type": "boolean"}
            }
        },
        "api.GameActionResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "appid": {"type": "integer"},
                "action": {"type": "string"}
            }
        },
        "api.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.Metrics": {
            "type": "object",
            "properties": {
                "response_time": {"type": "number"},
                "usage": {"type": "object"}
            }
        },
        "api.RecommendationsResponse": {
            "type": "object",
            "properties": {
                "recommendations": {"type": "array", "items": {"type": "object"}},
                "metrics": {"$ref": "#/definitions/models.Metrics"}
            }
        },
        "api.SurpriseResponse": {
            "type": "object",
            "properties": {
                "recommendation": {"type": "object"},
                "metrics": {"$ref": "#/definitions/models.Metrics"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "playnext_session", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Playnext API",
	Description:      "Personalized \"what should I play next\" recommendations for a Steam library.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
