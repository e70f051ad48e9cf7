// Cinematch - Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package docs registers the Swagger 2.0 document for the Cinematch API.
//
// The document follows the swag annotations on the internal/api handlers
// and cmd/server/docs.go. Update both together when a route changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/cinematch/issues"
        },
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
                "description": "Plain-text confirmation that the API is running.",
                "produces": ["text/plain"],
                "tags": ["Core"],
                "summary": "API banner",
                "responses": {
                    "200": {
                        "description": "Banner text",
                        "schema": {"type": "string"}
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "description": "Returns 200 while the process is up, whether or not the catalog is loaded.",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "Service is alive",
                        "schema": {"$ref": "#/definitions/models.LiveStatus"}
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Returns 200 with catalog size and cache counters once the catalog is loaded, 503 before.",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "Catalog loaded",
                        "schema": {"$ref": "#/definitions/models.ReadyStatus"}
                    },
                    "503": {
                        "description": "Catalog not loaded yet",
                        "schema": {"$ref": "#/definitions/models.ReadyStatus"}
                    }
                }
            }
        },
        "/recommend_by_movie": {
            "get": {
                "description": "Returns the k movies nearest to the first movie with the given title, nearest first. The movie itself is never included.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Similar movies",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact movie title",
                        "name": "title",
                        "in": "query",
                        "required": true
                    },
                    {
                        "minimum": 1,
                        "type": "integer",
                        "default": 10,
                        "description": "Number of results",
                        "name": "k",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Nearest movies",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.MovieSummary"}
                        }
                    },
                    "400": {
                        "description": "Missing title or invalid k",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "404": {
                        "description": "Movie not found",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "503": {
                        "description": "Catalog not loaded",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        },
        "/recommend_by_genre": {
            "get": {
                "description": "Returns up to top_n movies whose genres contain the given text (case-insensitive), ranked by an equally weighted score over popularity, revenue, vote average, vote count and budget.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Top movies in a genre",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Genre text to match",
                        "name": "genre",
                        "in": "query",
                        "required": true
                    },
                    {
                        "minimum": 1,
                        "type": "integer",
                        "default": 10,
                        "description": "Number of results",
                        "name": "top_n",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Ranked movies",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.MovieSummary"}
                        }
                    },
                    "400": {
                        "description": "Missing genre or invalid top_n",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "404": {
                        "description": "Genre not found or no movies in this genre",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "503": {
                        "description": "Catalog not loaded",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.CacheStatus": {
            "type": "object",
            "properties": {
                "entries": {"type": "integer"},
                "evictions": {"type": "integer"},
                "hit_rate": {"type": "number"},
                "hits": {"type": "integer"},
                "misses": {"type": "integer"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.LiveStatus": {
            "type": "object",
            "properties": {
                "alive": {"type": "boolean"},
                "uptime": {"type": "number"}
            }
        },
        "models.MovieSummary": {
            "type": "object",
            "properties": {
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "tagline": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "models.ReadyStatus": {
            "type": "object",
            "properties": {
                "cache": {"$ref": "#/definitions/models.CacheStatus"},
                "dimensions": {"type": "integer"},
                "metric": {"type": "string"},
                "movies": {"type": "integer"},
                "ready": {"type": "boolean"},
                "uptime": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Cinematch API",
	Description:      "Content-based movie recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
