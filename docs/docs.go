// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/movies": {
            "post": {
                "description": "Inserts the movie or refreshes the stored copy with the same id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Save a movie locally",
                "parameters": [
                    {"description": "Movie", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SaveMovieRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/movies/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Search movies in TMDb",
                "parameters": [
                    {"type": "string", "description": "Search words", "name": "query", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.MovieSearchResult"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get a stored movie with review statistics",
                "parameters": [
                    {"type": "string", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.MovieDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/reviews": {
            "get": {
                "description": "Unknown sortBy values and non-numeric ratings are ignored.",
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List reviews",
                "parameters": [
                    {"enum": ["rating", "created_at"], "type": "string", "description": "rating or created_at", "name": "sortBy", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "description": "asc or desc (default desc)", "name": "order", "in": "query"},
                    {"type": "integer", "description": "Only reviews with this rating", "name": "rating", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Review"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Post a review",
                "parameters": [
                    {"description": "Review", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Review"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/reviews/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Latest reviews",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Review"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/errors.FieldError"}},
                "error": {"type": "string"}
            }
        },
        "errors.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.CreateReviewRequest": {
            "type": "object",
            "required": ["movieId", "rating"],
            "properties": {
                "comment_general": {"type": "string", "maxLength": 1000},
                "comment_spoiler": {"type": "string", "maxLength": 1000},
                "movieId": {"type": "string"},
                "rating": {"type": "number", "maximum": 5, "minimum": 1}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "handler.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.SaveMovieRequest": {
            "type": "object",
            "required": ["id", "title"],
            "properties": {
                "id": {"type": "integer"},
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "model.Movie": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.MovieSearchResult": {
            "type": "object",
            "properties": {
                "adult": {"type": "boolean"},
                "backdrop_path": {"type": "string"},
                "genre_ids": {"type": "array", "items": {"type": "integer"}},
                "id": {"type": "integer"},
                "original_title": {"type": "string"},
                "overview": {"type": "string"},
                "popularity": {"type": "number"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "title": {"type": "string"},
                "vote_average": {"type": "number"},
                "vote_count": {"type": "integer"}
            }
        },
        "model.Review": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/model.ReviewAuthor"},
                "comment_general": {"type": "string"},
                "comment_spoiler": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "movie": {"$ref": "#/definitions/model.ReviewMovie"},
                "movieId": {"type": "string"},
                "rating": {"type": "integer"},
                "userId": {"type": "integer"}
            }
        },
        "model.ReviewAuthor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "model.ReviewMovie": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "service.MovieDetail": {
            "type": "object",
            "properties": {
                "average_rating": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "overview": {"type": "string"},
                "poster_path": {"type": "string"},
                "release_date": {"type": "string"},
                "review_count": {"type": "integer"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
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
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Movie Review API",
	Description:      "Movie search via TMDb, local movie storage and user reviews with JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
