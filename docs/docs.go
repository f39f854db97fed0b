// Package docs holds the Swagger document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/state": {
            "get": {
                "tags": [
                    "State"
                ],
                "summary": "Dashboard state snapshot",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/events": {
            "get": {
                "tags": [
                    "State"
                ],
                "summary": "Server-sent change stream",
                "produces": [
                    "text/event-stream"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/document": {
            "get": {
                "tags": [
                    "Theme"
                ],
                "summary": "Document root class list",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/theme/toggle": {
            "post": {
                "tags": [
                    "Theme"
                ],
                "summary": "Toggle dark mode",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/widgets": {
            "get": {
                "tags": [
                    "Widgets"
                ],
                "summary": "List widgets",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/widgets/{id}": {
            "patch": {
                "tags": [
                    "Widgets"
                ],
                "summary": "Update widget",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Widget ID"
                    },
                    {
                        "in": "body",
                        "name": "widget",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/WidgetPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/settings": {
            "get": {
                "tags": [
                    "Settings"
                ],
                "summary": "User settings",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "patch": {
                "tags": [
                    "Settings"
                ],
                "summary": "Update user settings",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "settings",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SettingsPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "List tasks",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "description": "all, pending or completed"
                    },
                    {
                        "in": "query",
                        "name": "priority",
                        "type": "string",
                        "description": "low, medium or high"
                    },
                    {
                        "in": "query",
                        "name": "category",
                        "type": "string",
                        "description": "Category"
                    },
                    {
                        "in": "query",
                        "name": "due",
                        "type": "string",
                        "description": "all, today, week or overdue"
                    },
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "description": "Search text"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Create task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "task",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateTaskRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/tasks/stats": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Task statistics",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/tasks/reminders": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Due-soon reminders",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "days",
                        "type": "integer",
                        "description": "Window in days, default 3"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Get task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "patch": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Update task",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    },
                    {
                        "in": "body",
                        "name": "task",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TaskPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Delete task",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/tasks/{id}/toggle": {
            "post": {
                "tags": [
                    "Tasks"
                ],
                "summary": "Toggle task completion",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Task ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": [
                    "Calendar"
                ],
                "summary": "Calendar month",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "year",
                        "type": "integer",
                        "description": "Year, default current"
                    },
                    {
                        "in": "query",
                        "name": "month",
                        "type": "integer",
                        "description": "Month 1-12, default current"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/weather": {
            "get": {
                "tags": [
                    "Weather"
                ],
                "summary": "Current weather",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "tags": [
                    "Weather"
                ],
                "summary": "Replace weather",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "weather",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/WeatherData"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/weather/refresh": {
            "post": {
                "tags": [
                    "Weather"
                ],
                "summary": "Refresh weather",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "502": {
                        "description": "Provider failed"
                    }
                }
            }
        },
        "/news": {
            "get": {
                "tags": [
                    "News"
                ],
                "summary": "Headlines for the selected category",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "description": "Search text"
                    },
                    {
                        "in": "query",
                        "name": "limit",
                        "type": "integer",
                        "description": "Maximum items, default 6"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "tags": [
                    "News"
                ],
                "summary": "Replace headlines",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "news",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/NewsItem"
                            }
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Replaced"
                    }
                }
            }
        },
        "/news/category": {
            "put": {
                "tags": [
                    "News"
                ],
                "summary": "Select news category",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "category",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/NewsCategoryRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Selected"
                    }
                }
            }
        },
        "/news/refresh": {
            "post": {
                "tags": [
                    "News"
                ],
                "summary": "Refresh news",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/watchlist": {
            "get": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Watchlist",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Add symbol",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "symbol",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/WatchlistRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Already watched"
                    },
                    "201": {
                        "description": "Added"
                    }
                }
            }
        },
        "/watchlist/{symbol}": {
            "delete": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Remove symbol",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "symbol",
                        "type": "string",
                        "required": true,
                        "description": "Ticker"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Removed"
                    },
                    "404": {
                        "description": "Not watched"
                    }
                }
            }
        },
        "/stocks": {
            "get": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Quotes in watchlist order",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/stocks/{symbol}": {
            "put": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Store quote",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "symbol",
                        "type": "string",
                        "required": true,
                        "description": "Ticker"
                    },
                    {
                        "in": "body",
                        "name": "quote",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StockData"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/stocks/refresh": {
            "post": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Refresh quotes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/portfolio/summary": {
            "post": {
                "tags": [
                    "Stocks"
                ],
                "summary": "Portfolio summary",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "portfolio",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PortfolioRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    },
    "definitions": {
        "WidgetPatch": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "weather",
                        "tasks",
                        "news",
                        "stocks",
                        "calendar",
                        "analytics"
                    ]
                },
                "position": {
                    "type": "object",
                    "properties": {
                        "x": {
                            "type": "integer"
                        },
                        "y": {
                            "type": "integer"
                        }
                    }
                },
                "size": {
                    "type": "object",
                    "properties": {
                        "width": {
                            "type": "integer"
                        },
                        "height": {
                            "type": "integer"
                        }
                    }
                },
                "visible": {
                    "type": "boolean"
                },
                "settings": {
                    "type": "object"
                }
            }
        },
        "SettingsPatch": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "notifications": {
                    "type": "boolean"
                }
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "category": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                },
                "dueDate": {
                    "type": "string",
                    "example": "2024-03-15"
                }
            },
            "required": [
                "title"
            ]
        },
        "TaskPatch": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "priority": {
                    "type": "string",
                    "enum": [
                        "low",
                        "medium",
                        "high"
                    ]
                },
                "category": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                },
                "dueDate": {
                    "type": "string"
                }
            }
        },
        "WeatherData": {
            "type": "object",
            "properties": {
                "current": {
                    "type": "object"
                },
                "forecast": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "NewsItem": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "publishedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "imageUrl": {
                    "type": "string"
                }
            }
        },
        "NewsCategoryRequest": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                }
            },
            "required": [
                "category"
            ]
        },
        "WatchlistRequest": {
            "type": "object",
            "properties": {
                "symbol": {
                    "type": "string",
                    "example": "NVDA"
                }
            },
            "required": [
                "symbol"
            ]
        },
        "StockData": {
            "type": "object",
            "properties": {
                "symbol": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "price": {
                    "type": "number"
                },
                "change": {
                    "type": "number"
                },
                "changePercent": {
                    "type": "number"
                },
                "high": {
                    "type": "number"
                },
                "low": {
                    "type": "number"
                },
                "volume": {
                    "type": "integer"
                }
            }
        },
        "PortfolioRequest": {
            "type": "object",
            "properties": {
                "holdings": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "symbol": {
                                "type": "string"
                            },
                            "shares": {
                                "type": "number"
                            },
                            "avgPrice": {
                                "type": "number"
                            }
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Dashboard API",
	Description:      "Personal dashboard state: theme, widgets, tasks, weather, news and stocks",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
