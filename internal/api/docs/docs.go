// Package docs holds the OpenAPI description served under /swagger.
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
        "/dataset": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dataset"
                ],
                "summary": "Dataset profile",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.DatasetProfile"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/records": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dataset"
                ],
                "summary": "Filtered records",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum rows returned",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Dashboard report",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Top/bottom N",
                        "name": "top",
                        "in": "query",
                        "default": 5
                    },
                    {
                        "type": "boolean",
                        "description": "Attach filtered rows",
                        "name": "show_data",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Report"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/count": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Count by key",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Grouping key",
                        "name": "by",
                        "in": "query",
                        "default": "country"
                    },
                    {
                        "type": "integer",
                        "description": "Keep N groups",
                        "name": "top",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "desc (top) or asc (bottom)",
                        "name": "order",
                        "in": "query",
                        "default": "desc"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SummaryTable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/mean": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Mean by key",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Grouping key",
                        "name": "by",
                        "in": "query",
                        "default": "country"
                    },
                    {
                        "type": "string",
                        "description": "Numeric field",
                        "name": "field",
                        "in": "query",
                        "default": "age"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.SummaryTable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/correlation": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Correlation",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Numeric field",
                        "name": "x",
                        "in": "query",
                        "default": "age"
                    },
                    {
                        "type": "string",
                        "description": "Numeric field",
                        "name": "y",
                        "in": "query",
                        "default": "watch_time_hours"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Statistic"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/correlation/matrix": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Correlation matrix",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.CorrelationMatrix"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/crosstab": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Cross tabulation",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Row key",
                        "name": "rows",
                        "in": "query",
                        "default": "country"
                    },
                    {
                        "type": "string",
                        "description": "Column key",
                        "name": "cols",
                        "in": "query",
                        "default": "subscription_type"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Matrix"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/bins": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Binned distribution",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "watch_time_hours or age",
                        "name": "field",
                        "in": "query",
                        "default": "watch_time_hours"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.BinnedDistribution"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/summary/describe": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "summary"
                ],
                "summary": "Descriptive statistics",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.FieldSummary"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/charts": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "charts"
                ],
                "summary": "List charts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/charts/{chart}": {
            "get": {
                "produces": [
                    "image/png"
                ],
                "tags": [
                    "charts"
                ],
                "summary": "Dashboard chart",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Chart name",
                        "name": "chart",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Comma separated countries",
                        "name": "countries",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Minimum age (inclusive)",
                        "name": "age_min",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum age (inclusive)",
                        "name": "age_max",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Top/bottom N",
                        "name": "top",
                        "in": "query",
                        "default": 5
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "Unknown chart",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/reports": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum reports returned",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/store.ReportSummary"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Create a report",
                "parameters": [
                    {
                        "description": "Dashboard state",
                        "name": "state",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/handler.reportRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.Report"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Report ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Report"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/reports/{id}/errors": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Get report errors",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Report ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "model.SummaryRow": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "value": {
                    "type": "number"
                },
                "count": {
                    "type": "integer"
                },
                "undefined": {
                    "type": "boolean"
                }
            }
        },
        "model.SummaryTable": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "key_column": {
                    "type": "string"
                },
                "value_column": {
                    "type": "string"
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.SummaryRow"
                    }
                }
            }
        },
        "model.Statistic": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "value": {
                    "type": "number"
                },
                "n": {
                    "type": "integer"
                },
                "defined": {
                    "type": "boolean"
                }
            }
        },
        "model.Matrix": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "row_field": {
                    "type": "string"
                },
                "col_field": {
                    "type": "string"
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "cols": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "cells": {
                    "type": "array",
                    "items": {
                        "type": "array",
                        "items": {
                            "type": "number"
                        }
                    }
                },
                "row_totals": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    }
                },
                "col_totals": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    }
                }
            }
        },
        "model.CorrelationMatrix": {
            "type": "object",
            "properties": {
                "fields": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "values": {
                    "type": "array",
                    "items": {
                        "type": "array",
                        "items": {
                            "$ref": "#/definitions/model.Statistic"
                        }
                    }
                }
            }
        },
        "model.BinnedDistribution": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "table": {
                    "$ref": "#/definitions/model.SummaryTable"
                },
                "excluded": {
                    "type": "integer"
                },
                "missing": {
                    "type": "integer"
                }
            }
        },
        "model.FieldSummary": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                },
                "mean": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "std": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "min": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "p25": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "p50": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "p75": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "max": {
                    "$ref": "#/definitions/model.Statistic"
                }
            }
        },
        "model.FilterPredicate": {
            "type": "object",
            "properties": {
                "countries": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "age_min": {
                    "type": "integer"
                },
                "age_max": {
                    "type": "integer"
                }
            }
        },
        "model.DashboardState": {
            "type": "object",
            "properties": {
                "filter": {
                    "$ref": "#/definitions/model.FilterPredicate"
                },
                "top_n": {
                    "type": "integer"
                },
                "show_full_data": {
                    "type": "boolean"
                }
            }
        },
        "model.DatasetProfile": {
            "type": "object",
            "properties": {
                "source": {
                    "type": "string"
                },
                "columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "source_columns": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "row_count": {
                    "type": "integer"
                },
                "null_counts": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "total_nulls": {
                    "type": "integer"
                },
                "countries": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "age_min": {
                    "type": "integer"
                },
                "age_max": {
                    "type": "integer"
                },
                "bad_login_dates": {
                    "type": "integer"
                },
                "loaded_at": {
                    "type": "string"
                },
                "load_duration_ms": {
                    "type": "integer"
                }
            }
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "state": {
                    "$ref": "#/definitions/model.DashboardState"
                },
                "row_count": {
                    "type": "integer"
                },
                "empty": {
                    "type": "boolean"
                },
                "warnings": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "mean_age": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "top_countries": {
                    "$ref": "#/definitions/model.SummaryTable"
                },
                "bottom_countries": {
                    "$ref": "#/definitions/model.SummaryTable"
                },
                "subscriptions": {
                    "$ref": "#/definitions/model.SummaryTable"
                },
                "genres": {
                    "$ref": "#/definitions/model.SummaryTable"
                },
                "age_watch_correlation": {
                    "$ref": "#/definitions/model.Statistic"
                },
                "correlations": {
                    "$ref": "#/definitions/model.CorrelationMatrix"
                },
                "country_by_subscription": {
                    "$ref": "#/definitions/model.Matrix"
                },
                "watch_time_distribution": {
                    "$ref": "#/definitions/model.BinnedDistribution"
                },
                "age_distribution": {
                    "$ref": "#/definitions/model.BinnedDistribution"
                },
                "describe": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.FieldSummary"
                    }
                }
            }
        },
        "store.ReportSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "state": {
                    "$ref": "#/definitions/model.DashboardState"
                },
                "row_count": {
                    "type": "integer"
                },
                "empty": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "handler.reportRequest": {
            "type": "object",
            "properties": {
                "countries": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "age_min": {
                    "type": "integer"
                },
                "age_max": {
                    "type": "integer"
                },
                "top_n": {
                    "type": "integer"
                },
                "show_full_data": {
                    "type": "boolean"
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
	Schemes:          []string{},
	Title:            "Viewer Dashboard API",
	Description:      "Filtered summaries and charts over a streaming-service user dataset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
