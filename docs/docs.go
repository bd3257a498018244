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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.Credentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.Credentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/machine/snapshot": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "Current machine snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cnc_simulator.MachineStatus"}},
                    "500": {"description": "Internal Server Error"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/v1/machine/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "Machine nameplate",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cnc_simulator.MachineInfo"}}}
            }
        },
        "/api/v1/machine/units": {
            "get": {
                "produces": ["application/json"],
                "tags": ["monitoring"],
                "summary": "Engineering units",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/machine/emergency-stop": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["machine"],
                "summary": "Emergency stop",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/v1/machine/tool-change": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["machine"],
                "summary": "Change tool",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ToolChangeRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/machine/production/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["machine"],
                "summary": "Reset production counters",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/machine/feed-override": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["machine"],
                "summary": "Set feed override",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FeedOverrideRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/machine/state": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["machine"],
                "summary": "Set operating state",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.StateRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List machine events",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["START", "COMPLETE", "ALARM", "ALARM_CLEARED", "EMERGENCY_STOP", "TOOL_CHANGE", "COUNTERS_RESET", "OVERRIDE_CHANGE", "STATE_CHANGE"], "type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/ws": {
            "get": {
                "tags": ["monitoring"],
                "summary": "Snapshot stream",
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.Credentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "secret"},
                "username": {"type": "string", "example": "operator"}
            }
        },
        "handlers.ToolChangeRequest": {
            "type": "object",
            "required": ["tool_number"],
            "properties": {"tool_number": {"type": "integer", "example": 3}}
        },
        "handlers.FeedOverrideRequest": {
            "type": "object",
            "required": ["percent"],
            "properties": {"percent": {"type": "number", "example": 110}}
        },
        "handlers.StateRequest": {
            "type": "object",
            "required": ["state"],
            "properties": {"state": {"type": "string", "example": "Maintenance"}}
        },
        "cnc_simulator.MachineInfo": {
            "type": "object",
            "properties": {
                "manufacturer": {"type": "string"},
                "model": {"type": "string"},
                "name": {"type": "string"},
                "serial_number": {"type": "string"}
            }
        },
        "cnc_simulator.MachineStatus": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "simulation_time_s": {"type": "number"},
                "state": {"type": "string"},
                "state_code": {"type": "integer"},
                "program": {"type": "object"},
                "spindle": {"type": "object"},
                "feed": {"type": "object"},
                "tool": {"type": "object"},
                "vibration": {"type": "object"},
                "production": {"type": "object"},
                "auxiliary": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "CNC Simulator API",
	Description:      "Simulated CNC machining center: live snapshots, operator commands and the machine event log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
