package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DEE Portal API",
        "description": "Employee roster and records management for the Directorate of Elementary Education",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and password setup"},
        {"name": "Employees", "description": "Roster and provisioning"},
        {"name": "Changes", "description": "Edit approval workflow"},
        {"name": "Reports", "description": "Downloadable roster reports"},
        {"name": "Districts", "description": "District registry"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue a token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Password not set"}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Set or replace an account password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Account not found"}
                }
            }
        },
        "/auth/password-status": {
            "get": {
                "tags": ["Auth"],
                "summary": "Report whether an account has completed password setup",
                "parameters": [
                    {"name": "username", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/districts": {
            "get": {
                "tags": ["Districts"],
                "summary": "List districts with identifier positions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List roster records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "district", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Provision an employee record and its login account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEmployeeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure or malformed identifier"},
                    "409": {"description": "Identifier already in use"},
                    "422": {"description": "Sequence exhausted"}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Fetch a single employee",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Employees"],
                "summary": "Remove an employee and its login account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/changes": {
            "get": {
                "tags": ["Changes"],
                "summary": "List change requests visible to the caller",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "employee_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Changes"],
                "summary": "Submit a proposed employee edit for review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateChangeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/changes/{id}": {
            "get": {
                "tags": ["Changes"],
                "summary": "Fetch a single change request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/changes/{id}/approve": {
            "post": {
                "tags": ["Changes"],
                "summary": "Approve a pending change and apply it to the employee record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed diff"},
                    "404": {"description": "Not found or not pending"},
                    "422": {"description": "Empty change after filtering"}
                }
            }
        },
        "/changes/{id}/reject": {
            "post": {
                "tags": ["Changes"],
                "summary": "Reject a pending change",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or not pending"}
                }
            }
        },
        "/reports/employees": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the employee roster as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "district", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ResetPasswordRequest": {
            "type": "object",
            "required": ["username", "new_password"],
            "properties": {
                "username": {"type": "string"},
                "new_password": {"type": "string", "minLength": 6}
            }
        },
        "CreateEmployeeRequest": {
            "type": "object",
            "required": ["name", "designation", "gender", "date_of_birth", "date_of_joining"],
            "properties": {
                "employee_id": {"type": "string"},
                "name": {"type": "string"},
                "designation": {"type": "string"},
                "gender": {"type": "string"},
                "place_of_posting": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "date_of_joining": {"type": "string"},
                "cause_of_vacancy": {"type": "string"},
                "caste": {"type": "string"},
                "posted_against_reservation": {"type": "string"},
                "pwd": {"type": "boolean"},
                "ex_servicemen": {"type": "boolean"},
                "assembly_constituency": {"type": "string"},
                "creation_no": {"type": "string"},
                "retention_no": {"type": "string"},
                "treasury_name": {"type": "string"}
            }
        },
        "CreateChangeRequest": {
            "type": "object",
            "required": ["employee_id", "changes"],
            "properties": {
                "employee_id": {"type": "string"},
                "changes": {"type": "object"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
