package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "API Escuela",
        "description": "Billing and administration backend for a school: accounts, fee schedules, monthly dues, payments and notifications",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "User", "description": "Accounts and authentication"},
        {"name": "UserDetail", "description": "Personal and academic data"},
        {"name": "Tarifas", "description": "Monthly fee schedules"},
        {"name": "Cuotas", "description": "Monthly dues"},
        {"name": "Pagos", "description": "Payments and reversals"},
        {"name": "Notificaciones", "description": "Payment notifications and reminders"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}}
            }
        },
        "/user/loginUser": {
            "post": {
                "tags": ["User"],
                "summary": "Authenticate and obtain a JWT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/user/profile": {
            "get": {
                "tags": ["User"],
                "summary": "Authenticated user's profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user/register/full": {
            "post": {
                "tags": ["User"],
                "summary": "Create a user with its detail record (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterUserRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user/paginated/filtered-sync": {
            "post": {
                "tags": ["User"],
                "summary": "Keyset-paginated, filtered user listing (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaginatedUsersBody"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user/alumnos": {
            "get": {
                "tags": ["User"],
                "summary": "List every student (Admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user/ultimo": {
            "get": {
                "tags": ["User"],
                "summary": "Most recently registered user (Admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user/{user_id}": {
            "delete": {
                "tags": ["User"],
                "summary": "Delete a user with its payments and detail (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "user_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "Deleted"}}
            }
        },
        "/userdetail/me": {
            "get": {
                "tags": ["UserDetail"],
                "summary": "Authenticated user's detail record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/userdetail/": {
            "post": {
                "tags": ["UserDetail"],
                "summary": "Attach a detail record to an existing user (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserDetailRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/userdetail/{user_id}": {
            "get": {
                "tags": ["UserDetail"],
                "summary": "Detail record by user id (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "user_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "patch": {
                "tags": ["UserDetail"],
                "summary": "Partially update a detail record (Admin or self)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "user_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserDetailRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["UserDetail"],
                "summary": "Delete a detail record (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "user_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/tarifas/": {
            "post": {
                "tags": ["Tarifas"],
                "summary": "Register a new monthly rate",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CrearTarifaRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "get": {
                "tags": ["Tarifas"],
                "summary": "List every rate",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/tarifas/vigente": {
            "get": {
                "tags": ["Tarifas"],
                "summary": "Rate in force today",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No rate in force"}
                }
            }
        },
        "/cuotas/": {
            "post": {
                "tags": ["Cuotas"],
                "summary": "Create a due for a student and period",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerarCuotaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No rate in force"}
                }
            },
            "get": {
                "tags": ["Cuotas"],
                "summary": "List every due",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/pagos/nuevo": {
            "post": {
                "tags": ["Pagos"],
                "summary": "Register a payment against a cuota",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegistrarPagoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Payment registered"},
                    "404": {"description": "Cuota not found"}
                }
            }
        },
        "/pagos/eliminar/{pago_id}": {
            "delete": {
                "tags": ["Pagos"],
                "summary": "Reverse a payment keeping an audit snapshot (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "pago_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/EliminarPagoRequest"}}
                ],
                "responses": {
                    "200": {"description": "Payment reversed"},
                    "404": {"description": "Payment not found"}
                }
            }
        },
        "/pagos/eliminados": {
            "get": {
                "tags": ["Pagos"],
                "summary": "Reversal history, newest first (Admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/pagos/ultimo": {
            "get": {
                "tags": ["Pagos"],
                "summary": "Most recent payment (Admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/pagos/mis": {
            "get": {
                "tags": ["Pagos"],
                "summary": "Authenticated student's payments",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/pagos/editar/{pago_id}": {
            "patch": {
                "tags": ["Pagos"],
                "summary": "Partially update a payment (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "pago_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EditarPagoRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pagos/export": {
            "get": {
                "tags": ["Pagos"],
                "summary": "Export the payment history as CSV or PDF (Admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "Report file"}}
            }
        },
        "/notificaciones/recordatorios": {
            "post": {
                "tags": ["Notificaciones"],
                "summary": "Generate due-date reminders (Admin)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Reminders created"},
                    "404": {"description": "No cuotas about to expire"}
                }
            }
        },
        "/notificaciones/listar": {
            "get": {
                "tags": ["Notificaciones"],
                "summary": "Most recent notifications (Admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "dni": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "type": {"type": "string", "enum": ["Alumno", "Admin"]},
                "email": {"type": "string"},
                "anio_lectivo": {"type": "integer"},
                "estado_academico": {"type": "string"}
            },
            "required": ["username", "password", "dni", "firstName", "lastName", "type", "email"]
        },
        "PaginatedUsersBody": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "last_seen_id": {"type": "integer"},
                "search": {"type": "string"}
            }
        },
        "CreateUserDetailRequest": {
            "type": "object",
            "properties": {
                "dni": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "type": {"type": "string", "enum": ["Alumno", "Admin"]},
                "email": {"type": "string"},
                "anio_lectivo": {"type": "integer"},
                "estado_academico": {"type": "string"},
                "user_id": {"type": "integer"}
            },
            "required": ["dni", "firstName", "lastName", "type", "email", "user_id"]
        },
        "UpdateUserDetailRequest": {
            "type": "object",
            "properties": {
                "dni": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "type": {"type": "string", "enum": ["Alumno", "Admin"]},
                "email": {"type": "string"},
                "anio_lectivo": {"type": "integer"},
                "estado_academico": {"type": "string"}
            }
        },
        "CrearTarifaRequest": {
            "type": "object",
            "properties": {
                "monto_mensual": {"type": "number"},
                "vigente_desde": {"type": "string", "format": "date-time"},
                "vigente_hasta": {"type": "string", "format": "date-time"},
                "creado_por": {"type": "integer"}
            },
            "required": ["monto_mensual", "vigente_desde"]
        },
        "GenerarCuotaRequest": {
            "type": "object",
            "properties": {
                "alumno_id": {"type": "integer"},
                "periodo": {"type": "string", "example": "2025-03"},
                "fecha_vencimiento": {"type": "string", "format": "date-time"},
                "ajuste_anterior": {"type": "number"},
                "monto_a_pagar": {"type": "number"}
            },
            "required": ["alumno_id", "periodo", "fecha_vencimiento", "monto_a_pagar"]
        },
        "RegistrarPagoRequest": {
            "type": "object",
            "properties": {
                "alumno_id": {"type": "integer"},
                "cuota_id": {"type": "integer"},
                "monto_pagado": {"type": "number"},
                "metodo": {"type": "string"},
                "comprobante": {"type": "string"}
            },
            "required": ["cuota_id", "monto_pagado", "metodo"]
        },
        "EliminarPagoRequest": {
            "type": "object",
            "properties": {
                "motivo": {"type": "string"}
            }
        },
        "EditarPagoRequest": {
            "type": "object",
            "properties": {
                "monto_pagado": {"type": "number"},
                "metodo": {"type": "string"},
                "comprobante": {"type": "string"}
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
                "error": {"$ref": "#/definitions/APIError"}
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
