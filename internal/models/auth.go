package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// RoleDesconocido is issued when a user has no detail record attached.
const RoleDesconocido = "Desconocido"

// Claims is the JWT payload: sub carries the user id, Type the role.
type Claims struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim into the numeric user id.
func (c *Claims) UserID() int {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0
	}
	return id
}

// LoginRequest holds the credentials posted to /user/loginUser.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterUserRequest creates a User together with its UserDetail.
type RegisterUserRequest struct {
	Username        string  `json:"username" validate:"required,max=50"`
	Password        string  `json:"password" validate:"required,min=6"`
	DNI             int     `json:"dni" validate:"required"`
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=Alumno Admin"`
	Email           string  `json:"email" validate:"required,email"`
	AnioLectivo     *int    `json:"anio_lectivo"`
	EstadoAcademico *string `json:"estado_academico"`
}

// CreateUserDetailRequest creates a detail record for an existing user.
type CreateUserDetailRequest struct {
	DNI             int     `json:"dni" validate:"required"`
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=Alumno Admin"`
	Email           string  `json:"email" validate:"required,email"`
	AnioLectivo     *int    `json:"anio_lectivo"`
	EstadoAcademico *string `json:"estado_academico"`
	UserID          int     `json:"user_id" validate:"required"`
}

// UpdateUserDetailRequest is the allow-list partial update for a detail
// record. Non-admin callers cannot change Type.
type UpdateUserDetailRequest struct {
	DNI             *int    `json:"dni"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Type            *string `json:"type" validate:"omitempty,oneof=Alumno Admin"`
	Email           *string `json:"email" validate:"omitempty,email"`
	AnioLectivo     *int    `json:"anio_lectivo"`
	EstadoAcademico *string `json:"estado_academico"`
}
