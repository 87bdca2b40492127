package models

import "strings"

// Role is the closed set of user roles. Comparisons are case-insensitive
// because tokens issued by older deployments carry mixed-case values.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleAlumno Role = "Alumno"
)

// Matches reports whether the raw role string names this role.
func (r Role) Matches(raw string) bool {
	return strings.EqualFold(string(r), raw)
}

// User is the login identity stored in the usuarios table.
type User struct {
	ID           int         `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Detail       *UserDetail `db:"-" json:"userdetail,omitempty"`
}

// UserDetail carries the personal and academic data attached to a User.
type UserDetail struct {
	ID              int     `db:"id" json:"id"`
	DNI             int     `db:"dni" json:"dni"`
	FirstName       string  `db:"first_name" json:"firstName"`
	LastName        string  `db:"last_name" json:"lastName"`
	Type            string  `db:"type" json:"type"`
	Email           string  `db:"email" json:"email"`
	AnioLectivo     *int    `db:"anio_lectivo" json:"anio_lectivo,omitempty"`
	EstadoAcademico *string `db:"estado_academico" json:"estado_academico,omitempty"`
	UserID          int     `db:"user_id" json:"user_id"`
}

// FullName joins first and last name for display purposes.
func (d *UserDetail) FullName() string {
	return d.FirstName + " " + d.LastName
}

// PaginatedUsersBody is the request body for the filtered user listing.
type PaginatedUsersBody struct {
	Limit      int    `json:"limit"`
	LastSeenID int    `json:"last_seen_id"`
	Search     string `json:"search"`
}

// PaginatedUsers is the keyset-paginated listing response. NextCursor is the
// last id seen, nil when the page came back empty.
type PaginatedUsers struct {
	Users      []User `json:"users"`
	NextCursor *int   `json:"next_cursor"`
}
