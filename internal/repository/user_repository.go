package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/escuela-adp/api-escuela/internal/models"
)

// UserRepository provides database access for login identities and their
// detail records.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userRow is a usuarios row left-joined with user_details.
type userRow struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`

	DetailID        sql.NullInt64  `db:"detail_id"`
	DNI             sql.NullInt64  `db:"dni"`
	FirstName       sql.NullString `db:"first_name"`
	LastName        sql.NullString `db:"last_name"`
	Type            sql.NullString `db:"type"`
	Email           sql.NullString `db:"email"`
	AnioLectivo     sql.NullInt64  `db:"anio_lectivo"`
	EstadoAcademico sql.NullString `db:"estado_academico"`
}

const userWithDetailColumns = `u.id, u.username, u.password_hash,
	d.id AS detail_id, d.dni, d.first_name, d.last_name, d.type, d.email, d.anio_lectivo, d.estado_academico`

func (r userRow) toUser() models.User {
	user := models.User{ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash}
	if r.DetailID.Valid {
		detail := &models.UserDetail{
			ID:        int(r.DetailID.Int64),
			DNI:       int(r.DNI.Int64),
			FirstName: r.FirstName.String,
			LastName:  r.LastName.String,
			Type:      r.Type.String,
			Email:     r.Email.String,
			UserID:    r.ID,
		}
		if r.AnioLectivo.Valid {
			anio := int(r.AnioLectivo.Int64)
			detail.AnioLectivo = &anio
		}
		if r.EstadoAcademico.Valid {
			estado := r.EstadoAcademico.String
			detail.EstadoAcademico = &estado
		}
		user.Detail = detail
	}
	return user
}

// FindByUsername returns a user with its detail by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios u LEFT JOIN user_details d ON d.user_id = u.id WHERE u.username = $1 LIMIT 1`, userWithDetailColumns)
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	user := row.toUser()
	return &user, nil
}

// FindByID returns a user with its detail by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios u LEFT JOIN user_details d ON d.user_id = u.id WHERE u.id = $1 LIMIT 1`, userWithDetailColumns)
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	user := row.toUser()
	return &user, nil
}

// FindLatest returns the most recently registered user, detail included.
func (r *UserRepository) FindLatest(ctx context.Context) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios u LEFT JOIN user_details d ON d.user_id = u.id ORDER BY u.id DESC LIMIT 1`, userWithDetailColumns)
	var row userRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find latest user: %w", err)
	}
	user := row.toUser()
	return &user, nil
}

// ListPaginated returns users after the cursor in ascending id order,
// optionally filtered by a case-insensitive substring across username,
// email, first and last name.
func (r *UserRepository) ListPaginated(ctx context.Context, body models.PaginatedUsersBody) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios u LEFT JOIN user_details d ON d.user_id = u.id WHERE 1=1`, userWithDetailColumns)
	var args []interface{}

	if search := strings.TrimSpace(body.Search); search != "" {
		query += fmt.Sprintf(" AND (u.username ILIKE $%d OR d.email ILIKE $%d OR d.first_name ILIKE $%d OR d.last_name ILIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+search+"%")
	}
	if body.LastSeenID > 0 {
		query += fmt.Sprintf(" AND u.id > $%d", len(args)+1)
		args = append(args, body.LastSeenID)
	}

	limit := body.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY u.id ASC LIMIT %d", limit)

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

// ListAlumnos returns every user whose detail type is Alumno.
func (r *UserRepository) ListAlumnos(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios u JOIN user_details d ON d.user_id = u.id WHERE d.type = $1 ORDER BY u.id ASC`, userWithDetailColumns)
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, string(models.RoleAlumno)); err != nil {
		return nil, fmt.Errorf("list alumnos: %w", err)
	}

	alumnos := make([]models.User, 0, len(rows))
	for _, row := range rows {
		alumnos = append(alumnos, row.toUser())
	}
	return alumnos, nil
}

// CreateWithDetail inserts a user and its detail in one transaction.
func (r *UserRepository) CreateWithDetail(ctx context.Context, user *models.User, detail *models.UserDetail) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}

	const insertUser = `INSERT INTO usuarios (username, password_hash) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertUser, user.Username, user.PasswordHash).Scan(&user.ID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert user: %w", err)
	}

	detail.UserID = user.ID
	const insertDetail = `INSERT INTO user_details (dni, first_name, last_name, type, email, anio_lectivo, estado_academico, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertDetail,
		detail.DNI, detail.FirstName, detail.LastName, detail.Type, detail.Email,
		detail.AnioLectivo, detail.EstadoAcademico, detail.UserID).Scan(&detail.ID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert user detail: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create user: %w", err)
	}
	user.Detail = detail
	return nil
}

// DeleteCascade removes a user together with its payments and detail in one
// transaction. Returns sql.ErrNoRows when the user does not exist.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pagos WHERE alumno_id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete user payments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_details WHERE user_id = $1`, id); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete user detail: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete user: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		tx.Rollback() //nolint:errcheck
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete user: %w", err)
	}
	return nil
}
