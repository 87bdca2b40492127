package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escuela-adp/api-escuela/internal/models"
)

// UserDetailRepository provides database access for detail records.
type UserDetailRepository struct {
	db *sqlx.DB
}

// NewUserDetailRepository creates a new instance of UserDetailRepository.
func NewUserDetailRepository(db *sqlx.DB) *UserDetailRepository {
	return &UserDetailRepository{db: db}
}

const detailColumns = `id, dni, first_name, last_name, type, email, anio_lectivo, estado_academico, user_id`

// FindByUserID returns the detail record attached to a user.
func (r *UserDetailRepository) FindByUserID(ctx context.Context, userID int) (*models.UserDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_details WHERE user_id = $1 LIMIT 1`, detailColumns)
	var detail models.UserDetail
	if err := r.db.GetContext(ctx, &detail, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find detail by user id: %w", err)
	}
	return &detail, nil
}

// EmailExists reports whether any detail record uses the given email.
func (r *UserDetailRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM user_details WHERE email = $1)`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// DNIExists reports whether any detail record uses the given dni.
func (r *UserDetailRepository) DNIExists(ctx context.Context, dni int) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM user_details WHERE dni = $1)`
	if err := r.db.GetContext(ctx, &exists, query, dni); err != nil {
		return false, fmt.Errorf("check dni exists: %w", err)
	}
	return exists, nil
}

// Create inserts a detail record.
func (r *UserDetailRepository) Create(ctx context.Context, detail *models.UserDetail) error {
	const query = `INSERT INTO user_details (dni, first_name, last_name, type, email, anio_lectivo, estado_academico, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		detail.DNI, detail.FirstName, detail.LastName, detail.Type, detail.Email,
		detail.AnioLectivo, detail.EstadoAcademico, detail.UserID).Scan(&detail.ID); err != nil {
		return fmt.Errorf("create user detail: %w", err)
	}
	return nil
}

// Update writes back every mutable field of a detail record.
func (r *UserDetailRepository) Update(ctx context.Context, detail *models.UserDetail) error {
	const query = `UPDATE user_details
		SET dni = :dni, first_name = :first_name, last_name = :last_name, type = :type,
			email = :email, anio_lectivo = :anio_lectivo, estado_academico = :estado_academico
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, detail); err != nil {
		return fmt.Errorf("update user detail: %w", err)
	}
	return nil
}

// DeleteByUserID removes the detail record attached to a user. Returns
// sql.ErrNoRows when there is none.
func (r *UserDetailRepository) DeleteByUserID(ctx context.Context, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_details WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user detail: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
