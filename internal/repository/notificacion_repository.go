package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/escuela-adp/api-escuela/internal/models"
)

// NotificacionRepository provides database access for payment notifications.
type NotificacionRepository struct {
	db *sqlx.DB
}

// NewNotificacionRepository creates a new instance of NotificacionRepository.
func NewNotificacionRepository(db *sqlx.DB) *NotificacionRepository {
	return &NotificacionRepository{db: db}
}

type cuotaAlumnoRow struct {
	models.Cuota
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
}

// CreateReminders notifies every cuota due exactly on the given date that has
// not been reminded yet. The whole batch runs in one transaction: each cuota
// gets the notifications from the callback and is marked notificada. Returns
// sql.ErrNoRows when no cuota qualifies.
func (r *NotificacionRepository) CreateReminders(ctx context.Context, due time.Time, build func(cuota models.CuotaAlumno) []models.NotificacionPago) ([]models.NotificacionPago, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin reminders: %w", err)
	}

	const selectDue = `SELECT c.id, c.alumno_id, c.periodo, c.fecha_vencimiento, c.monto_base, c.ajuste_anterior,
			c.monto_a_pagar, c.monto_pagado, c.saldo_pendiente, c.estado, c.notificada,
			d.first_name, d.last_name
		FROM cuotas c LEFT JOIN user_details d ON d.user_id = c.alumno_id
		WHERE c.fecha_vencimiento = $1 AND c.notificada = false
		ORDER BY c.id ASC`
	var rows []cuotaAlumnoRow
	if err := tx.SelectContext(ctx, &rows, selectDue, due); err != nil {
		tx.Rollback() //nolint:errcheck
		return nil, fmt.Errorf("select due cuotas: %w", err)
	}
	if len(rows) == 0 {
		tx.Rollback() //nolint:errcheck
		return nil, sql.ErrNoRows
	}

	var created []models.NotificacionPago
	for _, row := range rows {
		cuota := models.CuotaAlumno{Cuota: row.Cuota}
		cuota.AlumnoNombre = fmt.Sprintf("ID %d", row.AlumnoID)
		if row.FirstName.Valid {
			cuota.AlumnoNombre = row.FirstName.String + " " + row.LastName.String
		}

		for _, notif := range build(cuota) {
			if err := insertNotificacion(ctx, tx, &notif); err != nil {
				tx.Rollback() //nolint:errcheck
				return nil, err
			}
			created = append(created, notif)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE cuotas SET notificada = true WHERE id = $1`, row.Cuota.ID); err != nil {
			tx.Rollback() //nolint:errcheck
			return nil, fmt.Errorf("mark cuota notificada: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reminders: %w", err)
	}
	return created, nil
}

type notificacionRow struct {
	models.NotificacionPago
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Periodo   sql.NullString `db:"periodo"`
}

// ListRecientes returns the latest notifications with student names and cuota
// periods, newest first, capped at limit.
func (r *NotificacionRepository) ListRecientes(ctx context.Context, limit int) ([]models.NotificacionListado, error) {
	const query = `SELECT n.id, n.alumno_id, n.cuota_id, n.tipo, n.fecha_envio, n.destinatario, n.mensaje,
			d.first_name, d.last_name, c.periodo
		FROM notificaciones_pago n
		LEFT JOIN user_details d ON d.user_id = n.alumno_id
		LEFT JOIN cuotas c ON c.id = n.cuota_id
		ORDER BY n.fecha_envio DESC LIMIT $1`
	var rows []notificacionRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list notificaciones: %w", err)
	}

	listado := make([]models.NotificacionListado, 0, len(rows))
	for _, row := range rows {
		item := models.NotificacionListado{NotificacionPago: row.NotificacionPago}
		item.AlumnoNombre = fmt.Sprintf("ID %d", row.AlumnoID)
		if row.FirstName.Valid {
			item.AlumnoNombre = row.FirstName.String + " " + row.LastName.String
		}
		item.Periodo = "Desconocido"
		if row.Periodo.Valid {
			item.Periodo = row.Periodo.String
		}
		listado = append(listado, item)
	}
	return listado, nil
}
