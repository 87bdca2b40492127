package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/escuela-adp/api-escuela/internal/models"
)

// CuotaRepository provides database access for monthly dues.
type CuotaRepository struct {
	db *sqlx.DB
}

// NewCuotaRepository creates a new instance of CuotaRepository.
func NewCuotaRepository(db *sqlx.DB) *CuotaRepository {
	return &CuotaRepository{db: db}
}

const cuotaColumns = `id, alumno_id, periodo, fecha_vencimiento, monto_base, ajuste_anterior,
	monto_a_pagar, monto_pagado, saldo_pendiente, estado, notificada`

// Create inserts a new due.
func (r *CuotaRepository) Create(ctx context.Context, cuota *models.Cuota) error {
	const query = `INSERT INTO cuotas (alumno_id, periodo, fecha_vencimiento, monto_base, ajuste_anterior,
			monto_a_pagar, monto_pagado, saldo_pendiente, estado, notificada)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		cuota.AlumnoID, cuota.Periodo, cuota.FechaVencimiento, cuota.MontoBase, cuota.AjusteAnterior,
		cuota.MontoAPagar, cuota.MontoPagado, cuota.SaldoPendiente, cuota.Estado, cuota.Notificada).Scan(&cuota.ID); err != nil {
		return fmt.Errorf("create cuota: %w", err)
	}
	return nil
}

// List returns every due, newest first.
func (r *CuotaRepository) List(ctx context.Context) ([]models.Cuota, error) {
	query := fmt.Sprintf(`SELECT %s FROM cuotas ORDER BY id DESC`, cuotaColumns)
	var cuotas []models.Cuota
	if err := r.db.SelectContext(ctx, &cuotas, query); err != nil {
		return nil, fmt.Errorf("list cuotas: %w", err)
	}
	return cuotas, nil
}
