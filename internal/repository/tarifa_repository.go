package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/escuela-adp/api-escuela/internal/models"
)

// TarifaRepository provides database access for fee schedules.
type TarifaRepository struct {
	db *sqlx.DB
}

// NewTarifaRepository creates a new instance of TarifaRepository.
func NewTarifaRepository(db *sqlx.DB) *TarifaRepository {
	return &TarifaRepository{db: db}
}

// Create inserts a new rate row.
func (r *TarifaRepository) Create(ctx context.Context, tarifa *models.Tarifa) error {
	const query = `INSERT INTO tarifas (monto_mensual, vigente_desde, vigente_hasta, creado_por)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		tarifa.MontoMensual, tarifa.VigenteDesde, tarifa.VigenteHasta, tarifa.CreadoPor).Scan(&tarifa.ID); err != nil {
		return fmt.Errorf("create tarifa: %w", err)
	}
	return nil
}

// FindVigente returns the rate whose validity window contains today; when
// several overlap, the one with the latest vigente_desde wins. Recomputed on
// every call, never cached.
func (r *TarifaRepository) FindVigente(ctx context.Context, today time.Time) (*models.Tarifa, error) {
	const query = `SELECT id, monto_mensual, vigente_desde, vigente_hasta, creado_por FROM tarifas
		WHERE vigente_desde <= $1 AND (vigente_hasta IS NULL OR vigente_hasta >= $1)
		ORDER BY vigente_desde DESC LIMIT 1`
	var tarifa models.Tarifa
	if err := r.db.GetContext(ctx, &tarifa, query, today); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find vigente tarifa: %w", err)
	}
	return &tarifa, nil
}

// List returns every rate, newest validity window first.
func (r *TarifaRepository) List(ctx context.Context) ([]models.Tarifa, error) {
	const query = `SELECT id, monto_mensual, vigente_desde, vigente_hasta, creado_por FROM tarifas
		ORDER BY vigente_desde DESC`
	var tarifas []models.Tarifa
	if err := r.db.SelectContext(ctx, &tarifas, query); err != nil {
		return nil, fmt.Errorf("list tarifas: %w", err)
	}
	return tarifas, nil
}
