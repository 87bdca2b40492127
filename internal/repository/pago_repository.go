package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/escuela-adp/api-escuela/internal/models"
)

// PagoRepository provides database access for payments. The multi-row
// mutations (Register, Eliminar) each run as one transaction so a failure
// anywhere rolls the whole unit back.
type PagoRepository struct {
	db *sqlx.DB
}

// NewPagoRepository creates a new instance of PagoRepository.
func NewPagoRepository(db *sqlx.DB) *PagoRepository {
	return &PagoRepository{db: db}
}

const pagoColumns = `id, alumno_id, cuota_id, monto_pagado, metodo, comprobante, fecha_pago, registrado_por`

// Register applies a payment atomically: the cuota row is locked, its
// balance updated, the pago inserted, and the notifications built by the
// callback persisted. Returns sql.ErrNoRows when no cuota matches the
// (cuota, alumno) pair.
func (r *PagoRepository) Register(ctx context.Context, pago *models.Pago, notify func(cuota models.Cuota) []models.NotificacionPago) (*models.Cuota, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin register pago: %w", err)
	}

	lockQuery := fmt.Sprintf(`SELECT %s FROM cuotas WHERE id = $1 AND alumno_id = $2 FOR UPDATE`, cuotaColumns)
	var cuota models.Cuota
	if err := tx.GetContext(ctx, &cuota, lockQuery, pago.CuotaID, pago.AlumnoID); err != nil {
		tx.Rollback() //nolint:errcheck
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock cuota: %w", err)
	}

	cuota.AplicarPago(pago.MontoPagado)

	const updateCuota = `UPDATE cuotas SET monto_pagado = $2, saldo_pendiente = $3, estado = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateCuota, cuota.ID, cuota.MontoPagado, cuota.SaldoPendiente, cuota.Estado); err != nil {
		tx.Rollback() //nolint:errcheck
		return nil, fmt.Errorf("update cuota balance: %w", err)
	}

	if pago.FechaPago.IsZero() {
		pago.FechaPago = time.Now()
	}
	const insertPago = `INSERT INTO pagos (alumno_id, cuota_id, monto_pagado, metodo, comprobante, fecha_pago, registrado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertPago,
		pago.AlumnoID, pago.CuotaID, pago.MontoPagado, pago.Metodo, pago.Comprobante,
		pago.FechaPago, pago.RegistradoPor).Scan(&pago.ID); err != nil {
		tx.Rollback() //nolint:errcheck
		return nil, fmt.Errorf("insert pago: %w", err)
	}

	if notify != nil {
		for _, notif := range notify(cuota) {
			if err := insertNotificacion(ctx, tx, &notif); err != nil {
				tx.Rollback() //nolint:errcheck
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit register pago: %w", err)
	}
	return &cuota, nil
}

// Eliminar reverses a payment atomically: the pago is snapshotted into
// pagos_eliminados, the owning cuota (when it still exists) is rolled back,
// the admin notification from the callback is persisted, and the original
// pago row deleted. Returns sql.ErrNoRows when the pago does not exist.
func (r *PagoRepository) Eliminar(ctx context.Context, pagoID, eliminadoPor int, motivo *string, notify func(pago models.Pago, cuota *models.Cuota) models.NotificacionPago) (*models.PagoEliminado, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin eliminar pago: %w", err)
	}

	lockPago := fmt.Sprintf(`SELECT %s FROM pagos WHERE id = $1 FOR UPDATE`, pagoColumns)
	var pago models.Pago
	if err := tx.GetContext(ctx, &pago, lockPago, pagoID); err != nil {
		tx.Rollback() //nolint:errcheck
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock pago: %w", err)
	}

	snapshot := models.PagoEliminado{
		PagoIDOriginal:   pago.ID,
		AlumnoID:         pago.AlumnoID,
		CuotaID:          &pago.CuotaID,
		MontoPagado:      pago.MontoPagado,
		Metodo:           pago.Metodo,
		Comprobante:      pago.Comprobante,
		FechaPago:        pago.FechaPago,
		FechaEliminacion: time.Now(),
		EliminadoPor:     eliminadoPor,
		Motivo:           motivo,
	}
	const insertSnapshot = `INSERT INTO pagos_eliminados (pago_id_original, alumno_id, cuota_id, monto_pagado,
			metodo, comprobante, fecha_pago, fecha_eliminacion, eliminado_por, motivo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertSnapshot,
		snapshot.PagoIDOriginal, snapshot.AlumnoID, snapshot.CuotaID, snapshot.MontoPagado,
		snapshot.Metodo, snapshot.Comprobante, snapshot.FechaPago, snapshot.FechaEliminacion,
		snapshot.EliminadoPor, snapshot.Motivo).Scan(&snapshot.ID); err != nil {
		tx.Rollback() //nolint:errcheck
		return nil, fmt.Errorf("insert pago eliminado: %w", err)
	}

	lockCuota := fmt.Sprintf(`SELECT %s FROM cuotas WHERE id = $1 FOR UPDATE`, cuotaColumns)
	var cuotaPtr *models.Cuota
	var cuota models.Cuota
	switch err := tx.GetContext(ctx, &cuota, lockCuota, pago.CuotaID); err {
	case nil:
		cuota.RevertirPago(pago.MontoPagado)
		const updateCuota = `UPDATE cuotas SET monto_pagado = $2, saldo_pendiente = $3, estado = $4 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, updateCuota, cuota.ID, cuota.MontoPagado, cuota.SaldoPendiente, cuota.Estado); err != nil {
			tx.Rollback() //nolint:errcheck
			return nil, fmt.Errorf("revert cuota balance: %w", err)
		}
		cuotaPtr = &cuota
	case sql.ErrNoRows:
		// the cuota was removed independently; the reversal still proceeds
	default:
		tx.Rollback() //nolint:errcheck
		return nil, fmt.Errorf("lock cuota for reversal: %w", err)
	}

	if notify != nil {
		notif := notify(pago, cuotaPtr)
		if err := insertNotificacion(ctx, tx, &notif); err != nil {
			tx.Rollback() //nolint:errcheck
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pagos WHERE id = $1`, pago.ID); err != nil {
		tx.Rollback() //nolint:errcheck
		return nil, fmt.Errorf("delete pago: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit eliminar pago: %w", err)
	}
	return &snapshot, nil
}

// FindByID returns a payment by identifier.
func (r *PagoRepository) FindByID(ctx context.Context, id int) (*models.Pago, error) {
	query := fmt.Sprintf(`SELECT %s FROM pagos WHERE id = $1 LIMIT 1`, pagoColumns)
	var pago models.Pago
	if err := r.db.GetContext(ctx, &pago, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find pago by id: %w", err)
	}
	return &pago, nil
}

// Update writes back the mutable fields of a payment.
func (r *PagoRepository) Update(ctx context.Context, pago *models.Pago) error {
	const query = `UPDATE pagos SET monto_pagado = :monto_pagado, metodo = :metodo, comprobante = :comprobante WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, pago); err != nil {
		return fmt.Errorf("update pago: %w", err)
	}
	return nil
}

// ListEliminados returns the reversal history, newest first.
func (r *PagoRepository) ListEliminados(ctx context.Context) ([]models.PagoEliminado, error) {
	const query = `SELECT id, pago_id_original, alumno_id, cuota_id, monto_pagado, metodo, comprobante,
			fecha_pago, fecha_eliminacion, eliminado_por, motivo
		FROM pagos_eliminados ORDER BY fecha_eliminacion DESC`
	var registros []models.PagoEliminado
	if err := r.db.SelectContext(ctx, &registros, query); err != nil {
		return nil, fmt.Errorf("list pagos eliminados: %w", err)
	}
	return registros, nil
}

type pagoAlumnoRow struct {
	models.Pago
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
}

func (r pagoAlumnoRow) toPagoConAlumno() models.PagoConAlumno {
	nombre := fmt.Sprintf("ID %d", r.AlumnoID)
	if r.FirstName.Valid {
		nombre = r.FirstName.String + " " + r.LastName.String
	}
	return models.PagoConAlumno{Pago: r.Pago, AlumnoNombre: nombre}
}

// FindLatest returns the most recent payment together with the student name.
func (r *PagoRepository) FindLatest(ctx context.Context) (*models.PagoConAlumno, error) {
	const query = `SELECT p.id, p.alumno_id, p.cuota_id, p.monto_pagado, p.metodo, p.comprobante,
			p.fecha_pago, p.registrado_por, d.first_name, d.last_name
		FROM pagos p LEFT JOIN user_details d ON d.user_id = p.alumno_id
		ORDER BY p.id DESC LIMIT 1`
	var row pagoAlumnoRow
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find latest pago: %w", err)
	}
	pago := row.toPagoConAlumno()
	return &pago, nil
}

// ListAll returns every payment with student names, newest first. Feeds the
// admin export report.
func (r *PagoRepository) ListAll(ctx context.Context) ([]models.PagoConAlumno, error) {
	const query = `SELECT p.id, p.alumno_id, p.cuota_id, p.monto_pagado, p.metodo, p.comprobante,
			p.fecha_pago, p.registrado_por, d.first_name, d.last_name
		FROM pagos p LEFT JOIN user_details d ON d.user_id = p.alumno_id
		ORDER BY p.fecha_pago DESC`
	var rows []pagoAlumnoRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all pagos: %w", err)
	}
	pagos := make([]models.PagoConAlumno, 0, len(rows))
	for _, row := range rows {
		pagos = append(pagos, row.toPagoConAlumno())
	}
	return pagos, nil
}

type pagoPeriodoRow struct {
	ID          int            `db:"id"`
	MontoPagado float64        `db:"monto_pagado"`
	FechaPago   time.Time      `db:"fecha_pago"`
	Metodo      string         `db:"metodo"`
	Periodo     sql.NullString `db:"periodo"`
}

// ListByAlumno returns a student's payments with the cuota period, newest
// first.
func (r *PagoRepository) ListByAlumno(ctx context.Context, alumnoID int) ([]models.PagoConPeriodo, error) {
	const query = `SELECT p.id, p.monto_pagado, p.fecha_pago, p.metodo, c.periodo
		FROM pagos p LEFT JOIN cuotas c ON c.id = p.cuota_id
		WHERE p.alumno_id = $1 ORDER BY p.fecha_pago DESC`
	var rows []pagoPeriodoRow
	if err := r.db.SelectContext(ctx, &rows, query, alumnoID); err != nil {
		return nil, fmt.Errorf("list pagos by alumno: %w", err)
	}

	pagos := make([]models.PagoConPeriodo, 0, len(rows))
	for _, row := range rows {
		periodo := "Sin período"
		if row.Periodo.Valid {
			periodo = row.Periodo.String
		}
		pagos = append(pagos, models.PagoConPeriodo{
			ID:          row.ID,
			MontoPagado: row.MontoPagado,
			FechaPago:   row.FechaPago.Format(time.DateOnly),
			Metodo:      row.Metodo,
			Periodo:     periodo,
		})
	}
	return pagos, nil
}

func insertNotificacion(ctx context.Context, tx *sqlx.Tx, notif *models.NotificacionPago) error {
	if notif.FechaEnvio.IsZero() {
		notif.FechaEnvio = time.Now()
	}
	const query = `INSERT INTO notificaciones_pago (alumno_id, cuota_id, tipo, fecha_envio, destinatario, mensaje)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := tx.QueryRowxContext(ctx, query,
		notif.AlumnoID, notif.CuotaID, notif.Tipo, notif.FechaEnvio, notif.Destinatario, notif.Mensaje).Scan(&notif.ID); err != nil {
		return fmt.Errorf("insert notificacion: %w", err)
	}
	return nil
}
