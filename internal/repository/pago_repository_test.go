package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escuela-adp/api-escuela/internal/models"
)

func cuotaRows(id, alumnoID int, montoAPagar, montoPagado float64, estado string) *sqlmock.Rows {
	saldo := montoAPagar - montoPagado
	if saldo < 0 {
		saldo = 0
	}
	return sqlmock.NewRows([]string{
		"id", "alumno_id", "periodo", "fecha_vencimiento", "monto_base", "ajuste_anterior",
		"monto_a_pagar", "monto_pagado", "saldo_pendiente", "estado", "notificada",
	}).AddRow(id, alumnoID, "2025-03", time.Now(), montoAPagar, 0.0, montoAPagar, montoPagado, saldo, estado, false)
}

func TestPagoRepositoryRegister(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPagoRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cuotas WHERE id").
		WithArgs(5, 2).
		WillReturnRows(cuotaRows(5, 2, 100, 0, models.EstadoPendiente))
	mock.ExpectExec("UPDATE cuotas SET monto_pagado").
		WithArgs(5, 60.0, 40.0, models.EstadoParcial).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO pagos").
		WithArgs(2, 5, 60.0, "efectivo", nil, sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery("INSERT INTO notificaciones_pago").
		WithArgs(2, 5, models.TipoPagoRegistrado, sqlmock.AnyArg(), models.DestinatarioAlumno, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectCommit()

	pago := &models.Pago{AlumnoID: 2, CuotaID: 5, MontoPagado: 60, Metodo: "efectivo", RegistradoPor: 1}
	cuota, err := repo.Register(context.Background(), pago, func(c models.Cuota) []models.NotificacionPago {
		return []models.NotificacionPago{{
			AlumnoID:     2,
			CuotaID:      c.ID,
			Tipo:         models.TipoPagoRegistrado,
			Destinatario: models.DestinatarioAlumno,
			Mensaje:      "pago",
		}}
	})
	require.NoError(t, err)
	assert.Equal(t, 11, pago.ID)
	assert.Equal(t, models.EstadoParcial, cuota.Estado)
	assert.Equal(t, 40.0, cuota.SaldoPendiente)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPagoRepositoryRegisterCuotaNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPagoRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM cuotas WHERE id").
		WithArgs(99, 2).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	pago := &models.Pago{AlumnoID: 2, CuotaID: 99, MontoPagado: 60, Metodo: "efectivo", RegistradoPor: 1}
	_, err := repo.Register(context.Background(), pago, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPagoRepositoryEliminar(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPagoRepository(db)
	fechaPago := time.Now().Add(-24 * time.Hour)

	mock.ExpectBegin()
	pagoRows := sqlmock.NewRows([]string{
		"id", "alumno_id", "cuota_id", "monto_pagado", "metodo", "comprobante", "fecha_pago", "registrado_por",
	}).AddRow(11, 2, 5, 60.0, "efectivo", nil, fechaPago, 1)
	mock.ExpectQuery("SELECT (.+) FROM pagos WHERE id").
		WithArgs(11).
		WillReturnRows(pagoRows)
	mock.ExpectQuery("INSERT INTO pagos_eliminados").
		WithArgs(11, 2, 5, 60.0, "efectivo", nil, fechaPago, sqlmock.AnyArg(), 9, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectQuery("SELECT (.+) FROM cuotas WHERE id").
		WithArgs(5).
		WillReturnRows(cuotaRows(5, 2, 100, 60, models.EstadoParcial))
	mock.ExpectExec("UPDATE cuotas SET monto_pagado").
		WithArgs(5, 0.0, 100.0, models.EstadoPendiente).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO notificaciones_pago").
		WithArgs(2, 5, models.TipoPagoEliminado, sqlmock.AnyArg(), models.DestinatarioAdmin, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	mock.ExpectExec("DELETE FROM pagos WHERE id").
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	registro, err := repo.Eliminar(context.Background(), 11, 9, nil, func(pago models.Pago, _ *models.Cuota) models.NotificacionPago {
		return models.NotificacionPago{
			AlumnoID:     pago.AlumnoID,
			CuotaID:      pago.CuotaID,
			Tipo:         models.TipoPagoEliminado,
			Destinatario: models.DestinatarioAdmin,
			Mensaje:      "eliminado",
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 31, registro.ID)
	assert.Equal(t, 11, registro.PagoIDOriginal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPagoRepositoryEliminarNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPagoRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM pagos WHERE id").
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Eliminar(context.Background(), 404, 9, nil, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPagoRepositoryListByAlumnoFallbackPeriodo(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPagoRepository(db)

	fecha := time.Date(2025, 3, 12, 16, 45, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "monto_pagado", "fecha_pago", "metodo", "periodo"}).
		AddRow(1, 60.0, fecha, "efectivo", "2025-03").
		AddRow(2, 40.0, fecha, "transferencia", nil)
	mock.ExpectQuery("SELECT p.id, p.monto_pagado").
		WithArgs(2).
		WillReturnRows(rows)

	pagos, err := repo.ListByAlumno(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pagos, 2)
	assert.Equal(t, "2025-03", pagos[0].Periodo)
	assert.Equal(t, "2025-03-12", pagos[0].FechaPago)
	assert.Equal(t, "Sin período", pagos[1].Periodo)
}
