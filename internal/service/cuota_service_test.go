package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type mockCuotaRepo struct {
	created *models.Cuota
}

func (m *mockCuotaRepo) Create(ctx context.Context, cuota *models.Cuota) error {
	cuota.ID = 5
	m.created = cuota
	return nil
}

func (m *mockCuotaRepo) List(ctx context.Context) ([]models.Cuota, error) {
	return nil, nil
}

func TestCuotaServiceGenerar(t *testing.T) {
	repo := &mockCuotaRepo{}
	tarifas := &mockTarifaRepo{vigente: &models.Tarifa{ID: 3, MontoMensual: 15000}}
	svc := NewCuotaService(repo, tarifas, nil, nil)

	cuota, err := svc.Generar(context.Background(), models.GenerarCuotaRequest{
		AlumnoID:         4,
		Periodo:          "2025-03",
		FechaVencimiento: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		AjusteAnterior:   500,
		MontoAPagar:      15500,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cuota.ID)
	assert.Equal(t, 15000.0, cuota.MontoBase)
	assert.Equal(t, 0.0, cuota.MontoPagado)
	assert.Equal(t, models.EstadoPendiente, cuota.Estado)
	assert.False(t, cuota.Notificada)
}

func TestCuotaServiceGenerarSaldoInicialCero(t *testing.T) {
	repo := &mockCuotaRepo{}
	svc := NewCuotaService(repo, &mockTarifaRepo{vigente: &models.Tarifa{MontoMensual: 15000}}, nil, nil)

	cuota, err := svc.Generar(context.Background(), models.GenerarCuotaRequest{
		AlumnoID:         4,
		Periodo:          "2025-03",
		FechaVencimiento: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		MontoAPagar:      15500,
	})
	require.NoError(t, err)

	// The balance stays at zero until the first payment re-derives it.
	assert.Equal(t, 0.0, cuota.SaldoPendiente)
	assert.Equal(t, 0.0, repo.created.SaldoPendiente)
}

func TestCuotaServiceGenerarSinTarifa(t *testing.T) {
	svc := NewCuotaService(&mockCuotaRepo{}, &mockTarifaRepo{vigenteErr: sql.ErrNoRows}, nil, nil)

	_, err := svc.Generar(context.Background(), models.GenerarCuotaRequest{
		AlumnoID:         4,
		Periodo:          "2025-03",
		FechaVencimiento: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		MontoAPagar:      15000,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "No hay tarifa vigente", appErr.Message)
}

func TestCuotaServiceGenerarPeriodoInvalido(t *testing.T) {
	svc := NewCuotaService(&mockCuotaRepo{}, &mockTarifaRepo{vigente: &models.Tarifa{MontoMensual: 15000}}, nil, nil)

	_, err := svc.Generar(context.Background(), models.GenerarCuotaRequest{
		AlumnoID:         4,
		Periodo:          "2025-3",
		FechaVencimiento: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		MontoAPagar:      15000,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
