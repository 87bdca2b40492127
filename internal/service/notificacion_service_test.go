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

type mockNotificacionRepo struct {
	cuotas     []models.CuotaAlumno
	listado    []models.NotificacionListado
	limitAsked int
	dueAsked   time.Time
}

func (m *mockNotificacionRepo) CreateReminders(ctx context.Context, due time.Time, build func(cuota models.CuotaAlumno) []models.NotificacionPago) ([]models.NotificacionPago, error) {
	m.dueAsked = due
	if len(m.cuotas) == 0 {
		return nil, sql.ErrNoRows
	}
	var notifs []models.NotificacionPago
	for _, cuota := range m.cuotas {
		notifs = append(notifs, build(cuota)...)
	}
	return notifs, nil
}

func (m *mockNotificacionRepo) ListRecientes(ctx context.Context, limit int) ([]models.NotificacionListado, error) {
	m.limitAsked = limit
	return m.listado, nil
}

func TestNotificacionServiceGenerarRecordatorios(t *testing.T) {
	vencimiento := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockNotificacionRepo{cuotas: []models.CuotaAlumno{{
		Cuota: models.Cuota{
			ID:               5,
			AlumnoID:         4,
			Periodo:          "2025-04",
			FechaVencimiento: vencimiento,
			MontoAPagar:      15500,
		},
		AlumnoNombre: "Juan Pérez",
	}}}
	svc := NewNotificacionService(repo, nil)

	notifs, err := svc.GenerarRecordatorios(context.Background())
	require.NoError(t, err)
	require.Len(t, notifs, 2)

	assert.Equal(t, models.DestinatarioAlumno, notifs[0].Destinatario)
	assert.Equal(t, "Recordatorio: Tu cuota del período 2025-04 vence el 10/04/2025. Monto a pagar: $15,500.00", notifs[0].Mensaje)
	assert.Equal(t, models.DestinatarioAdmin, notifs[1].Destinatario)
	assert.Equal(t, "El alumno Juan Pérez tiene una cuota próxima a vencer el 10/04/2025.", notifs[1].Mensaje)

	expected := time.Now().AddDate(0, 0, 7)
	assert.Equal(t, expected.Day(), repo.dueAsked.Day())
	assert.Equal(t, 0, repo.dueAsked.Hour())
}

func TestNotificacionServiceGenerarRecordatoriosSinCuotas(t *testing.T) {
	svc := NewNotificacionService(&mockNotificacionRepo{}, nil)

	_, err := svc.GenerarRecordatorios(context.Background())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "No hay cuotas próximas a vencer.", appErr.Message)
}

func TestNotificacionServiceListarVacio(t *testing.T) {
	repo := &mockNotificacionRepo{}
	svc := NewNotificacionService(repo, nil)

	_, err := svc.Listar(context.Background())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "No hay notificaciones registradas.", appErr.Message)
	assert.Equal(t, 100, repo.limitAsked)
}
