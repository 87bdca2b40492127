package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

const notificacionesLimit = 100

type notificacionRepository interface {
	CreateReminders(ctx context.Context, due time.Time, build func(cuota models.CuotaAlumno) []models.NotificacionPago) ([]models.NotificacionPago, error)
	ListRecientes(ctx context.Context, limit int) ([]models.NotificacionListado, error)
}

// NotificacionService provides notification use cases.
type NotificacionService struct {
	repo   notificacionRepository
	logger *zap.Logger
}

// NewNotificacionService constructs a NotificacionService instance.
func NewNotificacionService(repo notificacionRepository, logger *zap.Logger) *NotificacionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificacionService{repo: repo, logger: logger}
}

// GenerarRecordatorios notifies every cuota due in exactly seven days that
// has not been reminded yet. Each qualifying cuota produces one alumno and
// one admin notification and is marked notificada, all in one transaction.
// Re-running the operation on the same day is a no-op that reports not found.
func (s *NotificacionService) GenerarRecordatorios(ctx context.Context) ([]models.NotificacionPago, error) {
	objetivo := time.Now().AddDate(0, 0, 7)
	objetivo = time.Date(objetivo.Year(), objetivo.Month(), objetivo.Day(), 0, 0, 0, 0, objetivo.Location())

	notifs, err := s.repo.CreateReminders(ctx, objetivo, func(cuota models.CuotaAlumno) []models.NotificacionPago {
		return []models.NotificacionPago{
			{
				AlumnoID:     cuota.AlumnoID,
				CuotaID:      cuota.ID,
				Tipo:         models.TipoRecordatorioVencimiento,
				Destinatario: models.DestinatarioAlumno,
				Mensaje: fmt.Sprintf("Recordatorio: Tu cuota del período %s vence el %s. Monto a pagar: $%s",
					cuota.Periodo, formatFecha(cuota.FechaVencimiento), formatMonto(cuota.MontoAPagar)),
			},
			{
				AlumnoID:     cuota.AlumnoID,
				CuotaID:      cuota.ID,
				Tipo:         models.TipoRecordatorioVencimiento,
				Destinatario: models.DestinatarioAdmin,
				Mensaje: fmt.Sprintf("El alumno %s tiene una cuota próxima a vencer el %s.",
					cuota.AlumnoNombre, formatFecha(cuota.FechaVencimiento)),
			},
		}
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No hay cuotas próximas a vencer.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate reminders")
	}

	s.logger.Info("recordatorios generados", zap.Int("count", len(notifs)))
	return notifs, nil
}

// Listar returns the most recent notifications with student names and cuota
// periods.
func (s *NotificacionService) Listar(ctx context.Context) ([]models.NotificacionListado, error) {
	notifs, err := s.repo.ListRecientes(ctx, notificacionesLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notificaciones")
	}
	if len(notifs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "No hay notificaciones registradas.")
	}
	return notifs, nil
}
