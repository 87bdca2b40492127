package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
	"github.com/escuela-adp/api-escuela/pkg/export"
)

type pagoRepository interface {
	Register(ctx context.Context, pago *models.Pago, notify func(cuota models.Cuota) []models.NotificacionPago) (*models.Cuota, error)
	Eliminar(ctx context.Context, pagoID, eliminadoPor int, motivo *string, notify func(pago models.Pago, cuota *models.Cuota) models.NotificacionPago) (*models.PagoEliminado, error)
	FindByID(ctx context.Context, id int) (*models.Pago, error)
	Update(ctx context.Context, pago *models.Pago) error
	ListEliminados(ctx context.Context) ([]models.PagoEliminado, error)
	FindLatest(ctx context.Context) (*models.PagoConAlumno, error)
	ListAll(ctx context.Context) ([]models.PagoConAlumno, error)
	ListByAlumno(ctx context.Context, alumnoID int) ([]models.PagoConPeriodo, error)
}

// UltimoPago is the condensed view of the most recent payment.
type UltimoPago struct {
	Alumno      string  `json:"alumno"`
	MontoPagado float64 `json:"monto_pagado"`
	FechaPago   string  `json:"fecha_pago"`
	Metodo      string  `json:"metodo"`
}

// PagoService provides payment use cases.
type PagoService struct {
	repo      pagoRepository
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPagoService constructs a PagoService instance.
func NewPagoService(repo pagoRepository, csv *export.CSVExporter, pdf *export.PDFExporter, validate *validator.Validate, logger *zap.Logger) *PagoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PagoService{repo: repo, csv: csv, pdf: pdf, validator: validate, logger: logger}
}

// Registrar applies a payment to a cuota on behalf of the authenticated
// caller. An Alumno always pays its own cuota regardless of the alumno_id in
// the payload; an Admin may pay for any student. Both notifications are
// written in the same transaction as the payment.
func (s *PagoService) Registrar(ctx context.Context, claims *models.Claims, req models.RegistrarPagoRequest) (*models.Cuota, error) {
	if !models.RoleAdmin.Matches(claims.Type) && !models.RoleAlumno.Matches(claims.Type) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "No autorizado para registrar pagos")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pago payload")
	}

	alumnoID := claims.UserID()
	if models.RoleAdmin.Matches(claims.Type) && req.AlumnoID > 0 {
		alumnoID = req.AlumnoID
	}

	pago := &models.Pago{
		AlumnoID:      alumnoID,
		CuotaID:       req.CuotaID,
		MontoPagado:   req.MontoPagado,
		Metodo:        req.Metodo,
		Comprobante:   req.Comprobante,
		RegistradoPor: claims.UserID(),
	}

	cuota, err := s.repo.Register(ctx, pago, func(cuota models.Cuota) []models.NotificacionPago {
		monto := formatMonto(req.MontoPagado)
		return []models.NotificacionPago{
			{
				AlumnoID:     alumnoID,
				CuotaID:      cuota.ID,
				Tipo:         models.TipoPagoRegistrado,
				Destinatario: models.DestinatarioAlumno,
				Mensaje:      fmt.Sprintf("Se registró un pago de $%s para tu cuota del período %s.", monto, cuota.Periodo),
			},
			{
				AlumnoID:     alumnoID,
				CuotaID:      cuota.ID,
				Tipo:         models.TipoPagoRegistrado,
				Destinatario: models.DestinatarioAdmin,
				Mensaje:      fmt.Sprintf("El alumno ID %d realizó un pago de $%s para la cuota %s.", alumnoID, monto, cuota.Periodo),
			},
		}
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Cuota no encontrada")
		}
		if isIntegrityViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "Error de integridad al registrar pago")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register pago")
	}

	s.logger.Info("pago registrado",
		zap.Int("pago_id", pago.ID),
		zap.Int("alumno_id", alumnoID),
		zap.Float64("monto", pago.MontoPagado),
		zap.String("estado_cuota", cuota.Estado))
	return cuota, nil
}

// Eliminar reverses a payment, keeping an audit snapshot and notifying the
// admin inbox. The owning cuota's balance is rolled back when it still
// exists.
func (s *PagoService) Eliminar(ctx context.Context, pagoID, eliminadoPor int, req models.EliminarPagoRequest) (*models.PagoEliminado, error) {
	registro, err := s.repo.Eliminar(ctx, pagoID, eliminadoPor, req.Motivo, func(pago models.Pago, _ *models.Cuota) models.NotificacionPago {
		motivo := "No especificado"
		if req.Motivo != nil && *req.Motivo != "" {
			motivo = *req.Motivo
		}
		return models.NotificacionPago{
			AlumnoID:     pago.AlumnoID,
			CuotaID:      pago.CuotaID,
			Tipo:         models.TipoPagoEliminado,
			Destinatario: models.DestinatarioAdmin,
			Mensaje: fmt.Sprintf("Se eliminó el pago ID %d del alumno ID %d. Monto: $%s. Motivo: %s.",
				pago.ID, pago.AlumnoID, formatMonto(pago.MontoPagado), motivo),
		}
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Pago no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete pago")
	}

	s.logger.Info("pago eliminado",
		zap.Int("pago_id", pagoID),
		zap.Int("eliminado_por", eliminadoPor))
	return registro, nil
}

// Eliminados returns the reversal history, newest first.
func (s *PagoService) Eliminados(ctx context.Context) ([]models.PagoEliminado, error) {
	registros, err := s.repo.ListEliminados(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pagos eliminados")
	}
	return registros, nil
}

// Ultimo returns a condensed view of the most recent payment.
func (s *PagoService) Ultimo(ctx context.Context) (*UltimoPago, error) {
	pago, err := s.repo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No hay pagos registrados")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest pago")
	}

	return &UltimoPago{
		Alumno:      pago.AlumnoNombre,
		MontoPagado: pago.MontoPagado,
		FechaPago:   pago.FechaPago.Format("2006-01-02 15:04"),
		Metodo:      pago.Metodo,
	}, nil
}

// MisPagos returns the caller's own payments with cuota periods.
func (s *PagoService) MisPagos(ctx context.Context, claims *models.Claims) ([]models.PagoConPeriodo, error) {
	if !models.RoleAlumno.Matches(claims.Type) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Solo los alumnos pueden ver sus pagos")
	}

	pagos, err := s.repo.ListByAlumno(ctx, claims.UserID())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pagos")
	}
	return pagos, nil
}

// Editar applies the present fields of the request to a payment. Only the
// amount, method and receipt can change; the cuota balance is not recomputed.
func (s *PagoService) Editar(ctx context.Context, pagoID int, req models.EditarPagoRequest) (*models.Pago, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pago payload")
	}

	pago, err := s.repo.FindByID(ctx, pagoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Pago no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pago")
	}

	if req.MontoPagado != nil {
		pago.MontoPagado = *req.MontoPagado
	}
	if req.Metodo != nil {
		pago.Metodo = *req.Metodo
	}
	if req.Comprobante != nil {
		pago.Comprobante = req.Comprobante
	}

	if err := s.repo.Update(ctx, pago); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update pago")
	}
	return pago, nil
}

// Export formats. Anything else is rejected.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// Export renders the full payment history as a downloadable report.
func (s *PagoService) Export(ctx context.Context, format string) ([]byte, string, error) {
	pagos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pagos")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Alumno", "Monto", "Metodo", "Fecha"},
	}
	for _, pago := range pagos {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":     fmt.Sprintf("%d", pago.ID),
			"Alumno": pago.AlumnoNombre,
			"Monto":  formatMonto(pago.MontoPagado),
			"Metodo": pago.Metodo,
			"Fecha":  pago.FechaPago.Format(time.DateOnly),
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Historial de pagos")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
