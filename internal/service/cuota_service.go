package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type cuotaRepository interface {
	Create(ctx context.Context, cuota *models.Cuota) error
	List(ctx context.Context) ([]models.Cuota, error)
}

type cuotaTarifaSource interface {
	FindVigente(ctx context.Context, today time.Time) (*models.Tarifa, error)
}

// CuotaService provides monthly due use cases.
type CuotaService struct {
	repo      cuotaRepository
	tarifas   cuotaTarifaSource
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCuotaService constructs a CuotaService instance.
func NewCuotaService(repo cuotaRepository, tarifas cuotaTarifaSource, validate *validator.Validate, logger *zap.Logger) *CuotaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CuotaService{repo: repo, tarifas: tarifas, validator: validate, logger: logger}
}

// Generar creates a due for a student and period. The monto_base is always
// the vigente tarifa's monthly amount; there is no due without a rate in
// force. The caller-supplied monto_a_pagar is stored as-is.
func (s *CuotaService) Generar(ctx context.Context, req models.GenerarCuotaRequest) (*models.Cuota, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cuota payload")
	}

	tarifa, err := s.tarifas.FindVigente(ctx, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No hay tarifa vigente")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vigente tarifa")
	}

	// saldo_pendiente starts at 0 and only becomes meaningful once the first
	// payment re-derives it from monto_a_pagar.
	cuota := &models.Cuota{
		AlumnoID:         req.AlumnoID,
		Periodo:          req.Periodo,
		FechaVencimiento: req.FechaVencimiento,
		MontoBase:        tarifa.MontoMensual,
		AjusteAnterior:   req.AjusteAnterior,
		MontoAPagar:      req.MontoAPagar,
		MontoPagado:      0,
		SaldoPendiente:   0,
		Estado:           models.EstadoPendiente,
		Notificada:       false,
	}

	if err := s.repo.Create(ctx, cuota); err != nil {
		if isIntegrityViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "cuota conflicts with an existing record")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cuota")
	}

	s.logger.Info("cuota generada",
		zap.Int("cuota_id", cuota.ID),
		zap.Int("alumno_id", cuota.AlumnoID),
		zap.String("periodo", cuota.Periodo))
	return cuota, nil
}

// List returns every due, newest first.
func (s *CuotaService) List(ctx context.Context) ([]models.Cuota, error) {
	cuotas, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cuotas")
	}
	return cuotas, nil
}
