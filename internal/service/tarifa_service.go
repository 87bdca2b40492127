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

const (
	tarifasCacheKey     = "tarifas:list"
	tarifasCachePattern = "tarifas:*"
)

type tarifaRepository interface {
	Create(ctx context.Context, tarifa *models.Tarifa) error
	FindVigente(ctx context.Context, today time.Time) (*models.Tarifa, error)
	List(ctx context.Context) ([]models.Tarifa, error)
}

// TarifaService provides fee schedule use cases.
type TarifaService struct {
	repo      tarifaRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTarifaService constructs a TarifaService instance.
func NewTarifaService(repo tarifaRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TarifaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TarifaService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create registers a new rate row and invalidates the cached listing.
func (s *TarifaService) Create(ctx context.Context, req models.CrearTarifaRequest) (*models.Tarifa, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tarifa payload")
	}

	if req.VigenteHasta != nil && req.VigenteHasta.Before(req.VigenteDesde) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "vigente_hasta precedes vigente_desde")
	}

	tarifa := &models.Tarifa{
		MontoMensual: req.MontoMensual,
		VigenteDesde: req.VigenteDesde,
		VigenteHasta: req.VigenteHasta,
		CreadoPor:    req.CreadoPor,
	}

	if err := s.repo.Create(ctx, tarifa); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tarifa")
	}

	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, tarifasCachePattern)
	}

	s.logger.Info("tarifa created", zap.Int("tarifa_id", tarifa.ID), zap.Float64("monto_mensual", tarifa.MontoMensual))
	return tarifa, nil
}

// Vigente returns the rate in force today. The result is always recomputed
// from the database so a rate change takes effect immediately.
func (s *TarifaService) Vigente(ctx context.Context) (*models.Tarifa, error) {
	tarifa, err := s.repo.FindVigente(ctx, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No hay tarifa vigente registrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vigente tarifa")
	}
	return tarifa, nil
}

// List returns every rate, served from cache when available.
func (s *TarifaService) List(ctx context.Context) ([]models.Tarifa, error) {
	var cached []models.Tarifa
	if hit, err := s.cache.Get(ctx, tarifasCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	tarifas, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tarifas")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, tarifasCacheKey, tarifas, 0)
	}
	return tarifas, nil
}
