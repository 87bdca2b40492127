package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type userDetailRepository interface {
	FindByUserID(ctx context.Context, userID int) (*models.UserDetail, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	DNIExists(ctx context.Context, dni int) (bool, error)
	Create(ctx context.Context, detail *models.UserDetail) error
	Update(ctx context.Context, detail *models.UserDetail) error
	DeleteByUserID(ctx context.Context, userID int) error
}

// UserDetailService provides detail-record use cases.
type UserDetailService struct {
	repo      userDetailRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserDetailService constructs a UserDetailService instance.
func NewUserDetailService(repo userDetailRepository, validate *validator.Validate, logger *zap.Logger) *UserDetailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserDetailService{repo: repo, validator: validate, logger: logger}
}

// GetByUserID returns the detail record attached to a user.
func (s *UserDetailService) GetByUserID(ctx context.Context, userID int) (*models.UserDetail, error) {
	detail, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user detail not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user detail")
	}
	return detail, nil
}

// Create attaches a detail record to an existing user. Duplicate email and
// dni are rejected.
func (s *UserDetailService) Create(ctx context.Context, req models.CreateUserDetailRequest) (*models.UserDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user detail payload")
	}

	if exists, err := s.repo.EmailExists(ctx, req.Email); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrIntegrity, "email already registered")
	}

	if exists, err := s.repo.DNIExists(ctx, req.DNI); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check dni")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrIntegrity, "dni already registered")
	}

	detail := &models.UserDetail{
		DNI:             req.DNI,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Type:            req.Type,
		Email:           req.Email,
		AnioLectivo:     req.AnioLectivo,
		EstadoAcademico: req.EstadoAcademico,
		UserID:          req.UserID,
	}

	if err := s.repo.Create(ctx, detail); err != nil {
		if isIntegrityViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "detail conflicts with an existing record")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user detail")
	}

	s.logger.Info("user detail created", zap.Int("user_id", detail.UserID))
	return detail, nil
}

// Update applies the present fields of the request to a user's detail
// record. Only Admin callers may change the record's type.
func (s *UserDetailService) Update(ctx context.Context, userID int, req models.UpdateUserDetailRequest, callerIsAdmin bool) (*models.UserDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user detail payload")
	}

	if req.Type != nil && !callerIsAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only an admin can change the account type")
	}

	detail, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user detail not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user detail")
	}

	if req.DNI != nil {
		detail.DNI = *req.DNI
	}
	if req.FirstName != nil {
		detail.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		detail.LastName = *req.LastName
	}
	if req.Type != nil {
		detail.Type = *req.Type
	}
	if req.Email != nil {
		detail.Email = *req.Email
	}
	if req.AnioLectivo != nil {
		detail.AnioLectivo = req.AnioLectivo
	}
	if req.EstadoAcademico != nil {
		detail.EstadoAcademico = req.EstadoAcademico
	}

	if err := s.repo.Update(ctx, detail); err != nil {
		if isIntegrityViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "detail conflicts with an existing record")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user detail")
	}

	return detail, nil
}

// Delete removes the detail record attached to a user.
func (s *UserDetailService) Delete(ctx context.Context, userID int) error {
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user detail not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user detail")
	}

	s.logger.Info("user detail deleted", zap.Int("user_id", userID))
	return nil
}
