package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindLatest(ctx context.Context) (*models.User, error)
	ListPaginated(ctx context.Context, body models.PaginatedUsersBody) ([]models.User, error)
	ListAlumnos(ctx context.Context) ([]models.User, error)
	CreateWithDetail(ctx context.Context, user *models.User, detail *models.UserDetail) error
	DeleteCascade(ctx context.Context, id int) error
}

type userDetailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	DNIExists(ctx context.Context, dni int) (bool, error)
}

// UserService provides account use cases.
type UserService struct {
	repo      userRepository
	details   userDetailChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, details userDetailChecker, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, details: details, validator: validate, logger: logger}
}

// Profile returns the authenticated user's record, detail included.
func (s *UserService) Profile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// ListPaginated returns a keyset page of users. NextCursor carries the last
// id of the page so the caller can ask for the next one; it is nil when the
// page came back empty.
func (s *UserService) ListPaginated(ctx context.Context, body models.PaginatedUsersBody) (*models.PaginatedUsers, error) {
	users, err := s.repo.ListPaginated(ctx, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	result := &models.PaginatedUsers{Users: users}
	if len(users) > 0 {
		last := users[len(users)-1].ID
		result.NextCursor = &last
	}
	return result, nil
}

// ListAlumnos returns every student account.
func (s *UserService) ListAlumnos(ctx context.Context) ([]models.User, error) {
	alumnos, err := s.repo.ListAlumnos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list alumnos")
	}
	return alumnos, nil
}

// Ultimo returns the most recently registered user.
func (s *UserService) Ultimo(ctx context.Context) (*models.User, error) {
	user, err := s.repo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no users registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest user")
	}
	return user, nil
}

// Register creates a user and its detail record in one unit. Duplicate email
// and dni are rejected up front; a duplicate username surfaces as an
// integrity error from the unique constraint.
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	if exists, err := s.details.EmailExists(ctx, req.Email); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrIntegrity, "email already registered")
	}

	if exists, err := s.details.DNIExists(ctx, req.DNI); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check dni")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrIntegrity, "dni already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Username: req.Username, PasswordHash: string(hash)}
	detail := &models.UserDetail{
		DNI:             req.DNI,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Type:            req.Type,
		Email:           req.Email,
		AnioLectivo:     req.AnioLectivo,
		EstadoAcademico: req.EstadoAcademico,
	}

	if err := s.repo.CreateWithDetail(ctx, user, detail); err != nil {
		if isIntegrityViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrIntegrity, "username already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("type", detail.Type))
	return user, nil
}

// Delete removes a user together with its payments and detail record.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}

	s.logger.Info("user deleted", zap.Int("user_id", id))
	return nil
}

// isIntegrityViolation reports whether the error is a Postgres class 23
// constraint violation.
func isIntegrityViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}
