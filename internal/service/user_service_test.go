package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type mockUserRepo struct {
	users     []models.User
	createErr error
	deleteErr error

	createdUser   *models.User
	createdDetail *models.UserDetail
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindLatest(ctx context.Context) (*models.User, error) {
	if len(m.users) == 0 {
		return nil, sql.ErrNoRows
	}
	return &m.users[len(m.users)-1], nil
}

func (m *mockUserRepo) ListPaginated(ctx context.Context, body models.PaginatedUsersBody) ([]models.User, error) {
	return m.users, nil
}

func (m *mockUserRepo) ListAlumnos(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *mockUserRepo) CreateWithDetail(ctx context.Context, user *models.User, detail *models.UserDetail) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 42
	m.createdUser = user
	m.createdDetail = detail
	return nil
}

func (m *mockUserRepo) DeleteCascade(ctx context.Context, id int) error {
	return m.deleteErr
}

type mockDetailChecker struct {
	emailTaken bool
	dniTaken   bool
}

func (m *mockDetailChecker) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailTaken, nil
}

func (m *mockDetailChecker) DNIExists(ctx context.Context, dni int) (bool, error) {
	return m.dniTaken, nil
}

func registerRequest() models.RegisterUserRequest {
	return models.RegisterUserRequest{
		Username:  "jperez",
		Password:  "secreto123",
		DNI:       30111222,
		FirstName: "Juan",
		LastName:  "Pérez",
		Type:      "Alumno",
		Email:     "jperez@example.com",
	}
}

func TestUserServiceRegister(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, &mockDetailChecker{}, nil, nil)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)

	require.NotNil(t, repo.createdDetail)
	assert.Equal(t, "Alumno", repo.createdDetail.Type)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.createdUser.PasswordHash), []byte("secreto123")))
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockDetailChecker{emailTaken: true}, nil, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrIntegrity.Code, appErr.Code)
	assert.Equal(t, "email already registered", appErr.Message)
}

func TestUserServiceRegisterDuplicateDNI(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockDetailChecker{dniTaken: true}, nil, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrIntegrity.Code, appErr.Code)
	assert.Equal(t, "dni already registered", appErr.Message)
}

func TestUserServiceRegisterDuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewUserService(repo, &mockDetailChecker{}, nil, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrIntegrity.Code, appErr.Code)
	assert.Equal(t, "username already registered", appErr.Message)
}

func TestUserServiceListPaginatedCursor(t *testing.T) {
	repo := &mockUserRepo{users: []models.User{{ID: 3}, {ID: 7}}}
	svc := NewUserService(repo, &mockDetailChecker{}, nil, nil)

	page, err := svc.ListPaginated(context.Background(), models.PaginatedUsersBody{Limit: 2})
	require.NoError(t, err)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, 7, *page.NextCursor)
}

func TestUserServiceListPaginatedEmpty(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, &mockDetailChecker{}, nil, nil)

	page, err := svc.ListPaginated(context.Background(), models.PaginatedUsersBody{Limit: 2})
	require.NoError(t, err)
	assert.Nil(t, page.NextCursor)
	assert.Empty(t, page.Users)
}

func TestUserServiceDeleteNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepo{deleteErr: sql.ErrNoRows}, &mockDetailChecker{}, nil, nil)

	err := svc.Delete(context.Background(), 77)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
