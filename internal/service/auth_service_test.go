package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type mockAuthRepo struct {
	userByUsername *models.User
	findErr        error
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.userByUsername, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	return m.userByUsername, nil
}

func newTestAuthService(repo authUserRepository) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "secret",
		Expiration: 24 * time.Hour,
		Timezone:   "America/Argentina/Buenos_Aires",
	})
}

func hashPassword(t *testing.T, raw string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{userByUsername: &models.User{
		ID:           3,
		Username:     "jperez",
		PasswordHash: hashPassword(t, "secreto123"),
		Detail:       &models.UserDetail{Type: "Alumno"},
	}}
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "jperez", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "Alumno", result.Role)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID())
	assert.Equal(t, "jperez", claims.Username)
	assert.Equal(t, "Alumno", claims.Type)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockAuthRepo{userByUsername: &models.User{
		ID:           3,
		Username:     "jperez",
		PasswordHash: hashPassword(t, "secreto123"),
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "jperez", Password: "otra"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	repo := &mockAuthRepo{findErr: sql.ErrNoRows}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "nadie", Password: "x"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceIssueTokenWithoutDetail(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	_, role, err := svc.IssueToken(&models.User{ID: 9, Username: "sinperfil"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDesconocido, role)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	past := time.Now().Add(-48 * time.Hour)
	claims := &models.Claims{
		Username: "jperez",
		Type:     "Alumno",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrTokenExpired.Code, appErr.Code)
}

func TestAuthServiceValidateTokenBadSignature(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("otherkey"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.NotEqual(t, appErrors.ErrTokenExpired.Code, appErr.Code)
}
