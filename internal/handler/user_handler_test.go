package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	return s.user, nil
}

func newLoginRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &stubUserRepo{user: &models.User{
		ID:           3,
		Username:     "jperez",
		PasswordHash: string(hash),
		Detail:       &models.UserDetail{Type: "Alumno"},
	}}
	auth := service.NewAuthService(repo, nil, nil, service.AuthConfig{
		Secret:     "secret",
		Expiration: time.Hour,
	})

	h := NewUserHandler(auth, nil)
	r := gin.New()
	r.POST("/user/loginUser", h.Login)
	return r
}

func TestUserHandlerLoginSuccess(t *testing.T) {
	r := newLoginRouter(t)

	body := `{"username": "jperez", "password": "secreto123"}`
	req := httptest.NewRequest(http.MethodPost, "/user/loginUser", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Token  string `json:"token"`
		User   struct {
			Type string `json:"type"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alumno", resp.User.Type)
}

func TestUserHandlerLoginWrongPassword(t *testing.T) {
	r := newLoginRouter(t)

	body := `{"username": "jperez", "password": "otra"}`
	req := httptest.NewRequest(http.MethodPost, "/user/loginUser", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status": "error", "message": "Usuario o contraseña incorrectos"}`, w.Body.String())
}

func TestUserHandlerLoginMalformedBody(t *testing.T) {
	r := newLoginRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/user/loginUser", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status": "error", "message": "Usuario o contraseña incorrectos"}`, w.Body.String())
}
