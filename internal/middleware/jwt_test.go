package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
)

type stubAuthRepo struct{}

func (stubAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func (stubAuthRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	return nil, nil
}

func newProtectedRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(stubAuthRepo{}, nil, nil, service.AuthConfig{
		Secret:     "secret",
		Expiration: time.Hour,
	})

	r := gin.New()
	authed := r.Group("/", JWT(auth))
	authed.GET("/cualquiera", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	authed.GET("/solo-admin", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, auth
}

func issueToken(t *testing.T, auth *service.AuthService, role string) string {
	token, _, err := auth.IssueToken(&models.User{
		ID:       3,
		Username: "jperez",
		Detail:   &models.UserDetail{Type: role},
	})
	require.NoError(t, err)
	return token
}

func TestJWTMissingHeader(t *testing.T) {
	r, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cualquiera", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	r, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cualquiera", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTBearerCaseInsensitive(t *testing.T) {
	r, auth := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/cualquiera", nil)
	req.Header.Set("Authorization", "bearer "+issueToken(t, auth, "Alumno"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesForbidsAlumno(t *testing.T) {
	r, auth := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/solo-admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, auth, "Alumno"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	r, auth := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/solo-admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, auth, "Admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
