package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
	"github.com/escuela-adp/api-escuela/pkg/response"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(auth *service.AuthService, users *service.UserService) *UserHandler {
	return &UserHandler{auth: auth, users: users}
}

// Login godoc
// @Summary Authenticate a user
// @Tags User
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /user/loginUser [post]
//
// The response shape here is the legacy contract the frontend depends on, not
// the common envelope: {"status", "token", "user": {"type"}} on success and
// {"status": "error", "message"} on failure. Bad credentials always come back
// as 401, never 500.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Usuario o contraseña incorrectos",
		})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status == http.StatusUnauthorized || appErr.Status == http.StatusBadRequest {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Usuario o contraseña incorrectos",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Error interno del servidor",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  result.Token,
		"user":   gin.H{"type": result.Role},
	})
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.users.Profile(c.Request.Context(), claims.UserID())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// ListPaginated godoc
// @Summary List users with keyset pagination and filtering
// @Tags User
// @Accept json
// @Produce json
// @Param payload body models.PaginatedUsersBody true "Pagination and filters"
// @Success 200 {object} response.Envelope
// @Router /user/paginated/filtered-sync [post]
func (h *UserHandler) ListPaginated(c *gin.Context) {
	var body models.PaginatedUsersBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	page, err := h.users.ListPaginated(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Register godoc
// @Summary Create a user with its detail record
// @Tags User
// @Accept json
// @Produce json
// @Param payload body models.RegisterUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Router /user/register/full [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Alumnos godoc
// @Summary List every student account
// @Tags User
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/alumnos [get]
func (h *UserHandler) Alumnos(c *gin.Context) {
	alumnos, err := h.users.ListAlumnos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alumnos)
}

// Ultimo godoc
// @Summary Get the most recently registered user
// @Tags User
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/ultimo [get]
func (h *UserHandler) Ultimo(c *gin.Context) {
	user, err := h.users.Ultimo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if user.Detail == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "No hay usuarios registrados"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"firstName": user.Detail.FirstName,
		"lastName":  user.Detail.LastName,
	})
}

// Delete godoc
// @Summary Delete a user with its payments and detail
// @Tags User
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /user/{user_id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"msg": "Usuario eliminado correctamente"})
}
