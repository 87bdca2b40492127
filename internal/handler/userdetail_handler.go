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

// UserDetailHandler exposes detail-record endpoints.
type UserDetailHandler struct {
	details *service.UserDetailService
}

// NewUserDetailHandler constructs UserDetailHandler.
func NewUserDetailHandler(details *service.UserDetailService) *UserDetailHandler {
	return &UserDetailHandler{details: details}
}

// Me godoc
// @Summary Get the authenticated user's detail record
// @Tags UserDetail
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /userdetail/me [get]
func (h *UserDetailHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	detail, err := h.details.GetByUserID(c.Request.Context(), claims.UserID())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Get godoc
// @Summary Get a detail record by user id
// @Tags UserDetail
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /userdetail/{user_id} [get]
func (h *UserDetailHandler) Get(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	detail, err := h.details.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Update godoc
// @Summary Partially update a detail record
// @Tags UserDetail
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param payload body models.UpdateUserDetailRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /userdetail/{user_id} [patch]
func (h *UserDetailHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	isAdmin := models.RoleAdmin.Matches(claims.Type)
	if !isAdmin && claims.UserID() != userID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "No autorizado"))
		return
	}

	var req models.UpdateUserDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	detail, err := h.details.Update(c.Request.Context(), userID, req, isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Create godoc
// @Summary Attach a detail record to an existing user
// @Tags UserDetail
// @Accept json
// @Produce json
// @Param payload body models.CreateUserDetailRequest true "Detail payload"
// @Success 201 {object} response.Envelope
// @Router /userdetail/ [post]
func (h *UserDetailHandler) Create(c *gin.Context) {
	var req models.CreateUserDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	detail, err := h.details.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Delete godoc
// @Summary Delete a detail record by user id
// @Tags UserDetail
// @Param user_id path int true "User ID"
// @Success 204
// @Router /userdetail/{user_id} [delete]
func (h *UserDetailHandler) Delete(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	if err := h.details.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
