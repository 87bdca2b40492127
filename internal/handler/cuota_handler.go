package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
	"github.com/escuela-adp/api-escuela/pkg/response"
)

// CuotaHandler exposes monthly due endpoints.
type CuotaHandler struct {
	cuotas *service.CuotaService
}

// NewCuotaHandler constructs CuotaHandler.
func NewCuotaHandler(cuotas *service.CuotaService) *CuotaHandler {
	return &CuotaHandler{cuotas: cuotas}
}

// Generar godoc
// @Summary Create a due for a student and period
// @Tags Cuotas
// @Accept json
// @Produce json
// @Param payload body models.GenerarCuotaRequest true "Due payload"
// @Success 201 {object} response.Envelope
// @Router /cuotas/ [post]
func (h *CuotaHandler) Generar(c *gin.Context) {
	var req models.GenerarCuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	cuota, err := h.cuotas.Generar(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cuota)
}

// List godoc
// @Summary List every due
// @Tags Cuotas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cuotas/ [get]
func (h *CuotaHandler) List(c *gin.Context) {
	cuotas, err := h.cuotas.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cuotas)
}
