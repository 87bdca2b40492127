package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
	"github.com/escuela-adp/api-escuela/pkg/response"
)

// TarifaHandler exposes fee schedule endpoints.
type TarifaHandler struct {
	tarifas *service.TarifaService
}

// NewTarifaHandler constructs TarifaHandler.
func NewTarifaHandler(tarifas *service.TarifaService) *TarifaHandler {
	return &TarifaHandler{tarifas: tarifas}
}

// Create godoc
// @Summary Register a new monthly rate
// @Tags Tarifas
// @Accept json
// @Produce json
// @Param payload body models.CrearTarifaRequest true "Rate payload"
// @Success 201 {object} response.Envelope
// @Router /tarifas/ [post]
func (h *TarifaHandler) Create(c *gin.Context) {
	var req models.CrearTarifaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	tarifa, err := h.tarifas.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tarifa)
}

// Vigente godoc
// @Summary Get the rate in force today
// @Tags Tarifas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tarifas/vigente [get]
func (h *TarifaHandler) Vigente(c *gin.Context) {
	tarifa, err := h.tarifas.Vigente(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tarifa)
}

// List godoc
// @Summary List every rate
// @Tags Tarifas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tarifas/ [get]
func (h *TarifaHandler) List(c *gin.Context) {
	tarifas, err := h.tarifas.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tarifas)
}
