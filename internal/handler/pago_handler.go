package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
	"github.com/escuela-adp/api-escuela/pkg/response"
)

// PagoHandler exposes payment endpoints.
type PagoHandler struct {
	pagos *service.PagoService
}

// NewPagoHandler constructs PagoHandler.
func NewPagoHandler(pagos *service.PagoService) *PagoHandler {
	return &PagoHandler{pagos: pagos}
}

// Registrar godoc
// @Summary Register a payment against a cuota
// @Tags Pagos
// @Accept json
// @Produce json
// @Param payload body models.RegistrarPagoRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /pagos/nuevo [post]
func (h *PagoHandler) Registrar(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RegistrarPagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	cuota, err := h.pagos.Registrar(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Pago registrado y notificaciones enviadas correctamente",
		"cuota":   cuota,
	})
}

// Eliminar godoc
// @Summary Reverse a payment keeping an audit snapshot
// @Tags Pagos
// @Accept json
// @Produce json
// @Param pago_id path int true "Payment ID"
// @Param payload body models.EliminarPagoRequest false "Reversal reason"
// @Success 200 {object} response.Envelope
// @Router /pagos/eliminar/{pago_id} [delete]
func (h *PagoHandler) Eliminar(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	pagoID, err := strconv.Atoi(c.Param("pago_id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pago id"))
		return
	}

	// the body is optional on this route
	var req models.EliminarPagoRequest
	_ = c.ShouldBindJSON(&req)

	registro, err := h.pagos.Eliminar(c.Request.Context(), pagoID, claims.UserID(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":  "Pago eliminado, registrado y notificado",
		"registro": registro,
	})
}

// Eliminados godoc
// @Summary List reversed payments, newest first
// @Tags Pagos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pagos/eliminados [get]
func (h *PagoHandler) Eliminados(c *gin.Context) {
	registros, err := h.pagos.Eliminados(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, registros)
}

// Ultimo godoc
// @Summary Get the most recent payment
// @Tags Pagos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pagos/ultimo [get]
func (h *PagoHandler) Ultimo(c *gin.Context) {
	ultimo, err := h.pagos.Ultimo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ultimo)
}

// MisPagos godoc
// @Summary List the authenticated student's payments
// @Tags Pagos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pagos/mis [get]
func (h *PagoHandler) MisPagos(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	pagos, err := h.pagos.MisPagos(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pagos)
}

// Editar godoc
// @Summary Partially update a payment
// @Tags Pagos
// @Accept json
// @Produce json
// @Param pago_id path int true "Payment ID"
// @Param payload body models.EditarPagoRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /pagos/editar/{pago_id} [patch]
func (h *PagoHandler) Editar(c *gin.Context) {
	pagoID, err := strconv.Atoi(c.Param("pago_id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pago id"))
		return
	}

	var req models.EditarPagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	pago, err := h.pagos.Editar(c.Request.Context(), pagoID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message": "Pago actualizado correctamente",
		"pago":    pago,
	})
}

// Export godoc
// @Summary Export the payment history as CSV or PDF
// @Tags Pagos
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /pagos/export [get]
func (h *PagoHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)

	payload, contentType, err := h.pagos.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("pagos_%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
