package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/service"
	"github.com/escuela-adp/api-escuela/pkg/response"
)

// NotificacionHandler exposes notification endpoints.
type NotificacionHandler struct {
	notificaciones *service.NotificacionService
}

// NewNotificacionHandler constructs NotificacionHandler.
func NewNotificacionHandler(notificaciones *service.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notificaciones: notificaciones}
}

// GenerarRecordatorios godoc
// @Summary Generate due-date reminders for cuotas expiring in seven days
// @Tags Notificaciones
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /notificaciones/recordatorios [post]
func (h *NotificacionHandler) GenerarRecordatorios(c *gin.Context) {
	notifs, err := h.notificaciones.GenerarRecordatorios(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notifs)
}

// Listar godoc
// @Summary List the most recent notifications
// @Tags Notificaciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notificaciones/listar [get]
func (h *NotificacionHandler) Listar(c *gin.Context) {
	notifs, err := h.notificaciones.Listar(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifs)
}
