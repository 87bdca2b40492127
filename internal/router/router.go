package router

import (
	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/handler"
	"github.com/escuela-adp/api-escuela/internal/middleware"
	"github.com/escuela-adp/api-escuela/internal/models"
	"github.com/escuela-adp/api-escuela/internal/service"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Users          *handler.UserHandler
	UserDetails    *handler.UserDetailHandler
	Tarifas        *handler.TarifaHandler
	Cuotas         *handler.CuotaHandler
	Pagos          *handler.PagoHandler
	Notificaciones *handler.NotificacionHandler
	Metrics        *handler.MetricsHandler
}

// Register mounts every route on the engine. Guard placement mirrors the
// frontend contract: tarifas and cuotas stay open, everything else sits
// behind the JWT middleware with per-route role checks.
func Register(r *gin.Engine, auth *service.AuthService, h Handlers) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	r.GET("/", h.Metrics.Root)
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	user := r.Group("/user")
	{
		user.POST("/loginUser", h.Users.Login)

		authed := user.Group("", middleware.JWT(auth))
		authed.GET("/profile", h.Users.Profile)
		authed.POST("/register/full", adminOnly, h.Users.Register)
		authed.POST("/paginated/filtered-sync", adminOnly, h.Users.ListPaginated)
		authed.GET("/alumnos", adminOnly, h.Users.Alumnos)
		authed.GET("/ultimo", adminOnly, h.Users.Ultimo)
		authed.DELETE("/:user_id", adminOnly, h.Users.Delete)
	}

	detail := r.Group("/userdetail", middleware.JWT(auth))
	{
		detail.GET("/me", h.UserDetails.Me)
		detail.GET("/:user_id", adminOnly, h.UserDetails.Get)
		detail.PATCH("/:user_id", h.UserDetails.Update)
		detail.POST("/", adminOnly, h.UserDetails.Create)
		detail.DELETE("/:user_id", adminOnly, h.UserDetails.Delete)
	}

	tarifas := r.Group("/tarifas")
	{
		tarifas.POST("/", h.Tarifas.Create)
		tarifas.GET("/vigente", h.Tarifas.Vigente)
		tarifas.GET("/", h.Tarifas.List)
	}

	cuotas := r.Group("/cuotas")
	{
		cuotas.POST("/", h.Cuotas.Generar)
		cuotas.GET("/", h.Cuotas.List)
	}

	pagos := r.Group("/pagos", middleware.JWT(auth))
	{
		pagos.POST("/nuevo", h.Pagos.Registrar)
		pagos.DELETE("/eliminar/:pago_id", adminOnly, h.Pagos.Eliminar)
		pagos.GET("/eliminados", adminOnly, h.Pagos.Eliminados)
		pagos.GET("/ultimo", adminOnly, h.Pagos.Ultimo)
		pagos.GET("/mis", h.Pagos.MisPagos)
		pagos.PATCH("/editar/:pago_id", adminOnly, h.Pagos.Editar)
		pagos.GET("/export", adminOnly, h.Pagos.Export)
	}

	notificaciones := r.Group("/notificaciones", middleware.JWT(auth), adminOnly)
	{
		notificaciones.POST("/recordatorios", h.Notificaciones.GenerarRecordatorios)
		notificaciones.GET("/listar", h.Notificaciones.Listar)
	}
}
