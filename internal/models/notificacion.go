package models

import "time"

// Notification tipos.
const (
	TipoRecordatorioVencimiento = "recordatorio_vencimiento"
	TipoDeuda                   = "deuda"
	TipoPagoRegistrado          = "pago_registrado"
	TipoPagoEliminado           = "pago_eliminado"
)

// Notification destinatarios.
const (
	DestinatarioAlumno = "alumno"
	DestinatarioAdmin  = "admin"
)

// NotificacionPago is an append-only notice record emitted by cuota
// reminders, payment registration and payment reversal.
type NotificacionPago struct {
	ID           int       `db:"id" json:"id"`
	AlumnoID     int       `db:"alumno_id" json:"alumno_id"`
	CuotaID      int       `db:"cuota_id" json:"cuota_id"`
	Tipo         string    `db:"tipo" json:"tipo"`
	FechaEnvio   time.Time `db:"fecha_envio" json:"fecha_envio"`
	Destinatario string    `db:"destinatario" json:"destinatario"`
	Mensaje      string    `db:"mensaje" json:"mensaje"`
}

// NotificacionListado extends a notification with the student's name and the
// cuota period for the admin listing.
type NotificacionListado struct {
	NotificacionPago
	AlumnoNombre string `db:"-" json:"alumno_nombre"`
	Periodo      string `db:"-" json:"periodo"`
}
