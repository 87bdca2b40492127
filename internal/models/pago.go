package models

import "time"

// Pago is a payment applied against a cuota.
type Pago struct {
	ID            int       `db:"id" json:"id"`
	AlumnoID      int       `db:"alumno_id" json:"alumno_id"`
	CuotaID       int       `db:"cuota_id" json:"cuota_id"`
	MontoPagado   float64   `db:"monto_pagado" json:"monto_pagado"`
	Metodo        string    `db:"metodo" json:"metodo"`
	Comprobante   *string   `db:"comprobante" json:"comprobante,omitempty"`
	FechaPago     time.Time `db:"fecha_pago" json:"fecha_pago"`
	RegistradoPor int       `db:"registrado_por" json:"registrado_por"`
}

// PagoEliminado is the immutable audit snapshot of a reversed payment.
type PagoEliminado struct {
	ID               int       `db:"id" json:"id"`
	PagoIDOriginal   int       `db:"pago_id_original" json:"pago_id_original"`
	AlumnoID         int       `db:"alumno_id" json:"alumno_id"`
	CuotaID          *int      `db:"cuota_id" json:"cuota_id,omitempty"`
	MontoPagado      float64   `db:"monto_pagado" json:"monto_pagado"`
	Metodo           string    `db:"metodo" json:"metodo"`
	Comprobante      *string   `db:"comprobante" json:"comprobante,omitempty"`
	FechaPago        time.Time `db:"fecha_pago" json:"fecha_pago"`
	FechaEliminacion time.Time `db:"fecha_eliminacion" json:"fecha_eliminacion"`
	EliminadoPor     int       `db:"eliminado_por" json:"eliminado_por"`
	Motivo           *string   `db:"motivo" json:"motivo,omitempty"`
}

// RegistrarPagoRequest is the payload for registering a payment. AlumnoID is
// only honored for Admin callers; Alumno callers always pay their own cuota.
type RegistrarPagoRequest struct {
	AlumnoID    int     `json:"alumno_id"`
	CuotaID     int     `json:"cuota_id" validate:"required"`
	MontoPagado float64 `json:"monto_pagado" validate:"required,gt=0"`
	Metodo      string  `json:"metodo" validate:"required"`
	Comprobante *string `json:"comprobante"`
}

// EliminarPagoRequest carries the optional reversal reason.
type EliminarPagoRequest struct {
	Motivo *string `json:"motivo"`
}

// EditarPagoRequest is the allow-list of updatable payment fields. Absent
// fields stay untouched; nothing else on the record can be changed.
type EditarPagoRequest struct {
	MontoPagado *float64 `json:"monto_pagado" validate:"omitempty,gt=0"`
	Metodo      *string  `json:"metodo"`
	Comprobante *string  `json:"comprobante"`
}

// PagoConPeriodo is a payment row joined with its cuota's period, shown to
// students listing their own payments. FechaPago is pre-rendered as
// "YYYY-MM-DD", the shape the frontend already parses.
type PagoConPeriodo struct {
	ID          int     `json:"id"`
	MontoPagado float64 `json:"monto_pagado"`
	FechaPago   string  `json:"fecha_pago"`
	Metodo      string  `json:"metodo"`
	Periodo     string  `json:"periodo"`
}

// PagoConAlumno is a payment joined with the student's display name, used by
// the latest-payment query and the export report.
type PagoConAlumno struct {
	Pago
	AlumnoNombre string `db:"-" json:"alumno"`
}
