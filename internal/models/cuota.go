package models

import "time"

// Cuota estados.
const (
	EstadoPendiente = "pendiente"
	EstadoParcial   = "parcial"
	EstadoPagada    = "pagada"
	EstadoVencida   = "vencida"
)

// Cuota is a monthly due for one student and one period ("YYYY-MM").
// Invariant: SaldoPendiente == max(0, MontoAPagar - MontoPagado).
type Cuota struct {
	ID               int       `db:"id" json:"id"`
	AlumnoID         int       `db:"alumno_id" json:"alumno_id"`
	Periodo          string    `db:"periodo" json:"periodo"`
	FechaVencimiento time.Time `db:"fecha_vencimiento" json:"fecha_vencimiento"`
	MontoBase        float64   `db:"monto_base" json:"monto_base"`
	AjusteAnterior   float64   `db:"ajuste_anterior" json:"ajuste_anterior"`
	MontoAPagar      float64   `db:"monto_a_pagar" json:"monto_a_pagar"`
	MontoPagado      float64   `db:"monto_pagado" json:"monto_pagado"`
	SaldoPendiente   float64   `db:"saldo_pendiente" json:"saldo_pendiente"`
	Estado           string    `db:"estado" json:"estado"`
	Notificada       bool      `db:"notificada" json:"notificada"`
}

// AplicarPago adds a payment to the balance and re-derives saldo and estado.
func (c *Cuota) AplicarPago(monto float64) {
	c.MontoPagado += monto
	c.SaldoPendiente = clampSaldo(c.MontoAPagar - c.MontoPagado)

	switch {
	case c.SaldoPendiente == 0:
		c.Estado = EstadoPagada
	case c.SaldoPendiente > 0 && c.SaldoPendiente < c.MontoAPagar:
		c.Estado = EstadoParcial
	default:
		c.Estado = EstadoPendiente
	}
}

// RevertirPago removes a reversed payment from the balance. The estado only
// downgrades here: a reversal never re-derives "pagada".
func (c *Cuota) RevertirPago(monto float64) {
	c.MontoPagado -= monto
	c.SaldoPendiente = clampSaldo(c.MontoAPagar - c.MontoPagado)

	if c.MontoPagado <= 0 {
		c.Estado = EstadoPendiente
	} else {
		c.Estado = EstadoParcial
	}
}

func clampSaldo(saldo float64) float64 {
	if saldo < 0 {
		return 0
	}
	return saldo
}

// GenerarCuotaRequest is the payload for creating a due. MontoAPagar is
// caller-supplied; monto_base always comes from the vigente tarifa.
type GenerarCuotaRequest struct {
	AlumnoID         int       `json:"alumno_id" validate:"required"`
	Periodo          string    `json:"periodo" validate:"required,len=7"`
	FechaVencimiento time.Time `json:"fecha_vencimiento" validate:"required"`
	AjusteAnterior   float64   `json:"ajuste_anterior"`
	MontoAPagar      float64   `json:"monto_a_pagar" validate:"required,gt=0"`
}

// CuotaAlumno is a cuota joined with its student's display name, used when
// building reminder notifications.
type CuotaAlumno struct {
	Cuota
	AlumnoNombre string `db:"-" json:"alumno_nombre"`
}
