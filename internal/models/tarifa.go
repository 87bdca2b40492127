package models

import "time"

// Tarifa is a monthly fee schedule row. Rates are never updated in place:
// a new row with a fresh validity window supersedes the previous one.
type Tarifa struct {
	ID           int        `db:"id" json:"id"`
	MontoMensual float64    `db:"monto_mensual" json:"monto_mensual"`
	VigenteDesde time.Time  `db:"vigente_desde" json:"vigente_desde"`
	VigenteHasta *time.Time `db:"vigente_hasta" json:"vigente_hasta,omitempty"`
	CreadoPor    *int       `db:"creado_por" json:"creado_por,omitempty"`
}

// CrearTarifaRequest is the payload for registering a new rate.
type CrearTarifaRequest struct {
	MontoMensual float64    `json:"monto_mensual" validate:"required,gt=0"`
	VigenteDesde time.Time  `json:"vigente_desde" validate:"required"`
	VigenteHasta *time.Time `json:"vigente_hasta"`
	CreadoPor    *int       `json:"creado_por"`
}
