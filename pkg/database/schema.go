package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements creates the billing schema when absent. Order matters:
// dependents reference usuarios and cuotas.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_details (
		id SERIAL PRIMARY KEY,
		dni INTEGER UNIQUE NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		type VARCHAR(50) NOT NULL,
		email VARCHAR(80) UNIQUE NOT NULL,
		anio_lectivo INTEGER,
		estado_academico VARCHAR(30),
		user_id INTEGER NOT NULL REFERENCES usuarios(id)
	)`,
	`CREATE TABLE IF NOT EXISTS tarifas (
		id SERIAL PRIMARY KEY,
		monto_mensual NUMERIC(10,2) NOT NULL,
		vigente_desde DATE NOT NULL,
		vigente_hasta DATE,
		creado_por INTEGER REFERENCES usuarios(id)
	)`,
	`CREATE TABLE IF NOT EXISTS cuotas (
		id SERIAL PRIMARY KEY,
		alumno_id INTEGER NOT NULL REFERENCES usuarios(id),
		periodo VARCHAR(7) NOT NULL,
		fecha_vencimiento DATE NOT NULL,
		monto_base NUMERIC(10,2) NOT NULL,
		ajuste_anterior NUMERIC(10,2) NOT NULL DEFAULT 0,
		monto_a_pagar NUMERIC(10,2) NOT NULL,
		monto_pagado NUMERIC(10,2) NOT NULL DEFAULT 0,
		saldo_pendiente NUMERIC(10,2) NOT NULL DEFAULT 0,
		estado VARCHAR(20) NOT NULL DEFAULT 'pendiente',
		notificada BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS pagos (
		id SERIAL PRIMARY KEY,
		alumno_id INTEGER NOT NULL REFERENCES usuarios(id),
		cuota_id INTEGER NOT NULL REFERENCES cuotas(id),
		monto_pagado NUMERIC(10,2) NOT NULL,
		metodo VARCHAR(30) NOT NULL,
		comprobante VARCHAR(100),
		fecha_pago TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		registrado_por INTEGER NOT NULL REFERENCES usuarios(id)
	)`,
	`CREATE TABLE IF NOT EXISTS pagos_eliminados (
		id SERIAL PRIMARY KEY,
		pago_id_original INTEGER NOT NULL,
		alumno_id INTEGER NOT NULL REFERENCES usuarios(id),
		cuota_id INTEGER REFERENCES cuotas(id),
		monto_pagado NUMERIC(10,2) NOT NULL,
		metodo VARCHAR(30) NOT NULL,
		comprobante VARCHAR(100),
		fecha_pago TIMESTAMPTZ NOT NULL,
		fecha_eliminacion TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		eliminado_por INTEGER NOT NULL REFERENCES usuarios(id),
		motivo VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS notificaciones_pago (
		id SERIAL PRIMARY KEY,
		alumno_id INTEGER NOT NULL REFERENCES usuarios(id),
		cuota_id INTEGER NOT NULL REFERENCES cuotas(id),
		tipo VARCHAR(50) NOT NULL,
		fecha_envio TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		destinatario VARCHAR(20) NOT NULL,
		mensaje VARCHAR(255) NOT NULL
	)`,
}

// EnsureSchema creates all billing tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
