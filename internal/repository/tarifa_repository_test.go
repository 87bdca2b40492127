package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escuela-adp/api-escuela/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestTarifaRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTarifaRepository(db)
	desde := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO tarifas").
		WithArgs(15000.0, desde, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	tarifa := &models.Tarifa{MontoMensual: 15000, VigenteDesde: desde}
	require.NoError(t, repo.Create(context.Background(), tarifa))
	assert.Equal(t, 7, tarifa.ID)
}

func TestTarifaRepositoryFindVigente(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTarifaRepository(db)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	desde := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "monto_mensual", "vigente_desde", "vigente_hasta", "creado_por"}).
		AddRow(3, 18000.0, desde, nil, nil)
	mock.ExpectQuery("SELECT id, monto_mensual, vigente_desde").
		WithArgs(today).
		WillReturnRows(rows)

	tarifa, err := repo.FindVigente(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 3, tarifa.ID)
	assert.Equal(t, 18000.0, tarifa.MontoMensual)
}

func TestTarifaRepositoryFindVigenteNone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTarifaRepository(db)
	today := time.Now()

	mock.ExpectQuery("SELECT id, monto_mensual, vigente_desde").
		WithArgs(today).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindVigente(context.Background(), today)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
