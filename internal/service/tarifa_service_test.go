package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
)

type mockTarifaRepo struct {
	tarifas    []models.Tarifa
	vigente    *models.Tarifa
	vigenteErr error
	listCalls  int
}

func (m *mockTarifaRepo) Create(ctx context.Context, tarifa *models.Tarifa) error {
	tarifa.ID = 7
	m.tarifas = append(m.tarifas, *tarifa)
	return nil
}

func (m *mockTarifaRepo) FindVigente(ctx context.Context, today time.Time) (*models.Tarifa, error) {
	if m.vigenteErr != nil {
		return nil, m.vigenteErr
	}
	return m.vigente, nil
}

func (m *mockTarifaRepo) List(ctx context.Context) ([]models.Tarifa, error) {
	m.listCalls++
	return m.tarifas, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = map[string][]byte{}
	return nil
}

func newTestTarifaService(repo *mockTarifaRepo, cache *memoryCache) *TarifaService {
	cacheSvc := NewCacheService(cache, nil, time.Minute, nil, cache != nil)
	return NewTarifaService(repo, cacheSvc, nil, nil)
}

func TestTarifaServiceCreateInvalidWindow(t *testing.T) {
	svc := newTestTarifaService(&mockTarifaRepo{}, nil)

	desde := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, -1, 0)
	_, err := svc.Create(context.Background(), models.CrearTarifaRequest{
		MontoMensual: 15000,
		VigenteDesde: desde,
		VigenteHasta: &hasta,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestTarifaServiceVigenteNone(t *testing.T) {
	svc := newTestTarifaService(&mockTarifaRepo{vigenteErr: sql.ErrNoRows}, nil)

	_, err := svc.Vigente(context.Background())
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "No hay tarifa vigente registrada", appErr.Message)
}

func TestTarifaServiceListUsesCache(t *testing.T) {
	repo := &mockTarifaRepo{tarifas: []models.Tarifa{{ID: 1, MontoMensual: 15000}}}
	svc := newTestTarifaService(repo, newMemoryCache())

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestTarifaServiceCreateInvalidatesCache(t *testing.T) {
	repo := &mockTarifaRepo{tarifas: []models.Tarifa{{ID: 1, MontoMensual: 15000}}}
	svc := newTestTarifaService(repo, newMemoryCache())

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.CrearTarifaRequest{
		MontoMensual: 18000,
		VigenteDesde: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	tarifas, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tarifas, 2)
	assert.Equal(t, 2, repo.listCalls)
}
