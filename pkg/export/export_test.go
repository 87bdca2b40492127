package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentsDataset() Dataset {
	return Dataset{
		Headers: []string{"ID", "Alumno", "Monto", "Metodo", "Fecha"},
		Rows: []map[string]string{
			{"ID": "1", "Alumno": "María García", "Monto": "1,500.50", "Metodo": "efectivo", "Fecha": "2025-05-02"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(paymentsDataset())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(payload), "ID,Alumno,Monto,Metodo,Fecha")
	assert.Contains(t, string(payload), "María García")
}

func TestCSVExporterNoHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(paymentsDataset(), "Historial de pagos")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
	assert.NotEmpty(t, payload)
}

func TestPDFExporterNoHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
