package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEstadoSede(t *testing.T) {
	for _, s := range []string{"Active", "Inactive", "Under Maintenance"} {
		e, err := ParseEstadoSede(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(e))
	}

	_, err := ParseEstadoSede("active")
	assert.Error(t, err)
}

func TestParseEstatusCalidad(t *testing.T) {
	e, err := ParseEstatusCalidad("Fallo")
	require.NoError(t, err)
	assert.Equal(t, CalidadFallo, e)

	_, err = ParseEstatusCalidad("Aprobado")
	assert.Error(t, err)
}

func TestEstadoLoteScan(t *testing.T) {
	var e EstadoLote
	require.NoError(t, e.Scan([]byte("Retirado")))
	assert.Equal(t, LoteRetirado, e)

	assert.Error(t, e.Scan("Perdido"))
	assert.Error(t, e.Scan(42))
}

func TestEnumValueRejectsUnknown(t *testing.T) {
	_, err := EstadoLote("Nuevo").Value()
	assert.Error(t, err)

	v, err := SedeEnMantenimiento.Value()
	require.NoError(t, err)
	assert.Equal(t, "Under Maintenance", v)
}
