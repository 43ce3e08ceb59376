package repository

import (
	"context"
	"testing"
	"time"

	"trazabilidad/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActivos(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoteRepository(db)
	ctx := context.Background()
	op := seedOperador(t, db)

	seedLote(t, db, op.ID, 3, model.LoteActivo)
	seedLote(t, db, op.ID, 2, model.LoteVendido)
	seedLote(t, db, op.ID, 1, model.LoteActivo)
	seedLote(t, db, op.ID, 4, model.LoteRetirado)

	activos, err := repo.ListActivos(ctx)
	require.NoError(t, err)
	require.Len(t, activos, 2)
	assert.Equal(t, 1, activos[0].Numero)
	assert.Equal(t, 3, activos[1].Numero)
	for _, l := range activos {
		assert.Equal(t, model.LoteActivo, l.EstadoLote)
	}
}

func TestLoteListFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoteRepository(db)
	ctx := context.Background()
	op := seedOperador(t, db)
	otro := seedOperador(t, db)

	seedLote(t, db, op.ID, 1, model.LoteActivo)
	seedLote(t, db, otro.ID, 2, model.LoteActivo)

	list, err := repo.List(ctx, LoteFilter{OperadorID: &otro.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Numero)

	fallo := model.CalidadFallo
	list, err = repo.List(ctx, LoteFilter{Calidad: &fallo})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLoteFechaRegistroInmutable(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoteRepository(db)
	ctx := context.Background()
	op := seedOperador(t, db)

	l := seedLote(t, db, op.ID, 9, model.LoteActivo)
	require.False(t, l.FechaRegistroSistema.IsZero())
	original := l.FechaRegistroSistema

	l.FechaRegistroSistema = original.Add(-72 * time.Hour)
	l.EstadoLote = model.LoteVendido
	require.NoError(t, repo.Update(ctx, l))

	got, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LoteVendido, got.EstadoLote)
	assert.True(t, original.Equal(got.FechaRegistroSistema), "got %s want %s", got.FechaRegistroSistema, original)
	require.NotNil(t, got.Operador)
	require.NotNil(t, got.Operador.Usuario)
}

func TestLoteDeleteRestricted(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoteRepository(db)
	ctx := context.Background()
	op := seedOperador(t, db)

	l := seedLote(t, db, op.ID, 1, model.LoteActivo)
	p := seedProducto(t, db, l.ID, nil)

	assert.ErrorIs(t, repo.Delete(ctx, l.ID), ErrReferenceViolation)
	assert.ErrorIs(t, NewOperadorRepository(db).Delete(ctx, op.ID), ErrReferenceViolation)

	require.NoError(t, NewProductoRepository(db).Delete(ctx, p.ID))
	require.NoError(t, repo.Delete(ctx, l.ID))
}

func TestLoteUpdateAfterDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoteRepository(db)
	ctx := context.Background()
	op := seedOperador(t, db)

	l := seedLote(t, db, op.ID, 4, model.LoteActivo)
	stale, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, l.ID))

	stale.EstadoLote = model.LoteVendido
	assert.ErrorIs(t, repo.Update(ctx, stale), ErrNotFound)

	_, err = repo.FindByID(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
