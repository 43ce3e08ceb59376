package repository

import (
	"context"
	"testing"

	"trazabilidad/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalogo(t *testing.T, repoR RecetaRepository, repoI IngredienteRepository) (*model.Receta, *model.Ingrediente, *model.Ingrediente) {
	t.Helper()
	ctx := context.Background()
	rec := &model.Receta{Nombre: "Galleta vainilla", Descripcion: "Masa base"}
	require.NoError(t, repoR.Create(ctx, rec))
	harina := &model.Ingrediente{Nombre: "Harina", UnidadMedida: "gramos"}
	require.NoError(t, repoI.Create(ctx, harina))
	azucar := &model.Ingrediente{Nombre: "Azúcar", UnidadMedida: "gramos"}
	require.NoError(t, repoI.Create(ctx, azucar))
	return rec, harina, azucar
}

func TestRecetaIngredientePairUnique(t *testing.T) {
	db := newTestDB(t)
	recetas, ingredientes := NewRecetaRepository(db), NewIngredienteRepository(db)
	ctx := context.Background()
	rec, harina, azucar := seedCatalogo(t, recetas, ingredientes)

	require.NoError(t, recetas.AddIngrediente(ctx, &model.RecetaIngrediente{RecetaID: rec.ID, IngredienteID: harina.ID, Cantidad: 500}))

	err := recetas.AddIngrediente(ctx, &model.RecetaIngrediente{RecetaID: rec.ID, IngredienteID: harina.ID, Cantidad: 10})
	assert.ErrorIs(t, err, ErrUniqueViolation)

	require.NoError(t, recetas.AddIngrediente(ctx, &model.RecetaIngrediente{RecetaID: rec.ID, IngredienteID: azucar.ID, Cantidad: 200}))

	lineas, err := recetas.ListIngredientes(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, lineas, 2)
	require.NotNil(t, lineas[0].Ingrediente)
}

func TestRecetaIngredienteUpdateAndRemove(t *testing.T) {
	db := newTestDB(t)
	recetas, ingredientes := NewRecetaRepository(db), NewIngredienteRepository(db)
	ctx := context.Background()
	rec, harina, _ := seedCatalogo(t, recetas, ingredientes)

	require.NoError(t, recetas.AddIngrediente(ctx, &model.RecetaIngrediente{RecetaID: rec.ID, IngredienteID: harina.ID, Cantidad: 500}))

	ri, err := recetas.FindIngrediente(ctx, rec.ID, harina.ID)
	require.NoError(t, err)
	ri.Cantidad = 750
	require.NoError(t, recetas.UpdateIngrediente(ctx, ri))

	ri, err = recetas.FindIngrediente(ctx, rec.ID, harina.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 750, ri.Cantidad)

	require.NoError(t, recetas.RemoveIngrediente(ctx, rec.ID, harina.ID))
	assert.ErrorIs(t, recetas.RemoveIngrediente(ctx, rec.ID, harina.ID), ErrNotFound)

	ri.Cantidad = 900
	assert.ErrorIs(t, recetas.UpdateIngrediente(ctx, ri), ErrNotFound)
	_, err = recetas.FindIngrediente(ctx, rec.ID, harina.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogoDeleteRestrictedByJoin(t *testing.T) {
	db := newTestDB(t)
	recetas, ingredientes := NewRecetaRepository(db), NewIngredienteRepository(db)
	ctx := context.Background()
	rec, harina, azucar := seedCatalogo(t, recetas, ingredientes)

	require.NoError(t, recetas.AddIngrediente(ctx, &model.RecetaIngrediente{RecetaID: rec.ID, IngredienteID: harina.ID, Cantidad: 500}))

	assert.ErrorIs(t, ingredientes.Delete(ctx, harina.ID), ErrReferenceViolation)
	assert.ErrorIs(t, recetas.Delete(ctx, rec.ID), ErrReferenceViolation)

	require.NoError(t, ingredientes.Delete(ctx, azucar.ID))
}

func TestRecetaDeleteClearsProductoReference(t *testing.T) {
	db := newTestDB(t)
	recetas := NewRecetaRepository(db)
	productos := NewProductoRepository(db)
	ctx := context.Background()

	rec := &model.Receta{Nombre: "Pan", Descripcion: "Pan blanco"}
	require.NoError(t, recetas.Create(ctx, rec))

	op := seedOperador(t, db)
	lote := seedLote(t, db, op.ID, 1, model.LoteActivo)
	p := seedProducto(t, db, lote.ID, &rec.ID)

	require.NoError(t, recetas.Delete(ctx, rec.ID))

	got, err := productos.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RecetaID)
	assert.Nil(t, got.Receta)
	assert.Equal(t, "Galleta", got.Nombre)
}
