package service

import (
	"context"
	"errors"
	"testing"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoProducto(t *testing.T, f *fixture, loteID string, recetaID *string) *dto.ProductoResponse {
	t.Helper()
	p, err := f.productos.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Galleta", LoteID: loteID, RecetaID: recetaID, Sabor: "Vainilla", Cantidad: 250, Precio: decimal.NewFromInt(3500),
	})
	require.NoError(t, err)
	return p
}

func TestProductoReceta(t *testing.T) {
	f := newFixture(t)
	o := f.operador(t)
	ctx := context.Background()
	l := f.lote(t, o.ID, 1)

	r, err := f.catalogo.CrearReceta(ctx, dto.CrearRecetaRequest{Nombre: "Base", Descripcion: "Masa"})
	require.NoError(t, err)
	p := nuevoProducto(t, f, l.ID, &r.ID)
	require.NotNil(t, p.RecetaNombre)
	assert.Equal(t, "Base", *p.RecetaNombre)

	// Deleting the recipe leaves the product without one.
	require.NoError(t, f.catalogo.EliminarReceta(ctx, uuid.MustParse(r.ID)))
	got, err := f.productos.Obtener(ctx, uuid.MustParse(p.ID))
	require.NoError(t, err)
	assert.Nil(t, got.RecetaID)

	otra, err := f.catalogo.CrearReceta(ctx, dto.CrearRecetaRequest{Nombre: "Otra", Descripcion: "Masa 2"})
	require.NoError(t, err)
	upd, err := f.productos.Actualizar(ctx, uuid.MustParse(p.ID), dto.ActualizarProductoRequest{RecetaID: &otra.ID})
	require.NoError(t, err)
	require.NotNil(t, upd.RecetaID)
	assert.Equal(t, otra.ID, *upd.RecetaID)

	upd, err = f.productos.Actualizar(ctx, uuid.MustParse(p.ID), dto.ActualizarProductoRequest{QuitarReceta: true})
	require.NoError(t, err)
	assert.Nil(t, upd.RecetaID)
}

func TestProductoReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)
	o := f.operador(t)
	ctx := context.Background()
	l := f.lote(t, o.ID, 1)

	_, err := f.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "X", LoteID: uuid.NewString(), Sabor: "Y", Cantidad: 1, Precio: decimal.Zero,
	})
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "lote_id", svcErr.Field)

	receta := uuid.NewString()
	_, err = f.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "X", LoteID: l.ID, RecetaID: &receta, Sabor: "Y", Cantidad: 1, Precio: decimal.Zero,
	})
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "receta_id", svcErr.Field)
}

func TestProductoListarPorLote(t *testing.T) {
	f := newFixture(t)
	o := f.operador(t)
	ctx := context.Background()
	l1 := f.lote(t, o.ID, 1)
	l2 := f.lote(t, o.ID, 2)
	nuevoProducto(t, f, l1.ID, nil)
	nuevoProducto(t, f, l2.ID, nil)
	nuevoProducto(t, f, l2.ID, nil)

	todos, err := f.productos.Listar(ctx, dto.ProductoFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	deL2, err := f.productos.Listar(ctx, dto.ProductoFilter{LoteID: l2.ID})
	require.NoError(t, err)
	assert.Len(t, deL2, 2)
}

func TestImagenPrincipal(t *testing.T) {
	f := newFixture(t)
	o := f.operador(t)
	ctx := context.Background()
	p := nuevoProducto(t, f, f.lote(t, o.ID, 1).ID, nil)
	productoID := uuid.MustParse(p.ID)

	_, found, err := f.imagenes.Principal(ctx, productoID)
	require.NoError(t, err)
	assert.False(t, found)

	a, err := f.imagenes.Agregar(ctx, productoID, dto.CrearImagenRequest{Imagen: "img/producto_imagenes/a.jpg", Principal: true})
	require.NoError(t, err)
	b, err := f.imagenes.Agregar(ctx, productoID, dto.CrearImagenRequest{Imagen: "img/producto_imagenes/b.jpg"})
	require.NoError(t, err)

	_, err = f.imagenes.Agregar(ctx, productoID, dto.CrearImagenRequest{Imagen: "c.jpg", Principal: true})
	require.ErrorIs(t, err, repository.ErrUniqueViolation)

	si := true
	_, err = f.imagenes.Actualizar(ctx, uuid.MustParse(b.ID), dto.ActualizarImagenRequest{Principal: &si})
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)

	promovida, err := f.imagenes.MarcarPrincipal(ctx, productoID, uuid.MustParse(b.ID))
	require.NoError(t, err)
	assert.True(t, promovida.Principal)

	principal, found, err := f.imagenes.Principal(ctx, productoID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, b.ID, principal.ID)

	list, err := f.imagenes.Listar(ctx, productoID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, img := range list {
		if img.ID == a.ID {
			assert.False(t, img.Principal)
		}
	}
}

func TestProductoEliminarBorraImagenes(t *testing.T) {
	f := newFixture(t)
	o := f.operador(t)
	ctx := context.Background()
	p := nuevoProducto(t, f, f.lote(t, o.ID, 1).ID, nil)
	productoID := uuid.MustParse(p.ID)

	img, err := f.imagenes.Agregar(ctx, productoID, dto.CrearImagenRequest{Imagen: "a.jpg"})
	require.NoError(t, err)

	require.NoError(t, f.productos.Eliminar(ctx, productoID))
	assert.ErrorIs(t, f.imagenes.Eliminar(ctx, uuid.MustParse(img.ID)), repository.ErrNotFound)

	_, err = f.imagenes.Agregar(ctx, productoID, dto.CrearImagenRequest{Imagen: "b.jpg"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
