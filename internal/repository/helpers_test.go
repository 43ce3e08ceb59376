package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"trazabilidad/internal/infra"
	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUsuario(t *testing.T, db *gorm.DB, username string) *model.Usuario {
	t.Helper()
	u := &model.Usuario{Username: username, Nombre: username, PasswordHash: "x", Activo: true}
	require.NoError(t, NewUsuarioRepository(db).Create(context.Background(), u))
	return u
}

func seedSede(t *testing.T, db *gorm.DB, nombre string) *model.Sede {
	t.Helper()
	s := &model.Sede{Nombre: nombre, Direccion: "Calle 1 # 2-3", Ciudad: "Pasto", Estado: model.SedeActiva}
	require.NoError(t, NewSedeRepository(db).Create(context.Background(), s))
	return s
}

func seedOperador(t *testing.T, db *gorm.DB) *model.Operador {
	t.Helper()
	u := seedUsuario(t, db, "op-"+uuid.NewString()[:8])
	s := seedSede(t, db, "Sede "+uuid.NewString()[:8])
	o := &model.Operador{UsuarioID: u.ID, SedeID: s.ID, Telefono: "3001234567"}
	require.NoError(t, NewOperadorRepository(db).Create(context.Background(), o))
	return o
}

func seedLote(t *testing.T, db *gorm.DB, operadorID uuid.UUID, numero int, estado model.EstadoLote) *model.Lote {
	t.Helper()
	fab := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	l := &model.Lote{
		Numero:            numero,
		FechaFabricacion:  fab,
		FechaVencimiento:  fab.AddDate(0, 6, 0),
		CantidadProducida: 100,
		EstatusCalidad:    model.CalidadPaso,
		EstadoLote:        estado,
		OperadorID:        operadorID,
	}
	require.NoError(t, NewLoteRepository(db).Create(context.Background(), l))
	return l
}

func seedProducto(t *testing.T, db *gorm.DB, loteID uuid.UUID, recetaID *uuid.UUID) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Nombre:   "Galleta",
		LoteID:   loteID,
		RecetaID: recetaID,
		Sabor:    "Vainilla",
		Cantidad: 250,
		Precio:   decimal.NewFromInt(3500),
	}
	require.NoError(t, NewProductoRepository(db).Create(context.Background(), p))
	return p
}
