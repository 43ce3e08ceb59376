package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/infra"
	"trazabilidad/internal/qr"
	"trazabilidad/internal/repository"
	"trazabilidad/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Recording JobDispatcher stub ──────────────────────────────────────────────

type stubDispatcher struct {
	mu        sync.Mutex
	etiquetas []worker.EtiquetaJobPayload
	emails    []worker.EmailJobPayload
	err       error
}

func (d *stubDispatcher) EnqueueEtiquetaQR(_ context.Context, p worker.EtiquetaJobPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.etiquetas = append(d.etiquetas, p)
	return d.err
}

func (d *stubDispatcher) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.emails = append(d.emails, p)
	return d.err
}

// ── Wiring ────────────────────────────────────────────────────────────────────

type fixture struct {
	db         *gorm.DB
	dispatcher *stubDispatcher

	usuarios   UsuarioService
	sedes      SedeService
	operadores OperadorService
	catalogo   CatalogoService
	lotes      LoteService
	productos  ProductoService
	imagenes   ImagenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	usuarioRepo := repository.NewUsuarioRepository(db)
	sedeRepo := repository.NewSedeRepository(db)
	operadorRepo := repository.NewOperadorRepository(db)
	ingRepo := repository.NewIngredienteRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	imagenRepo := repository.NewImagenRepository(db)

	d := &stubDispatcher{}
	return &fixture{
		db:         db,
		dispatcher: d,
		usuarios:   NewUsuarioService(usuarioRepo),
		sedes:      NewSedeService(sedeRepo, operadorRepo),
		operadores: NewOperadorService(operadorRepo, usuarioRepo, sedeRepo),
		catalogo:   NewCatalogoService(ingRepo, recetaRepo),
		lotes: NewLoteService(loteRepo, operadorRepo, productoRepo, d, LoteConfig{
			PublicBaseURL:     "https://trazas.test",
			QualityAlertEmail: "calidad@planta.test",
			QR:                qr.DefaultConfig(),
		}),
		productos: NewProductoService(productoRepo, loteRepo, recetaRepo),
		imagenes:  NewImagenService(imagenRepo, productoRepo),
	}
}

func (f *fixture) operador(t *testing.T) *dto.OperadorResponse {
	t.Helper()
	ctx := context.Background()
	u, err := f.usuarios.Crear(ctx, dto.CrearUsuarioRequest{
		Username: "op-" + uuid.NewString()[:8], Nombre: "Ana Operaria", Password: "secreto123",
	})
	require.NoError(t, err)
	s, err := f.sedes.Crear(ctx, dto.CrearSedeRequest{
		Nombre: "Planta " + uuid.NewString()[:8], Direccion: "Km 3 vía Ipiales", Ciudad: "Pasto",
	})
	require.NoError(t, err)
	o, err := f.operadores.Crear(ctx, dto.CrearOperadorRequest{
		UsuarioID: u.ID, SedeID: s.ID, Telefono: "3001234567",
	})
	require.NoError(t, err)
	return o
}

func (f *fixture) lote(t *testing.T, operadorID string, numero int) *dto.LoteResponse {
	t.Helper()
	l, err := f.lotes.Crear(context.Background(), dto.CrearLoteRequest{
		Numero:            numero,
		FechaFabricacion:  "2024-03-01",
		FechaVencimiento:  "2024-09-01",
		CantidadProducida: 500,
		EstatusCalidad:    "Paso",
		OperadorID:        operadorID,
	})
	require.NoError(t, err)
	return l
}
