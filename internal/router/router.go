package router

import (
	"time"

	"trazabilidad/internal/config"
	"trazabilidad/internal/handler"
	"trazabilidad/internal/infra"
	"trazabilidad/internal/middleware"
	"trazabilidad/internal/qr"
	"trazabilidad/internal/repository"
	"trazabilidad/internal/service"
	"trazabilidad/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// A nil rdb disables background jobs; a nil mailer hides the breaker from /health.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	qrCfg := qr.DefaultConfig()
	if cfg.QRMaxBytes > 0 {
		qrCfg.MaxBytes = cfg.QRMaxBytes
	}

	// Worker dispatcher, injected into services that enqueue async jobs.
	// Left as a nil interface (not a nil *worker.Dispatcher) when Redis is absent.
	var dispatcher service.JobDispatcher
	if rdb != nil {
		dispatcher = worker.NewDispatcher(rdb)
	}
	var mailCB *infra.Breaker
	if mailer != nil {
		mailCB = mailer.Breaker()
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sedeRepo := repository.NewSedeRepository(db)
	operadorRepo := repository.NewOperadorRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	imagenRepo := repository.NewImagenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	usuarioSvc := service.NewUsuarioService(usuarioRepo)
	sedeSvc := service.NewSedeService(sedeRepo, operadorRepo)
	operadorSvc := service.NewOperadorService(operadorRepo, usuarioRepo, sedeRepo)
	catalogoSvc := service.NewCatalogoService(ingredienteRepo, recetaRepo)
	loteSvc := service.NewLoteService(loteRepo, operadorRepo, productoRepo, dispatcher, service.LoteConfig{
		PublicBaseURL:     cfg.PublicBaseURL,
		QualityAlertEmail: cfg.QualityAlertEmail,
		QR:                qrCfg,
	})
	productoSvc := service.NewProductoService(productoRepo, loteRepo, recetaRepo)
	imagenSvc := service.NewImagenService(imagenRepo, productoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	sedesH := handler.NewSedesHandler(sedeSvc)
	operadoresH := handler.NewOperadoresHandler(operadorSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	lotesH := handler.NewLotesHandler(loteSvc)
	productosH := handler.NewProductosHandler(productoSvc, imagenSvc)
	qrH := handler.NewQRHandler(qrCfg, cfg.QRDefaultData)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mailCB))

	// QR rendering is CPU bound; give it its own, tighter budget.
	qrLimit := middleware.RateLimiter(120, time.Minute)
	r.GET("/qr", qrLimit, qrH.Generar)
	r.GET("/generar_qr", qrLimit, qrH.Generar)

	v1 := r.Group("/v1")
	{
		usuarios := v1.Group("/usuarios")
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obtener)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}

		sedes := v1.Group("/sedes")
		{
			sedes.POST("", sedesH.Crear)
			sedes.GET("", sedesH.Listar)
			sedes.GET("/activas", sedesH.ListarActivas)
			sedes.GET("/:id", sedesH.Obtener)
			sedes.PUT("/:id", sedesH.Actualizar)
			sedes.DELETE("/:id", sedesH.Eliminar)
			sedes.GET("/:id/operadores", sedesH.ListarOperadores)
		}

		operadores := v1.Group("/operadores")
		{
			operadores.POST("", operadoresH.Crear)
			operadores.GET("", operadoresH.Listar)
			operadores.GET("/:id", operadoresH.Obtener)
			operadores.PUT("/:id", operadoresH.Actualizar)
			operadores.DELETE("/:id", operadoresH.Eliminar)
		}

		ingredientes := v1.Group("/ingredientes")
		{
			ingredientes.POST("", catalogoH.CrearIngrediente)
			ingredientes.GET("", catalogoH.ListarIngredientes)
			ingredientes.GET("/:id", catalogoH.ObtenerIngrediente)
			ingredientes.PUT("/:id", catalogoH.ActualizarIngrediente)
			ingredientes.DELETE("/:id", catalogoH.EliminarIngrediente)
		}

		recetas := v1.Group("/recetas")
		{
			recetas.POST("", catalogoH.CrearReceta)
			recetas.GET("", catalogoH.ListarRecetas)
			recetas.GET("/:id", catalogoH.ObtenerReceta)
			recetas.PUT("/:id", catalogoH.ActualizarReceta)
			recetas.DELETE("/:id", catalogoH.EliminarReceta)
			recetas.POST("/:id/ingredientes", catalogoH.AgregarIngrediente)
			recetas.GET("/:id/ingredientes", catalogoH.ListarIngredientesDeReceta)
			recetas.PUT("/:id/ingredientes/:ingrediente_id", catalogoH.ActualizarCantidad)
			recetas.DELETE("/:id/ingredientes/:ingrediente_id", catalogoH.QuitarIngrediente)
		}

		lotes := v1.Group("/lotes")
		{
			lotes.POST("", lotesH.Crear)
			lotes.GET("", lotesH.Listar)
			lotes.GET("/activos", lotesH.ListarActivos)
			lotes.GET("/:id", lotesH.Obtener)
			lotes.PUT("/:id", lotesH.Actualizar)
			lotes.DELETE("/:id", lotesH.Eliminar)
			lotes.GET("/:id/ficha", lotesH.Ficha)
		}

		productos := v1.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.Obtener)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.POST("/:id/imagenes", productosH.AgregarImagen)
			productos.GET("/:id/imagenes", productosH.ListarImagenes)
			productos.GET("/:id/imagenes/principal", productosH.ImagenPrincipal)
			productos.PATCH("/:id/imagenes/:imagen_id/principal", productosH.MarcarPrincipal)
		}

		imagenes := v1.Group("/imagenes")
		{
			imagenes.PUT("/:id", productosH.ActualizarImagen)
			imagenes.DELETE("/:id", productosH.EliminarImagen)
		}

		if rdb != nil {
			v1.GET("/jobs/dlq/:cola", handler.NewJobsHandler(rdb).DLQ)
		}
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
