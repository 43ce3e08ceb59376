package infra

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the relational store and applies the schema.
// A DSN starting with "file:" selects SQLite (local development and tests);
// anything else is handed to the pgx-backed PostgreSQL driver.
func NewDatabase(dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	sqliteMode := IsSQLiteDSN(dsn)
	if sqliteMode {
		db, err = gorm.Open(sqlite.Open(dsn), gcfg)
	} else {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if sqliteMode {
		// SQLite serialises writers anyway; a single connection keeps
		// in-memory databases alive and PRAGMA foreign_keys in effect.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// IsSQLiteDSN reports whether dsn points at a SQLite database.
func IsSQLiteDSN(dsn string) bool { return strings.HasPrefix(dsn, "file:") }

// RunMigrations creates every table, constraint and index the repositories rely
// on. GORM AutoMigrate is not used: the referential actions below (RESTRICT,
// CASCADE, SET NULL) and the partial unique index on principal images must be
// exactly what the application expects, on both dialects.
//
// Each statement is IF NOT EXISTS, so re-running on an existing schema is a no-op.
func RunMigrations(db *gorm.DB) error {
	r := dialectReplacer(db.Dialector.Name())

	if db.Dialector.Name() == "sqlite" {
		if err := db.Exec(`PRAGMA foreign_keys = ON`).Error; err != nil {
			return fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	for _, m := range schema {
		if err := db.Exec(r.Replace(m.sql)).Error; err != nil {
			return fmt.Errorf("migration %q: %w", m.descr, err)
		}
	}
	return nil
}

// dialectReplacer maps the portable column tokens used in schema to concrete types.
func dialectReplacer(dialect string) *strings.Replacer {
	if dialect == "sqlite" {
		return strings.NewReplacer(
			"{uuid}", "TEXT",
			"{ts}", "DATETIME",
		)
	}
	return strings.NewReplacer(
		"{uuid}", "UUID",
		"{ts}", "TIMESTAMPTZ",
	)
}

var schema = []struct{ descr, sql string }{
	{"usuarios", `
CREATE TABLE IF NOT EXISTS usuarios (
  id            {uuid}       PRIMARY KEY,
  username      VARCHAR(150) NOT NULL,
  nombre        VARCHAR(150) NOT NULL,
  email         VARCHAR(254),
  password_hash VARCHAR(255) NOT NULL,
  activo        BOOLEAN      NOT NULL DEFAULT TRUE,
  created_at    {ts},
  updated_at    {ts},
  CONSTRAINT uni_usuarios_username UNIQUE (username)
)`},
	{"sedes", `
CREATE TABLE IF NOT EXISTS sedes (
  id         {uuid}       PRIMARY KEY,
  nombre     VARCHAR(100) NOT NULL,
  direccion  TEXT         NOT NULL,
  ciudad     VARCHAR(50)  NOT NULL,
  capacidad  INTEGER,
  estado     VARCHAR(20)  NOT NULL DEFAULT 'Active'
             CHECK (estado IN ('Active', 'Inactive', 'Under Maintenance')),
  created_at {ts},
  updated_at {ts},
  CONSTRAINT uni_sedes_nombre UNIQUE (nombre)
)`},
	{"operadores", `
CREATE TABLE IF NOT EXISTS operadores (
  id         {uuid}      PRIMARY KEY,
  usuario_id {uuid}      NOT NULL REFERENCES usuarios (id) ON DELETE RESTRICT,
  cargo      VARCHAR(50),
  sede_id    {uuid}      NOT NULL REFERENCES sedes (id) ON DELETE RESTRICT,
  telefono   VARCHAR(11) NOT NULL,
  created_at {ts},
  updated_at {ts},
  CONSTRAINT uni_operadores_usuario_id UNIQUE (usuario_id)
)`},
	{"idx_operadores_sede", `CREATE INDEX IF NOT EXISTS idx_operadores_sede ON operadores (sede_id)`},
	{"ingredientes", `
CREATE TABLE IF NOT EXISTS ingredientes (
  id            {uuid}      PRIMARY KEY,
  nombre        VARCHAR(50) NOT NULL,
  unidad_medida VARCHAR(50) NOT NULL,
  created_at    {ts},
  updated_at    {ts}
)`},
	{"recetas", `
CREATE TABLE IF NOT EXISTS recetas (
  id          {uuid}       PRIMARY KEY,
  nombre      VARCHAR(50)  NOT NULL,
  descripcion VARCHAR(255) NOT NULL,
  created_at  {ts},
  updated_at  {ts}
)`},
	{"receta_ingredientes", `
CREATE TABLE IF NOT EXISTS receta_ingredientes (
  id             {uuid}   PRIMARY KEY,
  receta_id      {uuid}   NOT NULL REFERENCES recetas (id) ON DELETE RESTRICT,
  ingrediente_id {uuid}   NOT NULL REFERENCES ingredientes (id) ON DELETE RESTRICT,
  cantidad       SMALLINT NOT NULL,
  created_at     {ts},
  CONSTRAINT idx_receta_ingrediente UNIQUE (receta_id, ingrediente_id)
)`},
	{"lotes", `
CREATE TABLE IF NOT EXISTS lotes (
  id                     {uuid}       PRIMARY KEY,
  numero                 INTEGER      NOT NULL,
  fecha_fabricacion      DATE         NOT NULL,
  fecha_vencimiento      DATE         NOT NULL,
  cantidad_producida     INTEGER      NOT NULL,
  estatus_calidad        VARCHAR(50)  NOT NULL
                         CHECK (estatus_calidad IN ('Paso', 'Pendiente', 'Fallo')),
  fecha_registro_sistema {ts}         NOT NULL,
  observaciones          VARCHAR(255),
  estado_lote            VARCHAR(50)  NOT NULL
                         CHECK (estado_lote IN ('Vendido', 'Retirado', 'Activo')),
  operador_id            {uuid}       NOT NULL REFERENCES operadores (id) ON DELETE RESTRICT,
  updated_at             {ts}
)`},
	{"idx_lotes_estado", `CREATE INDEX IF NOT EXISTS idx_lotes_estado ON lotes (estado_lote, numero)`},
	{"productos", `
CREATE TABLE IF NOT EXISTS productos (
  id         {uuid}        PRIMARY KEY,
  nombre     VARCHAR(50)   NOT NULL,
  lote_id    {uuid}        NOT NULL REFERENCES lotes (id) ON DELETE RESTRICT,
  receta_id  {uuid}        REFERENCES recetas (id) ON DELETE SET NULL,
  sabor      VARCHAR(50)   NOT NULL,
  cantidad   INTEGER       NOT NULL,
  precio     DECIMAL(10,2) NOT NULL,
  created_at {ts},
  updated_at {ts}
)`},
	{"idx_productos_lote", `CREATE INDEX IF NOT EXISTS idx_productos_lote ON productos (lote_id)`},
	{"producto_imagenes", `
CREATE TABLE IF NOT EXISTS producto_imagenes (
  id          {uuid}       PRIMARY KEY,
  producto_id {uuid}       NOT NULL REFERENCES productos (id) ON DELETE CASCADE,
  imagen      VARCHAR(255) NOT NULL,
  principal   BOOLEAN      NOT NULL DEFAULT FALSE,
  descripcion VARCHAR(255) NOT NULL DEFAULT '',
  created_at  {ts},
  updated_at  {ts}
)`},
	{"idx_producto_imagenes_producto", `CREATE INDEX IF NOT EXISTS idx_producto_imagenes_producto ON producto_imagenes (producto_id)`},
	// One principal image per product; any number of secondary ones.
	{"idx_producto_imagen_principal", `
CREATE UNIQUE INDEX IF NOT EXISTS idx_producto_imagen_principal
    ON producto_imagenes (producto_id) WHERE principal`},
}
