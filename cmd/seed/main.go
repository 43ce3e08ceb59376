// cmd/seed/main.go: crea (si no existen) un usuario, una sede y un operador de demo.
// Uso: go run ./cmd/seed
package main

import (
	"os"
	"time"

	"trazabilidad/internal/config"
	"trazabilidad/internal/infra"
	"trazabilidad/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoUsername = "operador.demo"
	demoPassword = "trazabilidad"
	demoSede     = "Planta Principal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var u model.Usuario
		if err := tx.Where(model.Usuario{Username: demoUsername}).
			Attrs(model.Usuario{Nombre: "Operador Demo", PasswordHash: string(hash), Activo: true}).
			FirstOrCreate(&u).Error; err != nil {
			return err
		}

		capacidad := 5000
		var s model.Sede
		if err := tx.Where(model.Sede{Nombre: demoSede}).
			Attrs(model.Sede{Direccion: "Km 3 vía Ipiales", Ciudad: "Pasto", Capacidad: &capacidad, Estado: model.SedeActiva}).
			FirstOrCreate(&s).Error; err != nil {
			return err
		}

		cargo := "Jefe de producción"
		var o model.Operador
		if err := tx.Where(model.Operador{UsuarioID: u.ID}).
			Attrs(model.Operador{SedeID: s.ID, Cargo: &cargo, Telefono: "3001234567"}).
			FirstOrCreate(&o).Error; err != nil {
			return err
		}

		log.Info().
			Str("usuario_id", u.ID.String()).
			Str("sede_id", s.ID.String()).
			Str("operador_id", o.ID.String()).
			Msg("demo data ready")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msgf("usuario %q / password %q", demoUsername, demoPassword)
}
