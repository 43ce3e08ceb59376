package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sede is a physical site where operators work and batches are produced.
// Capacidad is the maximum number of products the site can hold; nil = unknown.
type Sede struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Direccion string    `gorm:"type:text;not null"`
	Ciudad    string    `gorm:"type:varchar(50);not null"`
	Capacidad *int
	Estado    EstadoSede `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Sede) TableName() string { return "sedes" }

func (s *Sede) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Estado == "" {
		s.Estado = SedeActiva
	}
	return nil
}
