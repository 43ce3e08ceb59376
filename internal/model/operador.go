package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operador binds exactly one Usuario to the Sede where they work.
// Both references are RESTRICT: neither side can be deleted while the operator exists.
type Operador struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UsuarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Cargo     *string   `gorm:"type:varchar(50)"`
	SedeID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Telefono  string    `gorm:"type:varchar(11);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
	Sede    *Sede    `gorm:"foreignKey:SedeID"`
}

// TableName overrides GORM's default pluralization (operadors → operadores).
func (Operador) TableName() string { return "operadores" }

func (o *Operador) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
