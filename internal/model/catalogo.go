package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingrediente is a raw material measured in UnidadMedida (gramos, litros, ...).
type Ingrediente struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre       string    `gorm:"type:varchar(50);not null"`
	UnidadMedida string    `gorm:"type:varchar(50);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Ingrediente) TableName() string { return "ingredientes" }

func (i *Ingrediente) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Receta is a named formulation; its ingredients live in RecetaIngrediente.
type Receta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre      string    `gorm:"type:varchar(50);not null"`
	Descripcion string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Receta) TableName() string { return "recetas" }

func (r *Receta) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecetaIngrediente records how much of an ingredient a recipe requires.
// (receta_id, ingrediente_id) is unique; both references are RESTRICT.
type RecetaIngrediente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecetaID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receta_ingrediente"`
	IngredienteID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receta_ingrediente"`
	Cantidad      int16     `gorm:"type:smallint;not null"`
	CreatedAt     time.Time

	Receta      *Receta      `gorm:"foreignKey:RecetaID"`
	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
}

func (RecetaIngrediente) TableName() string { return "receta_ingredientes" }

func (ri *RecetaIngrediente) BeforeCreate(*gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
