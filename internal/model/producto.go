package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto is an item manufactured within a Lote, optionally following a Receta.
// Deleting the recipe clears RecetaID; deleting the product removes its images.
type Producto struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre    string          `gorm:"type:varchar(50);not null"`
	LoteID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecetaID  *uuid.UUID      `gorm:"type:uuid;index"`
	Sabor     string          `gorm:"type:varchar(50);not null"`
	Cantidad  int             `gorm:"not null"` // grams
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lote   *Lote   `gorm:"foreignKey:LoteID"`
	Receta *Receta `gorm:"foreignKey:RecetaID"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductoImagen is a picture of a Producto. At most one per product is Principal.
type ProductoImagen struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Imagen      string    `gorm:"type:varchar(255);not null"` // path under img/producto_imagenes/ or absolute URL
	Principal   bool      `gorm:"not null;default:false"`
	Descripcion string    `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductoImagen) TableName() string { return "producto_imagenes" }

func (pi *ProductoImagen) BeforeCreate(*gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}
