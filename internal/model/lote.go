package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lote is a production run registered by an Operador.
// FechaRegistroSistema is stamped once on insert; GORM never writes it on update.
type Lote struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Numero               int            `gorm:"not null;index"`
	FechaFabricacion     time.Time      `gorm:"type:date;not null"`
	FechaVencimiento     time.Time      `gorm:"type:date;not null"`
	CantidadProducida    int            `gorm:"not null"`
	EstatusCalidad       EstatusCalidad `gorm:"type:varchar(50);not null"`
	FechaRegistroSistema time.Time      `gorm:"<-:create;not null"`
	Observaciones        *string        `gorm:"type:varchar(255)"`
	EstadoLote           EstadoLote     `gorm:"type:varchar(50);not null;index"`
	OperadorID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	UpdatedAt            time.Time

	Operador *Operador `gorm:"foreignKey:OperadorID"`
}

func (Lote) TableName() string { return "lotes" }

func (l *Lote) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.FechaRegistroSistema = time.Now().UTC()
	return nil
}
