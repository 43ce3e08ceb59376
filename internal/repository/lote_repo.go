package repository

import (
	"context"

	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoteFilter narrows List; zero values mean "no filter".
type LoteFilter struct {
	OperadorID *uuid.UUID
	Estado     *model.EstadoLote
	Calidad    *model.EstatusCalidad
}

type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	List(ctx context.Context, f LoteFilter) ([]model.Lote, error)
	// ListActivos returns batches in state Activo ordered by numero, then
	// registration time.
	ListActivos(ctx context.Context) ([]model.Lote, error)
	// Update never rewrites fecha_registro_sistema.
	Update(ctx context.Context, l *model.Lote) error
	// Delete fails with ErrReferenceViolation while products reference the batch.
	Delete(ctx context.Context, id uuid.UUID) error
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error)
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).
		Preload("Operador.Usuario").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *loteRepo) List(ctx context.Context, f LoteFilter) ([]model.Lote, error) {
	q := r.db.WithContext(ctx).Model(&model.Lote{})
	if f.OperadorID != nil {
		q = q.Where("operador_id = ?", *f.OperadorID)
	}
	if f.Estado != nil {
		q = q.Where("estado_lote = ?", *f.Estado)
	}
	if f.Calidad != nil {
		q = q.Where("estatus_calidad = ?", *f.Calidad)
	}
	var list []model.Lote
	err := q.Order("numero asc, fecha_registro_sistema asc").Find(&list).Error
	return list, translate(err)
}

func (r *loteRepo) ListActivos(ctx context.Context) ([]model.Lote, error) {
	estado := model.LoteActivo
	return r.List(ctx, LoteFilter{Estado: &estado})
}

func (r *loteRepo) Update(ctx context.Context, l *model.Lote) error {
	return updated(r.db.WithContext(ctx).Model(l).Select("*").Omit(clause.Associations).Updates(l))
}

func (r *loteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.Lote{}, "id = ?", id))
}
