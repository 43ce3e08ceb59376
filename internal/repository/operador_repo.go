package repository

import (
	"context"

	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OperadorRepository reads operators with their Usuario and Sede preloaded.
type OperadorRepository interface {
	Create(ctx context.Context, o *model.Operador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operador, error)
	List(ctx context.Context) ([]model.Operador, error)
	ListBySede(ctx context.Context, sedeID uuid.UUID) ([]model.Operador, error)
	Update(ctx context.Context, o *model.Operador) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type operadorRepo struct{ db *gorm.DB }

func NewOperadorRepository(db *gorm.DB) OperadorRepository { return &operadorRepo{db: db} }

func (r *operadorRepo) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Usuario").Preload("Sede")
}

func (r *operadorRepo) Create(ctx context.Context, o *model.Operador) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error)
}

func (r *operadorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Operador, error) {
	var o model.Operador
	if err := r.withRefs(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *operadorRepo) List(ctx context.Context) ([]model.Operador, error) {
	var list []model.Operador
	err := r.withRefs(ctx).Order("created_at asc").Find(&list).Error
	return list, translate(err)
}

func (r *operadorRepo) ListBySede(ctx context.Context, sedeID uuid.UUID) ([]model.Operador, error) {
	var list []model.Operador
	err := r.withRefs(ctx).Where("sede_id = ?", sedeID).Order("created_at asc").Find(&list).Error
	return list, translate(err)
}

func (r *operadorRepo) Update(ctx context.Context, o *model.Operador) error {
	return updated(r.db.WithContext(ctx).Model(o).Select("*").Omit(clause.Associations).Updates(o))
}

func (r *operadorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.Operador{}, "id = ?", id))
}
