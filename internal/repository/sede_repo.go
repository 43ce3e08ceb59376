package repository

import (
	"context"

	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SedeRepository defines CRUD operations for Sede.
type SedeRepository interface {
	Create(ctx context.Context, s *model.Sede) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sede, error)
	// List returns every site, or only those in estado when it is non-nil.
	List(ctx context.Context, estado *model.EstadoSede) ([]model.Sede, error)
	ListActivas(ctx context.Context) ([]model.Sede, error)
	Update(ctx context.Context, s *model.Sede) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sedeRepo struct{ db *gorm.DB }

func NewSedeRepository(db *gorm.DB) SedeRepository { return &sedeRepo{db: db} }

func (r *sedeRepo) Create(ctx context.Context, s *model.Sede) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *sedeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sede, error) {
	var s model.Sede
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *sedeRepo) List(ctx context.Context, estado *model.EstadoSede) ([]model.Sede, error) {
	q := r.db.WithContext(ctx).Order("nombre asc")
	if estado != nil {
		q = q.Where("estado = ?", *estado)
	}
	var list []model.Sede
	err := q.Find(&list).Error
	return list, translate(err)
}

func (r *sedeRepo) ListActivas(ctx context.Context) ([]model.Sede, error) {
	estado := model.SedeActiva
	return r.List(ctx, &estado)
}

func (r *sedeRepo) Update(ctx context.Context, s *model.Sede) error {
	return updated(r.db.WithContext(ctx).Model(s).Select("*").Omit(clause.Associations).Updates(s))
}

func (r *sedeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.Sede{}, "id = ?", id))
}
