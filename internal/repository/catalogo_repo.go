package repository

import (
	"context"

	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredienteRepository interface {
	Create(ctx context.Context, i *model.Ingrediente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	List(ctx context.Context) ([]model.Ingrediente, error)
	Update(ctx context.Context, i *model.Ingrediente) error
	// Delete fails with ErrReferenceViolation while a recipe lists the ingredient.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository {
	return &ingredienteRepo{db: db}
}

func (r *ingredienteRepo) Create(ctx context.Context, i *model.Ingrediente) error {
	return translate(r.db.WithContext(ctx).Create(i).Error)
}

func (r *ingredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var i model.Ingrediente
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

func (r *ingredienteRepo) List(ctx context.Context) ([]model.Ingrediente, error) {
	var list []model.Ingrediente
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, translate(err)
}

func (r *ingredienteRepo) Update(ctx context.Context, i *model.Ingrediente) error {
	return updated(r.db.WithContext(ctx).Model(i).Select("*").Omit(clause.Associations).Updates(i))
}

func (r *ingredienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.Ingrediente{}, "id = ?", id))
}

// RecetaRepository covers recipes and their ingredient lines.
type RecetaRepository interface {
	Create(ctx context.Context, r *model.Receta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	List(ctx context.Context) ([]model.Receta, error)
	Update(ctx context.Context, r *model.Receta) error
	// Delete fails with ErrReferenceViolation while ingredient lines exist.
	// Products using the recipe keep existing with receta_id cleared.
	Delete(ctx context.Context, id uuid.UUID) error

	AddIngrediente(ctx context.Context, ri *model.RecetaIngrediente) error
	ListIngredientes(ctx context.Context, recetaID uuid.UUID) ([]model.RecetaIngrediente, error)
	FindIngrediente(ctx context.Context, recetaID, ingredienteID uuid.UUID) (*model.RecetaIngrediente, error)
	UpdateIngrediente(ctx context.Context, ri *model.RecetaIngrediente) error
	RemoveIngrediente(ctx context.Context, recetaID, ingredienteID uuid.UUID) error
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) Create(ctx context.Context, rec *model.Receta) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *recetaRepo) List(ctx context.Context) ([]model.Receta, error) {
	var list []model.Receta
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, translate(err)
}

func (r *recetaRepo) Update(ctx context.Context, rec *model.Receta) error {
	return updated(r.db.WithContext(ctx).Model(rec).Select("*").Omit(clause.Associations).Updates(rec))
}

func (r *recetaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.Receta{}, "id = ?", id))
}

func (r *recetaRepo) AddIngrediente(ctx context.Context, ri *model.RecetaIngrediente) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(ri).Error)
}

func (r *recetaRepo) ListIngredientes(ctx context.Context, recetaID uuid.UUID) ([]model.RecetaIngrediente, error) {
	var list []model.RecetaIngrediente
	err := r.db.WithContext(ctx).
		Preload("Ingrediente").
		Where("receta_id = ?", recetaID).
		Order("created_at asc").
		Find(&list).Error
	return list, translate(err)
}

func (r *recetaRepo) FindIngrediente(ctx context.Context, recetaID, ingredienteID uuid.UUID) (*model.RecetaIngrediente, error) {
	var ri model.RecetaIngrediente
	err := r.db.WithContext(ctx).
		Preload("Ingrediente").
		Where("receta_id = ? AND ingrediente_id = ?", recetaID, ingredienteID).
		First(&ri).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ri, nil
}

func (r *recetaRepo) UpdateIngrediente(ctx context.Context, ri *model.RecetaIngrediente) error {
	return updated(r.db.WithContext(ctx).Model(ri).Select("*").Omit(clause.Associations).Updates(ri))
}

func (r *recetaRepo) RemoveIngrediente(ctx context.Context, recetaID, ingredienteID uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).
		Where("receta_id = ? AND ingrediente_id = ?", recetaID, ingredienteID).
		Delete(&model.RecetaIngrediente{}))
}
