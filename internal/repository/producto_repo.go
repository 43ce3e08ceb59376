package repository

import (
	"context"

	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// List returns all products, or only those of loteID when it is non-nil.
	List(ctx context.Context, loteID *uuid.UUID) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	// Delete removes the product together with its images.
	Delete(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Receta").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, loteID *uuid.UUID) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Preload("Receta")
	if loteID != nil {
		q = q.Where("lote_id = ?", *loteID)
	}
	var list []model.Producto
	err := q.Order("nombre asc, sabor asc").Find(&list).Error
	return list, translate(err)
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return updated(r.db.WithContext(ctx).Model(p).Select("*").Omit(clause.Associations).Updates(p))
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id))
}
