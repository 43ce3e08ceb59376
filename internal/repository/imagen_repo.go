package repository

import (
	"context"

	"trazabilidad/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImagenRepository manages ProductoImagen rows. The store allows at most one
// principal image per product; a second one fails with ErrUniqueViolation.
type ImagenRepository interface {
	Create(ctx context.Context, img *model.ProductoImagen) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoImagen, error)
	ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoImagen, error)
	// FindPrincipal reports found=false, with a nil error, when the product
	// has no principal image.
	FindPrincipal(ctx context.Context, productoID uuid.UUID) (img *model.ProductoImagen, found bool, err error)
	Update(ctx context.Context, img *model.ProductoImagen) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetPrincipal demotes the current principal image of productoID and
	// promotes imagenID, in one transaction.
	SetPrincipal(ctx context.Context, productoID, imagenID uuid.UUID) (*model.ProductoImagen, error)
}

type imagenRepo struct{ db *gorm.DB }

func NewImagenRepository(db *gorm.DB) ImagenRepository { return &imagenRepo{db: db} }

func (r *imagenRepo) Create(ctx context.Context, img *model.ProductoImagen) error {
	return translate(r.db.WithContext(ctx).Create(img).Error)
}

func (r *imagenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoImagen, error) {
	var img model.ProductoImagen
	if err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &img, nil
}

func (r *imagenRepo) ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.ProductoImagen, error) {
	var list []model.ProductoImagen
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("principal desc, created_at asc").
		Find(&list).Error
	return list, translate(err)
}

func (r *imagenRepo) FindPrincipal(ctx context.Context, productoID uuid.UUID) (*model.ProductoImagen, bool, error) {
	var list []model.ProductoImagen
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND principal = ?", productoID, true).
		Limit(1).
		Find(&list).Error
	if err != nil {
		return nil, false, translate(err)
	}
	if len(list) == 0 {
		return nil, false, nil
	}
	return &list[0], true, nil
}

func (r *imagenRepo) Update(ctx context.Context, img *model.ProductoImagen) error {
	return updated(r.db.WithContext(ctx).Model(img).Select("*").Omit(clause.Associations).Updates(img))
}

func (r *imagenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.ProductoImagen{}, "id = ?", id))
}

func (r *imagenRepo) SetPrincipal(ctx context.Context, productoID, imagenID uuid.UUID) (*model.ProductoImagen, error) {
	var img model.ProductoImagen
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND producto_id = ?", imagenID, productoID).First(&img).Error; err != nil {
			return err
		}
		if img.Principal {
			return nil
		}
		if err := tx.Model(&model.ProductoImagen{}).
			Where("producto_id = ? AND principal = ? AND id <> ?", productoID, true, imagenID).
			Update("principal", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&img).Update("principal", true).Error; err != nil {
			return err
		}
		img.Principal = true
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &img, nil
}
