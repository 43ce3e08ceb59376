package service

import (
	"context"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/model"
	"trazabilidad/internal/repository"

	"github.com/google/uuid"
)

// ImagenService attaches images to products. A product has at most one
// principal image; promoting another one goes through MarcarPrincipal.
type ImagenService interface {
	Agregar(ctx context.Context, productoID uuid.UUID, req dto.CrearImagenRequest) (*dto.ImagenResponse, error)
	Listar(ctx context.Context, productoID uuid.UUID) ([]dto.ImagenResponse, error)
	// Principal reports found=false when the product has no principal image.
	Principal(ctx context.Context, productoID uuid.UUID) (img *dto.ImagenResponse, found bool, err error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarImagenRequest) (*dto.ImagenResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	MarcarPrincipal(ctx context.Context, productoID, imagenID uuid.UUID) (*dto.ImagenResponse, error)
}

type imagenService struct {
	repo      repository.ImagenRepository
	productos repository.ProductoRepository
}

func NewImagenService(repo repository.ImagenRepository, productos repository.ProductoRepository) ImagenService {
	return &imagenService{repo: repo, productos: productos}
}

const (
	msgImagenNoEncontrada = "imagen no encontrada"
	msgPrincipalDuplicada = "el producto ya tiene una imagen principal; márquela como secundaria primero"
)

func mapImagen(img *model.ProductoImagen) dto.ImagenResponse {
	return dto.ImagenResponse{
		ID:          img.ID.String(),
		ProductoID:  img.ProductoID.String(),
		Imagen:      img.Imagen,
		Principal:   img.Principal,
		Descripcion: img.Descripcion,
		CreatedAt:   img.CreatedAt,
	}
}

func (s *imagenService) productoExistente(ctx context.Context, id uuid.UUID) error {
	_, err := s.productos.FindByID(ctx, id)
	return describe(err, msgProductoNoEncontrado, "", "")
}

func (s *imagenService) Agregar(ctx context.Context, productoID uuid.UUID, req dto.CrearImagenRequest) (*dto.ImagenResponse, error) {
	if err := s.productoExistente(ctx, productoID); err != nil {
		return nil, err
	}
	img := &model.ProductoImagen{
		ProductoID:  productoID,
		Imagen:      req.Imagen,
		Principal:   req.Principal,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, describe(err, "", msgPrincipalDuplicada, msgProductoNoEncontrado)
	}
	resp := mapImagen(img)
	return &resp, nil
}

func (s *imagenService) Listar(ctx context.Context, productoID uuid.UUID) ([]dto.ImagenResponse, error) {
	if err := s.productoExistente(ctx, productoID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImagenResponse, 0, len(list))
	for i := range list {
		out = append(out, mapImagen(&list[i]))
	}
	return out, nil
}

func (s *imagenService) Principal(ctx context.Context, productoID uuid.UUID) (*dto.ImagenResponse, bool, error) {
	img, found, err := s.repo.FindPrincipal(ctx, productoID)
	if err != nil || !found {
		return nil, false, err
	}
	resp := mapImagen(img)
	return &resp, true, nil
}

func (s *imagenService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarImagenRequest) (*dto.ImagenResponse, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgImagenNoEncontrada, "", "")
	}
	if req.Imagen != nil {
		img.Imagen = *req.Imagen
	}
	if req.Principal != nil {
		img.Principal = *req.Principal
	}
	if req.Descripcion != nil {
		img.Descripcion = *req.Descripcion
	}
	if err := s.repo.Update(ctx, img); err != nil {
		return nil, describe(err, "", msgPrincipalDuplicada, "")
	}
	resp := mapImagen(img)
	return &resp, nil
}

func (s *imagenService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return describe(s.repo.Delete(ctx, id), msgImagenNoEncontrada, "", "")
}

func (s *imagenService) MarcarPrincipal(ctx context.Context, productoID, imagenID uuid.UUID) (*dto.ImagenResponse, error) {
	img, err := s.repo.SetPrincipal(ctx, productoID, imagenID)
	if err != nil {
		return nil, describe(err, "el producto no tiene esa imagen", msgPrincipalDuplicada, "")
	}
	resp := mapImagen(img)
	return &resp, nil
}
