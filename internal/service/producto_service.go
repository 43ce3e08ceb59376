package service

import (
	"context"
	"errors"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/model"
	"trazabilidad/internal/repository"

	"github.com/google/uuid"
)

// ProductoService manages products manufactured within a batch.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, f dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	// Eliminar also removes every image of the product.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo    repository.ProductoRepository
	lotes   repository.LoteRepository
	recetas repository.RecetaRepository
}

func NewProductoService(repo repository.ProductoRepository, lotes repository.LoteRepository, recetas repository.RecetaRepository) ProductoService {
	return &productoService{repo: repo, lotes: lotes, recetas: recetas}
}

const msgProductoNoEncontrado = "producto no encontrado"

func mapProducto(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:       p.ID.String(),
		Nombre:   p.Nombre,
		LoteID:   p.LoteID.String(),
		Sabor:    p.Sabor,
		Cantidad: p.Cantidad,
		Precio:   p.Precio,
	}
	if p.RecetaID != nil {
		id := p.RecetaID.String()
		resp.RecetaID = &id
	}
	if p.Receta != nil {
		nombre := p.Receta.Nombre
		resp.RecetaNombre = &nombre
	}
	return resp
}

func (s *productoService) loteExistente(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("lote_id", "lote_id inválido")
	}
	if _, err := s.lotes.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, invalid("lote_id", "el lote no existe")
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *productoService) recetaExistente(ctx context.Context, raw string) (*model.Receta, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalid("receta_id", "receta_id inválido")
	}
	r, err := s.recetas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("receta_id", "la receta no existe")
		}
		return nil, err
	}
	return r, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	loteID, err := s.loteExistente(ctx, req.LoteID)
	if err != nil {
		return nil, err
	}
	p := &model.Producto{
		Nombre:   req.Nombre,
		LoteID:   loteID,
		Sabor:    req.Sabor,
		Cantidad: req.Cantidad,
		Precio:   req.Precio,
	}
	if req.RecetaID != nil {
		r, err := s.recetaExistente(ctx, *req.RecetaID)
		if err != nil {
			return nil, err
		}
		p.RecetaID = &r.ID
		p.Receta = r
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, describe(err, "", "", "lote o receta inexistente")
	}
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, f dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	var loteID *uuid.UUID
	if f.LoteID != "" {
		id, err := uuid.Parse(f.LoteID)
		if err != nil {
			return nil, invalid("lote_id", "lote_id inválido")
		}
		loteID = &id
	}
	list, err := s.repo.List(ctx, loteID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(list))
	for i := range list {
		out = append(out, mapProducto(&list[i]))
	}
	return out, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgProductoNoEncontrado, "", "")
	}
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgProductoNoEncontrado, "", "")
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Sabor != nil {
		p.Sabor = *req.Sabor
	}
	if req.Cantidad != nil {
		p.Cantidad = *req.Cantidad
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.LoteID != nil {
		if p.LoteID, err = s.loteExistente(ctx, *req.LoteID); err != nil {
			return nil, err
		}
		p.Lote = nil
	}
	switch {
	case req.QuitarReceta:
		p.RecetaID, p.Receta = nil, nil
	case req.RecetaID != nil:
		r, err := s.recetaExistente(ctx, *req.RecetaID)
		if err != nil {
			return nil, err
		}
		p.RecetaID, p.Receta = &r.ID, r
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, describe(err, "", "", "lote o receta inexistente")
	}
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return describe(s.repo.Delete(ctx, id), msgProductoNoEncontrado, "", "")
}
