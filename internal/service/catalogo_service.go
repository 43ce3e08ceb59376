package service

import (
	"context"
	"errors"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/model"
	"trazabilidad/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService covers ingredients, recipes and the quantities linking them.
type CatalogoService interface {
	CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	ListarIngredientes(ctx context.Context) ([]dto.IngredienteResponse, error)
	ObtenerIngrediente(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error)
	ActualizarIngrediente(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	EliminarIngrediente(ctx context.Context, id uuid.UUID) error

	CrearReceta(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	ListarRecetas(ctx context.Context) ([]dto.RecetaResponse, error)
	// ObtenerReceta includes the recipe's ingredient lines.
	ObtenerReceta(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	ActualizarReceta(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	EliminarReceta(ctx context.Context, id uuid.UUID) error

	AgregarIngrediente(ctx context.Context, recetaID uuid.UUID, req dto.AgregarIngredienteRequest) (*dto.RecetaIngredienteResponse, error)
	ListarIngredientesDeReceta(ctx context.Context, recetaID uuid.UUID) ([]dto.RecetaIngredienteResponse, error)
	ActualizarCantidad(ctx context.Context, recetaID, ingredienteID uuid.UUID, req dto.ActualizarCantidadRequest) (*dto.RecetaIngredienteResponse, error)
	QuitarIngrediente(ctx context.Context, recetaID, ingredienteID uuid.UUID) error
}

type catalogoService struct {
	ingredientes repository.IngredienteRepository
	recetas      repository.RecetaRepository
}

func NewCatalogoService(ingredientes repository.IngredienteRepository, recetas repository.RecetaRepository) CatalogoService {
	return &catalogoService{ingredientes: ingredientes, recetas: recetas}
}

const (
	msgIngredienteNoEncontrado = "ingrediente no encontrado"
	msgRecetaNoEncontrada      = "receta no encontrada"
	msgLineaNoEncontrada       = "la receta no incluye ese ingrediente"
)

func mapIngrediente(i *model.Ingrediente) dto.IngredienteResponse {
	return dto.IngredienteResponse{ID: i.ID.String(), Nombre: i.Nombre, UnidadMedida: i.UnidadMedida}
}

func mapReceta(r *model.Receta) dto.RecetaResponse {
	return dto.RecetaResponse{ID: r.ID.String(), Nombre: r.Nombre, Descripcion: r.Descripcion}
}

func mapRecetaIngrediente(ri *model.RecetaIngrediente) dto.RecetaIngredienteResponse {
	resp := dto.RecetaIngredienteResponse{
		IngredienteID: ri.IngredienteID.String(),
		Cantidad:      ri.Cantidad,
	}
	if ri.Ingrediente != nil {
		resp.Nombre = ri.Ingrediente.Nombre
		resp.UnidadMedida = ri.Ingrediente.UnidadMedida
	}
	return resp
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

func (s *catalogoService) CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	i := &model.Ingrediente{Nombre: req.Nombre, UnidadMedida: req.UnidadMedida}
	if err := s.ingredientes.Create(ctx, i); err != nil {
		return nil, err
	}
	resp := mapIngrediente(i)
	return &resp, nil
}

func (s *catalogoService) ListarIngredientes(ctx context.Context) ([]dto.IngredienteResponse, error) {
	list, err := s.ingredientes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredienteResponse, 0, len(list))
	for i := range list {
		out = append(out, mapIngrediente(&list[i]))
	}
	return out, nil
}

func (s *catalogoService) ObtenerIngrediente(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error) {
	i, err := s.ingredientes.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgIngredienteNoEncontrado, "", "")
	}
	resp := mapIngrediente(i)
	return &resp, nil
}

func (s *catalogoService) ActualizarIngrediente(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	i, err := s.ingredientes.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgIngredienteNoEncontrado, "", "")
	}
	if req.Nombre != nil {
		i.Nombre = *req.Nombre
	}
	if req.UnidadMedida != nil {
		i.UnidadMedida = *req.UnidadMedida
	}
	if err := s.ingredientes.Update(ctx, i); err != nil {
		return nil, err
	}
	resp := mapIngrediente(i)
	return &resp, nil
}

func (s *catalogoService) EliminarIngrediente(ctx context.Context, id uuid.UUID) error {
	return describe(s.ingredientes.Delete(ctx, id),
		msgIngredienteNoEncontrado, "",
		"el ingrediente está en uso por una receta y no puede eliminarse")
}

// ── Recetas ───────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearReceta(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	r := &model.Receta{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := s.recetas.Create(ctx, r); err != nil {
		return nil, err
	}
	resp := mapReceta(r)
	return &resp, nil
}

func (s *catalogoService) ListarRecetas(ctx context.Context) ([]dto.RecetaResponse, error) {
	list, err := s.recetas.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecetaResponse, 0, len(list))
	for i := range list {
		out = append(out, mapReceta(&list[i]))
	}
	return out, nil
}

func (s *catalogoService) ObtenerReceta(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	r, err := s.recetas.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgRecetaNoEncontrada, "", "")
	}
	lineas, err := s.ListarIngredientesDeReceta(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapReceta(r)
	resp.Ingredientes = lineas
	return &resp, nil
}

func (s *catalogoService) ActualizarReceta(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	r, err := s.recetas.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgRecetaNoEncontrada, "", "")
	}
	if req.Nombre != nil {
		r.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		r.Descripcion = *req.Descripcion
	}
	if err := s.recetas.Update(ctx, r); err != nil {
		return nil, err
	}
	resp := mapReceta(r)
	return &resp, nil
}

// EliminarReceta is refused while ingredient lines exist; products that used
// the recipe survive with no recipe.
func (s *catalogoService) EliminarReceta(ctx context.Context, id uuid.UUID) error {
	return describe(s.recetas.Delete(ctx, id),
		msgRecetaNoEncontrada, "",
		"la receta tiene ingredientes asociados; quítelos antes de eliminarla")
}

// ── Ingredientes de receta ────────────────────────────────────────────────────

func (s *catalogoService) AgregarIngrediente(ctx context.Context, recetaID uuid.UUID, req dto.AgregarIngredienteRequest) (*dto.RecetaIngredienteResponse, error) {
	if _, err := s.recetas.FindByID(ctx, recetaID); err != nil {
		return nil, describe(err, msgRecetaNoEncontrada, "", "")
	}
	ingredienteID, err := uuid.Parse(req.IngredienteID)
	if err != nil {
		return nil, invalid("ingrediente_id", "ingrediente_id inválido")
	}
	ing, err := s.ingredientes.FindByID(ctx, ingredienteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("ingrediente_id", "el ingrediente no existe")
		}
		return nil, err
	}

	ri := &model.RecetaIngrediente{RecetaID: recetaID, IngredienteID: ingredienteID, Cantidad: req.Cantidad}
	if err := s.recetas.AddIngrediente(ctx, ri); err != nil {
		return nil, describe(err, "", "la receta ya incluye ese ingrediente", "receta o ingrediente inexistente")
	}
	ri.Ingrediente = ing
	resp := mapRecetaIngrediente(ri)
	return &resp, nil
}

func (s *catalogoService) ListarIngredientesDeReceta(ctx context.Context, recetaID uuid.UUID) ([]dto.RecetaIngredienteResponse, error) {
	list, err := s.recetas.ListIngredientes(ctx, recetaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecetaIngredienteResponse, 0, len(list))
	for i := range list {
		out = append(out, mapRecetaIngrediente(&list[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarCantidad(ctx context.Context, recetaID, ingredienteID uuid.UUID, req dto.ActualizarCantidadRequest) (*dto.RecetaIngredienteResponse, error) {
	ri, err := s.recetas.FindIngrediente(ctx, recetaID, ingredienteID)
	if err != nil {
		return nil, describe(err, msgLineaNoEncontrada, "", "")
	}
	ri.Cantidad = req.Cantidad
	if err := s.recetas.UpdateIngrediente(ctx, ri); err != nil {
		return nil, err
	}
	resp := mapRecetaIngrediente(ri)
	return &resp, nil
}

func (s *catalogoService) QuitarIngrediente(ctx context.Context, recetaID, ingredienteID uuid.UUID) error {
	return describe(s.recetas.RemoveIngrediente(ctx, recetaID, ingredienteID), msgLineaNoEncontrada, "", "")
}
