package service

import (
	"context"
	"errors"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/model"
	"trazabilidad/internal/repository"

	"github.com/google/uuid"
)

// SedeService is the site registry.
type SedeService interface {
	Crear(ctx context.Context, req dto.CrearSedeRequest) (*dto.SedeResponse, error)
	Listar(ctx context.Context, f dto.SedeFilter) ([]dto.SedeResponse, error)
	ListarActivas(ctx context.Context) ([]dto.SedeResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SedeResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSedeRequest) (*dto.SedeResponse, error)
	// Eliminar is refused while operators are assigned to the site.
	Eliminar(ctx context.Context, id uuid.UUID) error
	ListarOperadores(ctx context.Context, id uuid.UUID) ([]dto.OperadorResponse, error)
}

type sedeService struct {
	repo       repository.SedeRepository
	operadores repository.OperadorRepository
}

func NewSedeService(repo repository.SedeRepository, operadores repository.OperadorRepository) SedeService {
	return &sedeService{repo: repo, operadores: operadores}
}

const (
	msgSedeNoEncontrada = "sede no encontrada"
	msgSedeDuplicada    = "ya existe una sede con ese nombre"
)

func mapSede(s *model.Sede) dto.SedeResponse {
	return dto.SedeResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Ciudad:    s.Ciudad,
		Capacidad: s.Capacidad,
		Estado:    string(s.Estado),
	}
}

func mapSedes(list []model.Sede) []dto.SedeResponse {
	out := make([]dto.SedeResponse, 0, len(list))
	for i := range list {
		out = append(out, mapSede(&list[i]))
	}
	return out
}

func parseEstadoSede(s string) (model.EstadoSede, error) {
	e, err := model.ParseEstadoSede(s)
	if err != nil {
		return "", invalid("estado", "estado debe ser Active, Inactive o Under Maintenance")
	}
	return e, nil
}

func (s *sedeService) Crear(ctx context.Context, req dto.CrearSedeRequest) (*dto.SedeResponse, error) {
	estado := model.SedeActiva
	if req.Estado != "" {
		var err error
		if estado, err = parseEstadoSede(req.Estado); err != nil {
			return nil, err
		}
	}
	sede := &model.Sede{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Ciudad:    req.Ciudad,
		Capacidad: req.Capacidad,
		Estado:    estado,
	}
	if err := s.repo.Create(ctx, sede); err != nil {
		return nil, describe(err, "", msgSedeDuplicada, "")
	}
	resp := mapSede(sede)
	return &resp, nil
}

func (s *sedeService) Listar(ctx context.Context, f dto.SedeFilter) ([]dto.SedeResponse, error) {
	var filtro *model.EstadoSede
	if f.Estado != "" {
		e, err := parseEstadoSede(f.Estado)
		if err != nil {
			return nil, err
		}
		filtro = &e
	}
	list, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return mapSedes(list), nil
}

func (s *sedeService) ListarActivas(ctx context.Context) ([]dto.SedeResponse, error) {
	list, err := s.repo.ListActivas(ctx)
	if err != nil {
		return nil, err
	}
	return mapSedes(list), nil
}

func (s *sedeService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SedeResponse, error) {
	sede, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgSedeNoEncontrada, "", "")
	}
	resp := mapSede(sede)
	return &resp, nil
}

func (s *sedeService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSedeRequest) (*dto.SedeResponse, error) {
	sede, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgSedeNoEncontrada, "", "")
	}

	if req.Nombre != nil {
		sede.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		sede.Direccion = *req.Direccion
	}
	if req.Ciudad != nil {
		sede.Ciudad = *req.Ciudad
	}
	if req.Capacidad != nil {
		sede.Capacidad = req.Capacidad
	}
	if req.Estado != nil {
		if sede.Estado, err = parseEstadoSede(*req.Estado); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, sede); err != nil {
		return nil, describe(err, "", msgSedeDuplicada, "")
	}
	resp := mapSede(sede)
	return &resp, nil
}

func (s *sedeService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return describe(s.repo.Delete(ctx, id),
		msgSedeNoEncontrada, "",
		"la sede tiene operadores asignados y no puede eliminarse")
}

func (s *sedeService) ListarOperadores(ctx context.Context, id uuid.UUID) ([]dto.OperadorResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, describe(err, msgSedeNoEncontrada, "", "")
	}
	list, err := s.operadores.ListBySede(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapOperadores(list), nil
}

// ── Operador ──────────────────────────────────────────────────────────────────

// OperadorService binds users to sites. A user can back at most one operator.
type OperadorService interface {
	Crear(ctx context.Context, req dto.CrearOperadorRequest) (*dto.OperadorResponse, error)
	Listar(ctx context.Context) ([]dto.OperadorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.OperadorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOperadorRequest) (*dto.OperadorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type operadorService struct {
	repo     repository.OperadorRepository
	usuarios repository.UsuarioRepository
	sedes    repository.SedeRepository
}

func NewOperadorService(repo repository.OperadorRepository, usuarios repository.UsuarioRepository, sedes repository.SedeRepository) OperadorService {
	return &operadorService{repo: repo, usuarios: usuarios, sedes: sedes}
}

const msgOperadorNoEncontrado = "operador no encontrado"

func mapOperador(o *model.Operador) dto.OperadorResponse {
	resp := dto.OperadorResponse{
		ID:        o.ID.String(),
		UsuarioID: o.UsuarioID.String(),
		Cargo:     o.Cargo,
		SedeID:    o.SedeID.String(),
		Telefono:  o.Telefono,
	}
	if o.Usuario != nil {
		resp.Username = o.Usuario.Username
	}
	if o.Sede != nil {
		resp.SedeNombre = o.Sede.Nombre
	}
	return resp
}

func mapOperadores(list []model.Operador) []dto.OperadorResponse {
	out := make([]dto.OperadorResponse, 0, len(list))
	for i := range list {
		out = append(out, mapOperador(&list[i]))
	}
	return out
}

// sedeExistente resolves a site id from a request body; a missing site is a
// validation problem of the request, not a 404 of the URL.
func (s *operadorService) sedeExistente(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("sede_id", "sede_id inválido")
	}
	if _, err := s.sedes.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, invalid("sede_id", "la sede no existe")
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *operadorService) Crear(ctx context.Context, req dto.CrearOperadorRequest) (*dto.OperadorResponse, error) {
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, invalid("usuario_id", "usuario_id inválido")
	}
	if _, err := s.usuarios.FindByID(ctx, usuarioID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("usuario_id", "el usuario no existe")
		}
		return nil, err
	}
	sedeID, err := s.sedeExistente(ctx, req.SedeID)
	if err != nil {
		return nil, err
	}

	o := &model.Operador{
		UsuarioID: usuarioID,
		Cargo:     req.Cargo,
		SedeID:    sedeID,
		Telefono:  req.Telefono,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, describe(err, "", "el usuario ya tiene un operador asignado", "usuario o sede inexistente")
	}
	return s.Obtener(ctx, o.ID)
}

func (s *operadorService) Listar(ctx context.Context) ([]dto.OperadorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapOperadores(list), nil
}

func (s *operadorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.OperadorResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgOperadorNoEncontrado, "", "")
	}
	resp := mapOperador(o)
	return &resp, nil
}

func (s *operadorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOperadorRequest) (*dto.OperadorResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgOperadorNoEncontrado, "", "")
	}

	if req.Cargo != nil {
		o.Cargo = req.Cargo
	}
	if req.Telefono != nil {
		o.Telefono = *req.Telefono
	}
	if req.SedeID != nil {
		if o.SedeID, err = s.sedeExistente(ctx, *req.SedeID); err != nil {
			return nil, err
		}
		o.Sede = nil
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, describe(err, "", "", "la sede no existe")
	}
	return s.Obtener(ctx, id)
}

func (s *operadorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return describe(s.repo.Delete(ctx, id),
		msgOperadorNoEncontrado, "",
		"el operador tiene lotes registrados y no puede eliminarse")
}
