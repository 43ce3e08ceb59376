package service

import (
	"context"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/model"
	"trazabilidad/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UsuarioService manages the user identities operators are bound to.
type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context) ([]dto.UsuarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type usuarioService struct {
	repo repository.UsuarioRepository
}

func NewUsuarioService(repo repository.UsuarioRepository) UsuarioService {
	return &usuarioService{repo: repo}
}

func mapUsuario(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Activo:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, describe(err, "", "ya existe un usuario con ese username", "")
	}
	resp := mapUsuario(u)
	return &resp, nil
}

func (s *usuarioService) Listar(ctx context.Context) ([]dto.UsuarioResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for i := range list {
		out = append(out, mapUsuario(&list[i]))
	}
	return out, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, "usuario no encontrado", "", "")
	}
	resp := mapUsuario(u)
	return &resp, nil
}

func (s *usuarioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return describe(s.repo.Delete(ctx, id),
		"usuario no encontrado", "",
		"el usuario está asignado a un operador y no puede eliminarse")
}
