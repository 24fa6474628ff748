package services

import (
	"context"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/repositories"
)

// UsuarioService exposes the user directory read side
type UsuarioService interface {
	GetAll(ctx context.Context) ([]models.Usuario, error)
	GetByID(ctx context.Context, id int64) (*models.Usuario, error)
}

type usuarioService struct {
	usuarioRepo repositories.UsuarioRepository
}

// NewUsuarioService creates a new usuario service
func NewUsuarioService(usuarioRepo repositories.UsuarioRepository) UsuarioService {
	return &usuarioService{usuarioRepo: usuarioRepo}
}

func (s *usuarioService) GetAll(ctx context.Context) ([]models.Usuario, error) {
	return s.usuarioRepo.GetAll(ctx)
}

func (s *usuarioService) GetByID(ctx context.Context, id int64) (*models.Usuario, error) {
	return s.usuarioRepo.GetByID(ctx, id)
}
