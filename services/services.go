package services

import (
	"github.com/catastro/minero-backend/repositories"
)

// Services holds all service instances
type Services struct {
	Auditoria AuditoriaService
	Propiedad PropiedadService
	Usuario   UsuarioService
	AuditLog  *AuditLogger
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	auditorias := NewAuditoriaService(repos.Auditoria)

	return &Services{
		Auditoria: auditorias,
		Propiedad: NewPropiedadService(repos.Propiedad),
		Usuario:   NewUsuarioService(repos.Usuario),
		AuditLog:  NewAuditLogger(auditorias, repos.Usuario),
	}
}
