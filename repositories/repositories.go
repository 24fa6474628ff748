package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Auditoria AuditoriaRepository
	Usuario   UsuarioRepository
	Propiedad PropiedadRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Auditoria: NewAuditoriaRepository(db),
		Usuario:   NewUsuarioRepository(db),
		Propiedad: NewPropiedadRepository(db),
	}
}
