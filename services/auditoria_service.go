package services

import (
	"context"
	"time"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/repositories"
)

// AuditoriaService interface defines audit record operations. Create is the
// append path used by the audit logger; Update and Delete are administrative
// correction passthroughs.
type AuditoriaService interface {
	Get(ctx context.Context, id int64) (*models.Auditoria, error)
	GetAll(ctx context.Context, offset, limit int) ([]models.Auditoria, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, form *models.AuditoriaForm) (*models.Auditoria, error)
	Update(ctx context.Context, id int64, form *models.AuditoriaForm) (*models.Auditoria, error)
	Delete(ctx context.Context, id int64) error
}

// auditoriaService implements AuditoriaService
type auditoriaService struct {
	auditoriaRepo repositories.AuditoriaRepository
}

// NewAuditoriaService creates a new auditoria service
func NewAuditoriaService(auditoriaRepo repositories.AuditoriaRepository) AuditoriaService {
	return &auditoriaService{auditoriaRepo: auditoriaRepo}
}

// Get retrieves one audit record with the actor name resolved
func (s *auditoriaService) Get(ctx context.Context, id int64) (*models.Auditoria, error) {
	return s.auditoriaRepo.GetByID(ctx, id)
}

// GetAll retrieves audit records newest first
func (s *auditoriaService) GetAll(ctx context.Context, offset, limit int) ([]models.Auditoria, error) {
	return s.auditoriaRepo.GetAll(ctx, offset, limit)
}

// Count returns the total number of audit records
func (s *auditoriaService) Count(ctx context.Context) (int, error) {
	return s.auditoriaRepo.Count(ctx)
}

// Create appends a new audit record. Fields are truncated defensively to the
// storage limits and the timestamp defaults to the current UTC time, so a
// malformed candidate is trimmed rather than rejected.
func (s *auditoriaService) Create(ctx context.Context, form *models.AuditoriaForm) (*models.Auditoria, error) {
	audFecha := form.AudFecha
	if audFecha.IsZero() {
		audFecha = time.Now().UTC()
	}

	auditoria := &models.Auditoria{
		Accion:      truncate(form.Accion, models.AccionMaxLen),
		Entidad:     truncate(form.Entidad, models.EntidadMaxLen),
		Descripcion: truncate(form.Descripcion, models.DescripcionMaxLen),
		AudFecha:    audFecha,
		AudUsuario:  form.AudUsuario,
	}

	if err := s.auditoriaRepo.Create(ctx, auditoria); err != nil {
		return nil, err
	}

	return auditoria, nil
}

// Update rewrites an audit record (administrative correction only)
func (s *auditoriaService) Update(ctx context.Context, id int64, form *models.AuditoriaForm) (*models.Auditoria, error) {
	existing, err := s.auditoriaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Accion = truncate(form.Accion, models.AccionMaxLen)
	existing.Entidad = truncate(form.Entidad, models.EntidadMaxLen)
	existing.Descripcion = truncate(form.Descripcion, models.DescripcionMaxLen)
	if !form.AudFecha.IsZero() {
		existing.AudFecha = form.AudFecha
	}
	existing.AudUsuario = form.AudUsuario

	if err := s.auditoriaRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes an audit record (administrative correction only)
func (s *auditoriaService) Delete(ctx context.Context, id int64) error {
	return s.auditoriaRepo.Delete(ctx, id)
}

// truncate returns at most max runes of s, always a prefix of the input.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
