package services

import (
	"context"
	"strings"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/repositories"
)

// ValidationError carries the problems found in a request body. Controllers
// map it to a 400 response.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, ", ")
}

// PropiedadService interface defines mining property business logic
type PropiedadService interface {
	GetFiltered(ctx context.Context, filter models.PropiedadMineraFilter, offset, limit int) ([]models.PropiedadMinera, int, error)
	GetByID(ctx context.Context, id int64) (*models.PropiedadMinera, error)
	Create(ctx context.Context, form *models.PropiedadMineraForm) (*models.PropiedadMinera, error)
	Update(ctx context.Context, id int64, form *models.PropiedadMineraForm) (*models.PropiedadMinera, error)
	Delete(ctx context.Context, id int64) error
}

// propiedadService implements PropiedadService
type propiedadService struct {
	propiedadRepo repositories.PropiedadRepository
}

// NewPropiedadService creates a new propiedad service
func NewPropiedadService(propiedadRepo repositories.PropiedadRepository) PropiedadService {
	return &propiedadService{propiedadRepo: propiedadRepo}
}

// GetFiltered retrieves a page of mining properties plus the total count
func (s *propiedadService) GetFiltered(ctx context.Context, filter models.PropiedadMineraFilter, offset, limit int) ([]models.PropiedadMinera, int, error) {
	return s.propiedadRepo.GetFiltered(ctx, filter, offset, limit)
}

// GetByID retrieves a mining property by ID
func (s *propiedadService) GetByID(ctx context.Context, id int64) (*models.PropiedadMinera, error) {
	return s.propiedadRepo.GetByID(ctx, id)
}

// Create validates and persists a new mining property
func (s *propiedadService) Create(ctx context.Context, form *models.PropiedadMineraForm) (*models.PropiedadMinera, error) {
	if problems := form.Validate(); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	propiedad := &models.PropiedadMinera{
		Nombre:     strings.TrimSpace(form.Nombre),
		Provincia:  strings.TrimSpace(form.Provincia),
		IDTitular:  form.IDTitular,
		Expediente: strings.TrimSpace(form.Expediente),
		Hectareas:  form.Hectareas,
	}

	if err := s.propiedadRepo.Create(ctx, propiedad); err != nil {
		return nil, err
	}

	return propiedad, nil
}

// Update validates and applies changes to an existing mining property
func (s *propiedadService) Update(ctx context.Context, id int64, form *models.PropiedadMineraForm) (*models.PropiedadMinera, error) {
	if problems := form.Validate(); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	propiedad, err := s.propiedadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	propiedad.Nombre = strings.TrimSpace(form.Nombre)
	propiedad.Provincia = strings.TrimSpace(form.Provincia)
	propiedad.IDTitular = form.IDTitular
	propiedad.Expediente = strings.TrimSpace(form.Expediente)
	propiedad.Hectareas = form.Hectareas

	if err := s.propiedadRepo.Update(ctx, propiedad); err != nil {
		return nil, err
	}

	return propiedad, nil
}

// Delete removes a mining property
func (s *propiedadService) Delete(ctx context.Context, id int64) error {
	return s.propiedadRepo.Delete(ctx, id)
}
