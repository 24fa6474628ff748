package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/catastro/minero-backend/models"
)

// PropiedadRepository handles mining property persistence
type PropiedadRepository interface {
	GetFiltered(ctx context.Context, filter models.PropiedadMineraFilter, offset, limit int) ([]models.PropiedadMinera, int, error)
	GetByID(ctx context.Context, id int64) (*models.PropiedadMinera, error)
	Create(ctx context.Context, propiedad *models.PropiedadMinera) error
	Update(ctx context.Context, propiedad *models.PropiedadMinera) error
	Delete(ctx context.Context, id int64) error
}

type propiedadRepository struct {
	db *sql.DB
}

// NewPropiedadRepository creates a new propiedad repository
func NewPropiedadRepository(db *sql.DB) PropiedadRepository {
	return &propiedadRepository{db: db}
}

// GetFiltered retrieves a page of mining properties matching the filter,
// plus the total match count for the pagination header.
func (r *propiedadRepository) GetFiltered(ctx context.Context, filter models.PropiedadMineraFilter, offset, limit int) ([]models.PropiedadMinera, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.Nombre != "" {
		where += " AND nombre LIKE ?"
		args = append(args, "%"+filter.Nombre+"%")
	}
	if filter.Provincia != "" {
		where += " AND provincia LIKE ?"
		args = append(args, "%"+filter.Provincia+"%")
	}
	if filter.IDTitular != 0 {
		where += " AND id_titular = ?"
		args = append(args, filter.IDTitular)
	}
	if filter.Expediente != "" {
		where += " AND expediente LIKE ?"
		args = append(args, "%"+filter.Expediente+"%")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM propiedades_mineras" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count propiedades: %w", err)
	}

	query := `
		SELECT id, nombre, provincia, id_titular, expediente, hectareas, created_at
		FROM propiedades_mineras` + where + `
		ORDER BY nombre ASC
		LIMIT ? OFFSET ?
	`
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query propiedades: %w", err)
	}
	defer rows.Close()

	var propiedades []models.PropiedadMinera
	for rows.Next() {
		var propiedad models.PropiedadMinera
		err := rows.Scan(
			&propiedad.ID,
			&propiedad.Nombre,
			&propiedad.Provincia,
			&propiedad.IDTitular,
			&propiedad.Expediente,
			&propiedad.Hectareas,
			&propiedad.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan propiedad: %w", err)
		}
		propiedades = append(propiedades, propiedad)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating propiedades: %w", err)
	}

	return propiedades, total, nil
}

// GetByID retrieves a mining property by ID
func (r *propiedadRepository) GetByID(ctx context.Context, id int64) (*models.PropiedadMinera, error) {
	query := `
		SELECT id, nombre, provincia, id_titular, expediente, hectareas, created_at
		FROM propiedades_mineras
		WHERE id = ?
	`

	var propiedad models.PropiedadMinera
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&propiedad.ID,
		&propiedad.Nombre,
		&propiedad.Provincia,
		&propiedad.IDTitular,
		&propiedad.Expediente,
		&propiedad.Hectareas,
		&propiedad.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("propiedad %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get propiedad: %w", err)
	}

	return &propiedad, nil
}

// Create inserts a new mining property
func (r *propiedadRepository) Create(ctx context.Context, propiedad *models.PropiedadMinera) error {
	query := `
		INSERT INTO propiedades_mineras (nombre, provincia, id_titular, expediente, hectareas, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if propiedad.CreatedAt.IsZero() {
		propiedad.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		propiedad.Nombre,
		propiedad.Provincia,
		propiedad.IDTitular,
		propiedad.Expediente,
		propiedad.Hectareas,
		propiedad.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create propiedad: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	propiedad.ID = id
	return nil
}

// Update updates an existing mining property
func (r *propiedadRepository) Update(ctx context.Context, propiedad *models.PropiedadMinera) error {
	query := `
		UPDATE propiedades_mineras
		SET nombre = ?, provincia = ?, id_titular = ?, expediente = ?, hectareas = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		propiedad.Nombre,
		propiedad.Provincia,
		propiedad.IDTitular,
		propiedad.Expediente,
		propiedad.Hectareas,
		propiedad.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update propiedad: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("propiedad %d: %w", propiedad.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a mining property by ID
func (r *propiedadRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM propiedades_mineras WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete propiedad: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("propiedad %d: %w", id, ErrNotFound)
	}

	return nil
}
