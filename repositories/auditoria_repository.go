package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/catastro/minero-backend/models"
)

// AuditoriaRepository handles audit record persistence. Records are written
// once and read many times; Update and Delete exist only for administrative
// correction.
type AuditoriaRepository interface {
	Create(ctx context.Context, auditoria *models.Auditoria) error
	GetByID(ctx context.Context, id int64) (*models.Auditoria, error)
	GetAll(ctx context.Context, offset, limit int) ([]models.Auditoria, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, auditoria *models.Auditoria) error
	Delete(ctx context.Context, id int64) error
}

type auditoriaRepository struct {
	db *sql.DB
}

// NewAuditoriaRepository creates a new auditoria repository
func NewAuditoriaRepository(db *sql.DB) AuditoriaRepository {
	return &auditoriaRepository{db: db}
}

// Create appends a new audit record and assigns its id. The insert runs in
// its own short transaction, rolled back on failure, so a failed append never
// leaves a poisoned transaction behind for the caller's next operation.
func (r *auditoriaRepository) Create(ctx context.Context, auditoria *models.Auditoria) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}

	query := `
		INSERT INTO auditorias (accion, entidad, descripcion, aud_fecha, aud_usuario)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		auditoria.Accion,
		auditoria.Entidad,
		auditoria.Descripcion,
		auditoria.AudFecha,
		auditoria.AudUsuario,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit record: %w", err)
	}

	auditoria.ID = id
	return nil
}

// GetByID retrieves an audit record with the actor's display name joined in
func (r *auditoriaRepository) GetByID(ctx context.Context, id int64) (*models.Auditoria, error) {
	query := `
		SELECT a.id, a.accion, a.entidad, a.descripcion, a.aud_fecha, a.aud_usuario,
		       u.nombre_completo
		FROM auditorias a
		LEFT JOIN usuarios u ON u.id = a.aud_usuario
		WHERE a.id = ?
	`

	var auditoria models.Auditoria
	var nombre sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&auditoria.ID,
		&auditoria.Accion,
		&auditoria.Entidad,
		&auditoria.Descripcion,
		&auditoria.AudFecha,
		&auditoria.AudUsuario,
		&nombre,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("audit record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit record: %w", err)
	}

	if nombre.Valid {
		auditoria.UsuarioNombre = &nombre.String
	}

	return &auditoria, nil
}

// GetAll retrieves audit records newest first, with the actor display name
// joined in. limit <= 0 means no limit; offset <= 0 starts from the top.
func (r *auditoriaRepository) GetAll(ctx context.Context, offset, limit int) ([]models.Auditoria, error) {
	query := `
		SELECT a.id, a.accion, a.entidad, a.descripcion, a.aud_fecha, a.aud_usuario,
		       u.nombre_completo
		FROM auditorias a
		LEFT JOIN usuarios u ON u.id = a.aud_usuario
		ORDER BY a.aud_fecha DESC, a.id DESC
	`

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	} else if offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means unlimited
		query += " LIMIT -1 OFFSET ?"
		args = append(args, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var auditorias []models.Auditoria
	for rows.Next() {
		var auditoria models.Auditoria
		var nombre sql.NullString

		err := rows.Scan(
			&auditoria.ID,
			&auditoria.Accion,
			&auditoria.Entidad,
			&auditoria.Descripcion,
			&auditoria.AudFecha,
			&auditoria.AudUsuario,
			&nombre,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}

		if nombre.Valid {
			auditoria.UsuarioNombre = &nombre.String
		}

		auditorias = append(auditorias, auditoria)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit records: %w", err)
	}

	return auditorias, nil
}

// Count returns the total number of audit records
func (r *auditoriaRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM auditorias").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit records: %w", err)
	}
	return count, nil
}

// Update rewrites an audit record (administrative correction only)
func (r *auditoriaRepository) Update(ctx context.Context, auditoria *models.Auditoria) error {
	query := `
		UPDATE auditorias
		SET accion = ?, entidad = ?, descripcion = ?, aud_fecha = ?, aud_usuario = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		auditoria.Accion,
		auditoria.Entidad,
		auditoria.Descripcion,
		auditoria.AudFecha,
		auditoria.AudUsuario,
		auditoria.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update audit record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("audit record %d: %w", auditoria.ID, ErrNotFound)
	}

	return nil
}

// Delete removes an audit record (administrative correction only)
func (r *auditoriaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM auditorias WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete audit record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("audit record %d: %w", id, ErrNotFound)
	}

	return nil
}
