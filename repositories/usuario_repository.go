package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/catastro/minero-backend/models"
)

// UsuarioRepository is the user directory read side. Actor resolution uses
// GetByUsername; the list endpoints use the rest.
type UsuarioRepository interface {
	GetAll(ctx context.Context) ([]models.Usuario, error)
	GetByID(ctx context.Context, id int64) (*models.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*models.Usuario, error)
	Create(ctx context.Context, usuario *models.Usuario) error
}

type usuarioRepository struct {
	db *sql.DB
}

// NewUsuarioRepository creates a new usuario repository
func NewUsuarioRepository(db *sql.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

// GetAll retrieves all users ordered by name
func (r *usuarioRepository) GetAll(ctx context.Context) ([]models.Usuario, error) {
	query := `
		SELECT id, username, nombre_completo, created_at
		FROM usuarios
		ORDER BY nombre_completo ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []models.Usuario
	for rows.Next() {
		var usuario models.Usuario
		err := rows.Scan(&usuario.ID, &usuario.Username, &usuario.NombreCompleto, &usuario.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usuario: %w", err)
		}
		usuarios = append(usuarios, usuario)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usuarios: %w", err)
	}

	return usuarios, nil
}

// GetByID retrieves a user by ID
func (r *usuarioRepository) GetByID(ctx context.Context, id int64) (*models.Usuario, error) {
	query := `
		SELECT id, username, nombre_completo, created_at
		FROM usuarios
		WHERE id = ?
	`

	var usuario models.Usuario
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&usuario.ID,
		&usuario.Username,
		&usuario.NombreCompleto,
		&usuario.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("usuario %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}

	return &usuario, nil
}

// GetByUsername retrieves a user by username
func (r *usuarioRepository) GetByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	query := `
		SELECT id, username, nombre_completo, created_at
		FROM usuarios
		WHERE username = ?
	`

	var usuario models.Usuario
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&usuario.ID,
		&usuario.Username,
		&usuario.NombreCompleto,
		&usuario.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("usuario %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario by username: %w", err)
	}

	return &usuario, nil
}

// Create inserts a new user
func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	query := `
		INSERT INTO usuarios (username, nombre_completo)
		VALUES (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, usuario.Username, usuario.NombreCompleto)
	if err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	usuario.ID = id
	return nil
}
