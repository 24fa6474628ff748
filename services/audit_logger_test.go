package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/repositories"
	"github.com/catastro/minero-backend/userctx"
)

// stubAuditoriaRepo is an in-memory AuditoriaRepository. With failCreate set
// it simulates a store that rejects every append.
type stubAuditoriaRepo struct {
	records    []models.Auditoria
	failCreate bool
}

func (s *stubAuditoriaRepo) Create(ctx context.Context, auditoria *models.Auditoria) error {
	if s.failCreate {
		return errors.New("constraint violation")
	}
	auditoria.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *auditoria)
	return nil
}

func (s *stubAuditoriaRepo) GetByID(ctx context.Context, id int64) (*models.Auditoria, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *stubAuditoriaRepo) GetAll(ctx context.Context, offset, limit int) ([]models.Auditoria, error) {
	return s.records, nil
}

func (s *stubAuditoriaRepo) Count(ctx context.Context) (int, error) {
	return len(s.records), nil
}

func (s *stubAuditoriaRepo) Update(ctx context.Context, auditoria *models.Auditoria) error {
	return nil
}

func (s *stubAuditoriaRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

// stubUsuarioRepo answers username lookups from a fixed map
type stubUsuarioRepo struct {
	byUsername map[string]*models.Usuario
}

func (s *stubUsuarioRepo) GetAll(ctx context.Context) ([]models.Usuario, error) {
	return nil, nil
}

func (s *stubUsuarioRepo) GetByID(ctx context.Context, id int64) (*models.Usuario, error) {
	return nil, repositories.ErrNotFound
}

func (s *stubUsuarioRepo) GetByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	if usuario, ok := s.byUsername[username]; ok {
		return usuario, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubUsuarioRepo) Create(ctx context.Context, usuario *models.Usuario) error {
	return nil
}

func newTestLogger(auditRepo *stubAuditoriaRepo, usuarios *stubUsuarioRepo) *AuditLogger {
	if usuarios == nil {
		usuarios = &stubUsuarioRepo{}
	}
	return NewAuditLogger(NewAuditoriaService(auditRepo), usuarios)
}

func TestSerializeDescripcion(t *testing.T) {
	// Strings pass through verbatim
	assert.Equal(t, "texto plano", serializeDescripcion("texto plano"))

	// Structures become JSON
	assert.Equal(t, `{"id":5}`, serializeDescripcion(map[string]any{"id": 5}))

	// Dates serialize instead of failing
	fecha := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := serializeDescripcion(map[string]any{"fecha": fecha})
	assert.Contains(t, out, "2024-03-01")

	// Unserializable values fall back to their string form
	out = serializeDescripcion(map[string]any{"ch": make(chan int)})
	assert.NotEmpty(t, out)

	// nil is still representable
	assert.Equal(t, "null", serializeDescripcion(nil))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := truncate(long, models.AccionMaxLen)
	assert.Len(t, []rune(got), models.AccionMaxLen)
	assert.True(t, strings.HasPrefix(long, got))

	// Short values are untouched
	assert.Equal(t, "CREATE", truncate("CREATE", models.AccionMaxLen))

	// Multibyte runes are not split
	acentos := strings.Repeat("á", 60)
	got = truncate(acentos, models.AccionMaxLen)
	assert.Len(t, []rune(got), models.AccionMaxLen)
	assert.True(t, strings.HasPrefix(acentos, got))
}

func TestLogAppliesTruncationAndDefaults(t *testing.T) {
	repo := &stubAuditoriaRepo{}
	logger := newTestLogger(repo, nil)

	before := time.Now().UTC()
	logger.Log(context.Background(), strings.Repeat("A", 70), strings.Repeat("E", 130),
		strings.Repeat("d", 6000))

	if assert.Len(t, repo.records, 1) {
		record := repo.records[0]
		assert.Len(t, record.Accion, models.AccionMaxLen)
		assert.Len(t, record.Entidad, models.EntidadMaxLen)
		assert.Len(t, record.Descripcion, models.DescripcionMaxLen)
		assert.False(t, record.AudFecha.Before(before))
	}
}

func TestLogCreationShapesDescription(t *testing.T) {
	repo := &stubAuditoriaRepo{}
	logger := newTestLogger(repo, nil)

	logger.LogCreation(context.Background(), "PropiedadMinera", 42, map[string]any{"Nombre": "Veta Sur"})

	if assert.Len(t, repo.records, 1) {
		record := repo.records[0]
		assert.Equal(t, "CREATE", record.Accion)
		assert.Equal(t, "PropiedadMinera", record.Entidad)
		assert.Contains(t, record.Descripcion, `"id":42`)
		assert.Contains(t, record.Descripcion, `"Nombre":"Veta Sur"`)
	}

	// nil payload still records an empty data object
	logger.LogCreation(context.Background(), "PropiedadMinera", 43, nil)
	assert.Contains(t, repo.records[1].Descripcion, `"data":{}`)

	logger.LogDeletion(context.Background(), "PropiedadMinera", 42)
	assert.Equal(t, `{"id":42}`, repo.records[2].Descripcion)
}

func TestActorResolution(t *testing.T) {
	usuarios := &stubUsuarioRepo{byUsername: map[string]*models.Usuario{
		"alice": {ID: 11, Username: "alice", NombreCompleto: "Alice Pérez"},
	}}

	tests := []struct {
		name   string
		claims *userctx.Claims
		want   int64
	}{
		{"numeric id claim wins without a lookup", &userctx.Claims{ID: 7, HasID: true}, 7},
		{"sub claim resolves through the directory", &userctx.Claims{Sub: "alice"}, 11},
		{"unknown sub resolves to zero", &userctx.Claims{Sub: "nadie"}, 0},
		{"empty claims resolve to zero", &userctx.Claims{}, 0},
		{"no claims at all resolve to zero", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubAuditoriaRepo{}
			logger := newTestLogger(repo, usuarios)

			ctx := context.Background()
			if tt.claims != nil {
				ctx = userctx.WithClaims(ctx, *tt.claims)
			}

			logger.Log(ctx, "UPDATE", "PropiedadMinera", "cambios")

			if assert.Len(t, repo.records, 1) {
				assert.Equal(t, tt.want, repo.records[0].AudUsuario)
			}
		})
	}
}

func TestActorOverrideSkipsResolution(t *testing.T) {
	repo := &stubAuditoriaRepo{}
	logger := newTestLogger(repo, nil)

	ctx := userctx.WithClaims(context.Background(), userctx.Claims{ID: 7, HasID: true})
	fecha := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	logger.LogAs(ctx, "DELETE", "PropiedadMinera", "detalle", 99, fecha)

	if assert.Len(t, repo.records, 1) {
		assert.Equal(t, int64(99), repo.records[0].AudUsuario)
		assert.Equal(t, fecha, repo.records[0].AudFecha)
	}
}

func TestAuditFailureIsSwallowed(t *testing.T) {
	repo := &stubAuditoriaRepo{failCreate: true}
	logger := newTestLogger(repo, nil)

	// The business operation around this call must be unaffected: the logger
	// neither panics nor reports anything to the caller.
	assert.NotPanics(t, func() {
		logger.LogCreation(context.Background(), "PropiedadMinera", 1, nil)
		logger.LogUpdate(context.Background(), "PropiedadMinera", 1, nil)
		logger.LogDeletion(context.Background(), "PropiedadMinera", 1)
	})
	assert.Empty(t, repo.records)

	// Subsequent appends on the same logger work once the store recovers
	repo.failCreate = false
	logger.LogDeletion(context.Background(), "PropiedadMinera", 2)
	assert.Len(t, repo.records, 1)
}
