package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/repositories"
	"github.com/catastro/minero-backend/userctx"
)

// AuditLogger is the facade every business mutation calls after it succeeds.
// Its central contract is failure isolation: nothing that goes wrong while
// writing an audit record may affect the business operation that triggered
// it. All entry points therefore return nothing; append failures are logged
// and swallowed, and the store's own-transaction append guarantees no
// poisoned transaction leaks back to the caller.
type AuditLogger struct {
	auditorias AuditoriaService
	usuarios   repositories.UsuarioRepository
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(auditorias AuditoriaService, usuarios repositories.UsuarioRepository) *AuditLogger {
	return &AuditLogger{
		auditorias: auditorias,
		usuarios:   usuarios,
	}
}

// creationDetail et al. fix the key order of the serialized description.
type creationDetail struct {
	ID   any            `json:"id"`
	Data map[string]any `json:"data"`
}

type updateDetail struct {
	ID      any            `json:"id"`
	Changes map[string]any `json:"changes"`
}

type deletionDetail struct {
	ID any `json:"id"`
}

// LogCreation records a CREATE event for an entity
func (l *AuditLogger) LogCreation(ctx context.Context, entidad string, entityID any, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	l.Log(ctx, "CREATE", entidad, creationDetail{ID: entityID, Data: payload})
}

// LogUpdate records an UPDATE event with the applied changes
func (l *AuditLogger) LogUpdate(ctx context.Context, entidad string, entityID any, changes map[string]any) {
	if changes == nil {
		changes = map[string]any{}
	}
	l.Log(ctx, "UPDATE", entidad, updateDetail{ID: entityID, Changes: changes})
}

// LogDeletion records a DELETE event for an entity
func (l *AuditLogger) LogDeletion(ctx context.Context, entidad string, entityID any) {
	l.Log(ctx, "DELETE", entidad, deletionDetail{ID: entityID})
}

// Log records a generic audit event. The actor is resolved from the identity
// claims on ctx and the timestamp defaults to now.
func (l *AuditLogger) Log(ctx context.Context, accion, entidad string, descripcion any) {
	l.LogAs(ctx, accion, entidad, descripcion, 0, time.Time{})
}

// LogAs is Log with explicit overrides: a non-zero audUsuario skips actor
// resolution and a non-zero audFecha overrides the event timestamp.
func (l *AuditLogger) LogAs(ctx context.Context, accion, entidad string, descripcion any, audUsuario int64, audFecha time.Time) {
	usuarioID := audUsuario
	if usuarioID == 0 {
		usuarioID = l.resolveUsuarioID(ctx)
	}

	form := &models.AuditoriaForm{
		Accion:      truncate(accion, models.AccionMaxLen),
		Entidad:     truncate(entidad, models.EntidadMaxLen),
		Descripcion: truncate(serializeDescripcion(descripcion), models.DescripcionMaxLen),
		AudFecha:    audFecha,
		AudUsuario:  usuarioID,
	}

	if _, err := l.auditorias.Create(ctx, form); err != nil {
		// The business operation already succeeded; record the failure and
		// move on.
		log.Printf("Failed to write audit record for %s on %s: %v. The main operation completed but was not audited.",
			accion, entidad, err)
	}
}

// serializeDescripcion turns an arbitrary description payload into the stored
// text form. Strings pass through verbatim; anything else is JSON-encoded,
// falling back to its fmt representation when it cannot be marshaled. It
// never fails.
func serializeDescripcion(descripcion any) string {
	if s, ok := descripcion.(string); ok {
		return s
	}

	data, err := json.Marshal(descripcion)
	if err != nil {
		return fmt.Sprintf("%v", descripcion)
	}
	return string(data)
}

// resolveUsuarioID derives the acting user from the identity claims: a
// numeric id claim wins outright, otherwise the sub claim is looked up in the
// user directory. Anything unresolvable is 0, never an error.
func (l *AuditLogger) resolveUsuarioID(ctx context.Context) int64 {
	claims := userctx.ClaimsFrom(ctx)

	if id, ok := claims.NumericID(); ok {
		return id
	}

	sub, ok := claims.Subject()
	if !ok {
		return 0
	}

	usuario, err := l.usuarios.GetByUsername(ctx, sub)
	if err != nil {
		return 0
	}
	return usuario.ID
}
