package models

import "time"

// Field length limits enforced on every audit write.
const (
	AccionMaxLen      = 50
	EntidadMaxLen     = 100
	DescripcionMaxLen = 5000
)

// Auditoria is a single immutable audit log entry. Once written it is never
// modified or removed by normal application flow; the update/delete endpoints
// exist only for administrative correction.
type Auditoria struct {
	ID          int64     `json:"IdAuditoria"`
	Accion      string    `json:"Accion"`
	Entidad     string    `json:"Entidad"`
	Descripcion string    `json:"Descripcion"`
	AudFecha    time.Time `json:"AudFecha"`
	AudUsuario  int64     `json:"AudUsuario"`

	// UsuarioNombre is resolved via an outer join against usuarios; nil when
	// the acting user no longer exists (or was never resolved).
	UsuarioNombre *string `json:"UsuarioNombre"`
}

// AuditoriaForm is the request body accepted by the administrative
// create/update endpoints.
type AuditoriaForm struct {
	Accion      string    `json:"Accion"`
	Entidad     string    `json:"Entidad"`
	Descripcion string    `json:"Descripcion"`
	AudFecha    time.Time `json:"AudFecha"`
	AudUsuario  int64     `json:"AudUsuario"`
}

// Validate checks the form fields and returns a list of problems
func (f *AuditoriaForm) Validate() []string {
	var errors []string

	if f.Accion == "" {
		errors = append(errors, "accion is required")
	}
	if f.Entidad == "" {
		errors = append(errors, "entidad is required")
	}

	return errors
}

// AuditoriaFilter describes the criteria applied by the audit query engine.
// Every zero/empty field matches all records; supplied criteria combine with
// AND semantics.
type AuditoriaFilter struct {
	Usuario       string
	Entidades     []string
	Acciones      []string
	IDTransaccion string
	FechaDesde    *time.Time
	FechaHasta    *time.Time
}

// Active reports whether any criterion is set.
func (f AuditoriaFilter) Active() bool {
	return f.Usuario != "" ||
		len(f.Entidades) > 0 ||
		len(f.Acciones) > 0 ||
		f.IDTransaccion != "" ||
		f.FechaDesde != nil ||
		f.FechaHasta != nil
}
