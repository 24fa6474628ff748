package models

import (
	"strings"
	"time"
)

// PropiedadMinera is a registered mining property, the main audited business
// entity of the registry.
type PropiedadMinera struct {
	ID         int64     `json:"IdPropiedadMinera"`
	Nombre     string    `json:"Nombre"`
	Provincia  string    `json:"Provincia"`
	IDTitular  int64     `json:"IdTitular"`
	Expediente string    `json:"Expediente"`
	Hectareas  float64   `json:"Hectareas"`
	CreatedAt  time.Time `json:"CreatedAt"`
}

// PropiedadMineraForm is the request body for create/update operations.
type PropiedadMineraForm struct {
	Nombre     string  `json:"Nombre"`
	Provincia  string  `json:"Provincia"`
	IDTitular  int64   `json:"IdTitular"`
	Expediente string  `json:"Expediente"`
	Hectareas  float64 `json:"Hectareas"`
}

// Validate checks the form fields and returns a list of problems
func (f *PropiedadMineraForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Nombre) == "" {
		errors = append(errors, "nombre is required")
	}
	if strings.TrimSpace(f.Provincia) == "" {
		errors = append(errors, "provincia is required")
	}
	if f.Hectareas < 0 {
		errors = append(errors, "hectareas must not be negative")
	}

	return errors
}

// PropiedadMineraFilter holds the list-endpoint filter criteria.
type PropiedadMineraFilter struct {
	Nombre     string
	Provincia  string
	IDTitular  int64
	Expediente string
}
