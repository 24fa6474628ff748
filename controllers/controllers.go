package controllers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/catastro/minero-backend/repositories"
	"github.com/catastro/minero-backend/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auditoria *AuditoriaController
	Propiedad *PropiedadController
	Usuario   *UsuarioController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auditoria: NewAuditoriaController(services),
		Propiedad: NewPropiedadController(services),
		Usuario:   NewUsuarioController(services),
	}
}

// respondJSON writes v as a JSON response body
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes a JSON error body with the given status
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service-layer failures to HTTP statuses: missing
// records become 404, validation problems 400, everything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// parseRange reads a `range` query parameter formatted as a JSON two-element
// array, e.g. ?range=[0,24]. Malformed input falls back to the full range
// rather than failing.
func parseRange(raw string, total int) (start, end int) {
	start, end = 0, total-1
	if raw == "" {
		return start, end
	}

	var bounds []int
	if err := json.Unmarshal([]byte(raw), &bounds); err != nil || len(bounds) != 2 {
		return start, end
	}
	return bounds[0], bounds[1]
}

// clampRange bounds a requested [start, end] window to the candidate size
// and returns the half-open slice limits.
func clampRange(start, end, total int) (from, to int) {
	if start < 0 {
		start = 0
	}
	if end >= total {
		end = total - 1
	}
	if total == 0 || start > end {
		return 0, 0
	}
	return start, end + 1
}
