package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/services"
)

// PropiedadController handles mining property requests. Every successful
// mutation is reported to the audit logger; an audit failure never affects
// the response.
type PropiedadController struct {
	services *services.Services
}

// NewPropiedadController creates a new propiedad controller
func NewPropiedadController(services *services.Services) *PropiedadController {
	return &PropiedadController{services: services}
}

// List handles GET /propiedades-mineras
func (c *PropiedadController) List(w http.ResponseWriter, r *http.Request) {
	filter := parsePropiedadFilter(r.URL.Query().Get("filter"))

	// Default page mirrors the frontend's first request
	start, end := parseRange(r.URL.Query().Get("range"), 10)
	if start < 0 {
		start = 0
	}
	limit := end - start + 1
	if limit < 0 {
		limit = 0
	}

	items, total, err := c.services.Propiedad.GetFiltered(r.Context(), filter, start, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load propiedades: "+err.Error())
		return
	}
	if items == nil {
		items = []models.PropiedadMinera{}
	}

	w.Header().Set("Content-Range",
		fmt.Sprintf("propiedades-mineras %d-%d/%d", start, start+len(items)-1, total))
	respondJSON(w, http.StatusOK, items)
}

// parsePropiedadFilter reads the `filter` query parameter, a JSON object of
// optional criteria. Malformed input means no filtering.
func parsePropiedadFilter(raw string) models.PropiedadMineraFilter {
	var filter models.PropiedadMineraFilter
	if raw == "" {
		return filter
	}

	var body struct {
		Nombre     string `json:"Nombre"`
		Provincia  string `json:"Provincia"`
		IDTitular  string `json:"IdTitular"`
		Expediente string `json:"Expediente"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return filter
	}

	filter.Nombre = body.Nombre
	filter.Provincia = body.Provincia
	filter.Expediente = body.Expediente
	if id, err := strconv.ParseInt(body.IDTitular, 10, 64); err == nil {
		filter.IDTitular = id
	}
	return filter
}

// Get handles GET /propiedades-mineras/{id}
func (c *PropiedadController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid propiedad ID")
		return
	}

	propiedad, err := c.services.Propiedad.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, propiedad)
}

// Create handles POST /propiedades-mineras
func (c *PropiedadController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.PropiedadMineraForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	propiedad, err := c.services.Propiedad.Create(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	c.services.AuditLog.LogCreation(r.Context(), "PropiedadMinera", propiedad.ID, map[string]any{
		"Nombre":     form.Nombre,
		"Provincia":  form.Provincia,
		"IdTitular":  form.IDTitular,
		"Expediente": form.Expediente,
		"Hectareas":  form.Hectareas,
	})

	respondJSON(w, http.StatusOK, propiedad)
}

// Update handles PUT /propiedades-mineras/{id}
func (c *PropiedadController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid propiedad ID")
		return
	}

	var form models.PropiedadMineraForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	propiedad, err := c.services.Propiedad.Update(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	c.services.AuditLog.LogUpdate(r.Context(), "PropiedadMinera", id, map[string]any{
		"Nombre":     form.Nombre,
		"Provincia":  form.Provincia,
		"IdTitular":  form.IDTitular,
		"Expediente": form.Expediente,
		"Hectareas":  form.Hectareas,
	})

	respondJSON(w, http.StatusOK, propiedad)
}

// Delete handles DELETE /propiedades-mineras/{id}
func (c *PropiedadController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid propiedad ID")
		return
	}

	if err := c.services.Propiedad.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	c.services.AuditLog.LogDeletion(r.Context(), "PropiedadMinera", id)

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
