package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/report"
	"github.com/catastro/minero-backend/services"
)

// reportLoadLimit caps how many candidate records the export pulls before
// filtering in memory.
const reportLoadLimit = 10000

// AuditoriaController handles audit record requests
type AuditoriaController struct {
	services *services.Services
}

// NewAuditoriaController creates a new auditoria controller
func NewAuditoriaController(services *services.Services) *AuditoriaController {
	return &AuditoriaController{services: services}
}

// List handles GET /auditorias
func (c *AuditoriaController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.services.Auditoria.GetAll(r.Context(), 0, 0)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load audit records: "+err.Error())
		return
	}

	total := len(items)
	start, end := parseRange(r.URL.Query().Get("range"), total)
	from, to := clampRange(start, end, total)
	page := items[from:to]
	if page == nil {
		page = []models.Auditoria{}
	}

	w.Header().Set("Content-Range", fmt.Sprintf("auditorias %d-%d/%d", start, end, total))
	respondJSON(w, http.StatusOK, page)
}

// Get handles GET /auditorias/{id}
func (c *AuditoriaController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid audit record ID")
		return
	}

	auditoria, err := c.services.Auditoria.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auditoria)
}

// Create handles POST /auditorias (administrative)
func (c *AuditoriaController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.AuditoriaForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if problems := form.Validate(); len(problems) > 0 {
		respondServiceError(w, &services.ValidationError{Problems: problems})
		return
	}

	auditoria, err := c.services.Auditoria.Create(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auditoria)
}

// Update handles PUT /auditorias/{id} (administrative correction)
func (c *AuditoriaController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid audit record ID")
		return
	}

	var form models.AuditoriaForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	auditoria, err := c.services.Auditoria.Update(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, auditoria)
}

// Delete handles DELETE /auditorias/{id} (administrative correction)
func (c *AuditoriaController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid audit record ID")
		return
	}

	if err := c.services.Auditoria.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// exportRequest is the filter body accepted by the PDF export endpoint.
// Dates arrive as strings so malformed values can degrade to "no bound".
type exportRequest struct {
	Usuario       string   `json:"usuario"`
	Entidad       []string `json:"entidad"`
	Accion        []string `json:"accion"`
	IDTransaccion string   `json:"idTransaccion"`
	FechaDesde    string   `json:"fechaDesde"`
	FechaHasta    string   `json:"fechaHasta"`
}

// ExportPDF handles POST /auditorias/export/pdf. It loads the candidate
// records, applies the submitted filters and streams back the rendered
// report. With no active filters the report covers everything.
func (c *AuditoriaController) ExportPDF(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	items, err := c.services.Auditoria.GetAll(r.Context(), 0, reportLoadLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load audit records: "+err.Error())
		return
	}

	filter := models.AuditoriaFilter{
		Usuario:       req.Usuario,
		Entidades:     req.Entidad,
		Acciones:      req.Accion,
		IDTransaccion: req.IDTransaccion,
		FechaDesde:    models.ParseFecha(req.FechaDesde),
		FechaHasta:    models.ParseFecha(req.FechaHasta),
	}

	filtered := services.FilterAuditorias(items, filter)

	pdfData, err := report.RenderAuditoriasPDF(filtered, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="auditorias.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}
