package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/services"
)

// UsuarioController exposes the user directory read side
type UsuarioController struct {
	services *services.Services
}

// NewUsuarioController creates a new usuario controller
func NewUsuarioController(services *services.Services) *UsuarioController {
	return &UsuarioController{services: services}
}

// List handles GET /usuarios
func (c *UsuarioController) List(w http.ResponseWriter, r *http.Request) {
	usuarios, err := c.services.Usuario.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load usuarios: "+err.Error())
		return
	}
	if usuarios == nil {
		usuarios = []models.Usuario{}
	}

	respondJSON(w, http.StatusOK, usuarios)
}

// Get handles GET /usuarios/{id}
func (c *UsuarioController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid usuario ID")
		return
	}

	usuario, err := c.services.Usuario.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, usuario)
}
