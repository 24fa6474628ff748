package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catastro/minero-backend/database"
	authmiddleware "github.com/catastro/minero-backend/middleware"
	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/repositories"
	"github.com/catastro/minero-backend/services"
)

var testSecret = []byte("test-secret")

// setupTestServer wires the full stack (real SQLite store, repositories,
// services, controllers, auth middleware) behind an httptest server.
func setupTestServer(t *testing.T) *httptest.Server {
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"
	t.Cleanup(func() {
		database.CloseDB()
		os.Remove(dbPath)
	})

	require.NoError(t, database.InitializeDatabase(dbPath))

	repos := repositories.NewRepositories(database.GetDB())
	srvs := services.NewServices(repos)
	ctrl := NewControllers(srvs)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(testSecret))

		r.Route("/auditorias", func(r chi.Router) {
			r.Get("/", ctrl.Auditoria.List)
			r.Post("/export/pdf", ctrl.Auditoria.ExportPDF)
			r.Get("/{id}", ctrl.Auditoria.Get)
			r.Delete("/{id}", ctrl.Auditoria.Delete)
		})
		r.Route("/propiedades-mineras", func(r chi.Router) {
			r.Get("/", ctrl.Propiedad.List)
			r.Post("/", ctrl.Propiedad.Create)
			r.Put("/{id}", ctrl.Propiedad.Update)
			r.Delete("/{id}", ctrl.Propiedad.Delete)
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMutationIsAuditedEndToEnd(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, jwt.MapClaims{"id": 7})

	// Create a mining property
	resp := doRequest(t, http.MethodPost, server.URL+"/propiedades-mineras", token, models.PropiedadMineraForm{
		Nombre:    "Mina El Cóndor",
		Provincia: "San Juan",
		IDTitular: 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var propiedad models.PropiedadMinera
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&propiedad))
	require.NotZero(t, propiedad.ID)

	// The audit trail holds exactly one CREATE record for the entity,
	// attributed to the id claim and carrying the entity id in its detail
	resp = doRequest(t, http.MethodGet, server.URL+"/auditorias", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "auditorias 0-0/1", resp.Header.Get("Content-Range"))

	var auditorias []models.Auditoria
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auditorias))
	require.Len(t, auditorias, 1)
	assert.Equal(t, "CREATE", auditorias[0].Accion)
	assert.Equal(t, "PropiedadMinera", auditorias[0].Entidad)
	assert.Equal(t, int64(7), auditorias[0].AudUsuario)
	assert.Contains(t, auditorias[0].Descripcion, `"id":1`)

	// Update and delete add their own records
	resp = doRequest(t, http.MethodPut, server.URL+"/propiedades-mineras/1", token, models.PropiedadMineraForm{
		Nombre:    "Mina El Cóndor",
		Provincia: "San Juan",
		IDTitular: 3,
		Hectareas: 130,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, server.URL+"/propiedades-mineras/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, server.URL+"/auditorias", token, nil)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auditorias))
	require.Len(t, auditorias, 3)
	// Most recent first
	assert.Equal(t, "DELETE", auditorias[0].Accion)
	assert.Equal(t, "UPDATE", auditorias[1].Accion)
	assert.Equal(t, "CREATE", auditorias[2].Accion)
}

func TestAuditWriteFailureDoesNotAffectBusinessOperation(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, jwt.MapClaims{"id": 7})

	// Break the audit table only; business writes must keep working
	_, err := database.GetDB().Exec("DROP TABLE auditorias")
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPost, server.URL+"/propiedades-mineras", token, models.PropiedadMineraForm{
		Nombre:    "Cantera Norte",
		Provincia: "Mendoza",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The session stayed clean: listing still works afterwards
	resp = doRequest(t, http.MethodGet, server.URL+"/propiedades-mineras", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExportPDFEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, jwt.MapClaims{"sub": "auditor"})

	resp := doRequest(t, http.MethodPost, server.URL+"/propiedades-mineras", token, models.PropiedadMineraForm{
		Nombre:    "Veta Sur",
		Provincia: "Salta",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, server.URL+"/auditorias/export/pdf", token, map[string]any{
		"entidad":    []string{"propiedadminera"},
		"fechaDesde": "2020-01-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="auditorias.pdf"`, resp.Header.Get("Content-Disposition"))

	buf := make([]byte, 4)
	_, err := resp.Body.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(buf))
}

func TestCRUDErrorMapping(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, jwt.MapClaims{"id": 1})

	// Missing records surface as 404 on direct CRUD paths
	resp := doRequest(t, http.MethodGet, server.URL+"/auditorias/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, server.URL+"/propiedades-mineras/999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Validation failures surface as 400
	resp = doRequest(t, http.MethodPost, server.URL+"/propiedades-mineras", token, models.PropiedadMineraForm{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Requests without a token are rejected
	resp = doRequest(t, http.MethodGet, server.URL+"/auditorias", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListRangePagination(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, jwt.MapClaims{"id": 1})

	for _, nombre := range []string{"Alfa", "Beta", "Gamma"} {
		resp := doRequest(t, http.MethodPost, server.URL+"/propiedades-mineras", token, models.PropiedadMineraForm{
			Nombre:    nombre,
			Provincia: "Chubut",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doRequest(t, http.MethodGet, server.URL+`/auditorias?range=[0,1]`, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "auditorias 0-1/3", resp.Header.Get("Content-Range"))

	var auditorias []models.Auditoria
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auditorias))
	assert.Len(t, auditorias, 2)

	// Malformed range falls back to the full set
	resp = doRequest(t, http.MethodGet, server.URL+`/auditorias?range=oops`, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasSuffix(resp.Header.Get("Content-Range"), "/3"))
}
