package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/catastro/minero-backend/config"
	"github.com/catastro/minero-backend/controllers"
	"github.com/catastro/minero-backend/database"
	authmiddleware "github.com/catastro/minero-backend/middleware"
	"github.com/catastro/minero-backend/repositories"
	"github.com/catastro/minero-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.Load()

	// Initialize database
	if err := database.InitializeDatabase(config.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs := services.NewServices(repos)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Set up router
	r := setupRouter(ctrl)

	fmt.Printf("🚀 Catastro Minero backend starting on port %s\n", config.Port)
	fmt.Printf("🗃️  Database: %s\n", config.DBPath)

	log.Fatal(http.ListenAndServe(":"+config.Port, r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "catastro-minero"}`)
	})

	// PROTECTED ROUTES (bearer token required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(config.JWTSecret))

		// Audit trail routes
		r.Route("/auditorias", func(r chi.Router) {
			r.Get("/", ctrl.Auditoria.List)
			r.Post("/", ctrl.Auditoria.Create)
			r.Post("/export/pdf", ctrl.Auditoria.ExportPDF)
			r.Get("/{id}", ctrl.Auditoria.Get)
			r.Put("/{id}", ctrl.Auditoria.Update)
			r.Delete("/{id}", ctrl.Auditoria.Delete)
		})

		// Mining property routes
		r.Route("/propiedades-mineras", func(r chi.Router) {
			r.Get("/", ctrl.Propiedad.List)
			r.Post("/", ctrl.Propiedad.Create)
			r.Get("/{id}", ctrl.Propiedad.Get)
			r.Put("/{id}", ctrl.Propiedad.Update)
			r.Delete("/{id}", ctrl.Propiedad.Delete)
		})

		// User directory routes
		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", ctrl.Usuario.List)
			r.Get("/{id}", ctrl.Usuario.Get)
		})
	})

	return r
}
