// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sellerpilot/internal/config"
	"sellerpilot/internal/domain/insight"
	"sellerpilot/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	dashboardService insight.DashboardService,
	plannerService insight.PlannerService,
	listingService insight.ListingService,
	trendsService insight.TrendsService,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)
	listingHandler := handlers.NewListingHandler(listingService)
	trendsHandler := handlers.NewTrendsHandler(trendsService)

	// Health check
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to the Seller Co-pilot Backend!"}`))
	})

	// Routes
	router.Route("/api", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Post("/summary", dashboardHandler.GetSummary)
		})

		r.Route("/planner", func(r chi.Router) {
			r.Get("/full-report", plannerHandler.GetFullReport)
		})

		r.Route("/listing", func(r chi.Router) {
			r.Post("/", listingHandler.Generate)
			r.Post("/improve", listingHandler.Improve)
			r.Post("/translate", listingHandler.Translate)
		})

		r.Route("/trends", func(r chi.Router) {
			r.Post("/", trendsHandler.Analyze)
			r.Get("/feature-images", trendsHandler.FeatureImages)
		})

		// Cron placeholder for the hosting platform's scheduler.
		r.Route("/cron", func(r chi.Router) {
			r.Get("/run-cron", runCron)
		})
	})

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

func runCron(w http.ResponseWriter, r *http.Request) {
	log.Println("Cron task executed")
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Cron task executed!"}`))
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
