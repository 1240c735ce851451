package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/handler"
	"pulsecheck/internal/transport/rest/middleware"
	"pulsecheck/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	CatalogService    *service.CatalogService
	AssessmentService *service.AssessmentService
	BenchmarkService  *service.BenchmarkService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	catalogHandler := handler.NewCatalogHandler(c.CatalogService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.AuthService)
	benchmarkHandler := handler.NewBenchmarkHandler(c.BenchmarkService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/catalog", catalogHandler.GetLatest).Methods("GET", "OPTIONS")
	v1.HandleFunc("/catalog/{version}", catalogHandler.GetVersion).Methods("GET", "OPTIONS")
	v1.HandleFunc("/responses", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/benchmark/{version}", benchmarkHandler.GetStats).Methods("GET", "OPTIONS")
	v1.HandleFunc("/benchmark/{version}/percentile", benchmarkHandler.GetPercentile).Methods("GET", "OPTIONS")

	// WebSocket routes (admin token in query param)
	v1.HandleFunc("/ws/dashboard/{version}", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Respondent-or-admin routes
	tokenRoutes := v1.NewRoute().Subrouter()
	tokenRoutes.Use(authMW.RequireAny)
	tokenRoutes.HandleFunc("/responses/{id}/assessment", assessmentHandler.Get).Methods("GET", "OPTIONS")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)
	adminRoutes.HandleFunc("/catalog", catalogHandler.Publish).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/responses/{id}/exclusion", benchmarkHandler.SetExclusion).Methods("PUT", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
