package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	umbralv1 "github.com/simaogato/umbral-backend/internal/adapter/grpc/umbral/v1"
	"github.com/simaogato/umbral-backend/internal/identity"
)

// Config holds server configuration
type Config struct {
	Port     int
	Log      zerolog.Logger
	APIToken string
	Service  umbralv1.UmbralServiceServer
	DevMode  bool
}

// Server exposes UmbralService as a JSON HTTP API
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	service  umbralv1.UmbralServiceServer
	apiToken string
	port     int
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "http").Logger(),
		service:  cfg.Service,
		apiToken: cfg.APIToken,
		port:     cfg.Port,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	// Longer than the 30s LLM client timeout
	s.router.Use(middleware.Timeout(45 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.handleGetProfile)
			r.Patch("/", s.handleUpdateProfile)
			r.Post("/toggle-currency", s.handleToggleCurrency)
		})

		r.Route("/envelopes", func(r chi.Router) {
			r.Get("/", s.handleListEnvelopes)
			r.Post("/", s.handleCreateEnvelope)
			r.Patch("/{id}", s.handleUpdateEnvelope)
			r.Delete("/{id}", s.handleDeleteEnvelope)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.handleListAccounts)
			r.Post("/", s.handleCreateAccount)
			r.Patch("/{id}", s.handleUpdateAccount)
			r.Delete("/{id}", s.handleDeleteAccount)
		})

		r.Get("/rates", s.handleGetRates)
		r.Get("/dashboard", s.handleGetDashboard)
		r.Get("/projection", s.handleGetProjection)

		r.Route("/advisor", func(r chi.Router) {
			r.Post("/ask", s.handleAsk)
			r.Get("/insight", s.handleGetInsight)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// authMiddleware checks the bearer token and attaches the X-User-ID to the request context
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		if strings.TrimPrefix(header, "Bearer ") != s.apiToken {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := identity.Parse(r.Header.Get(identity.Header))
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, fmt.Sprintf("invalid %s: %v", identity.Header, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
	})
}
