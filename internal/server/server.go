// Package server provides the HTTP server and routing for the index engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/idea2index/engine/internal/config"
	"github.com/idea2index/engine/internal/modules/benchmark"
	"github.com/idea2index/engine/internal/modules/performance"
	performancehandlers "github.com/idea2index/engine/internal/modules/performance/handlers"
	"github.com/idea2index/engine/internal/modules/portfolio"
	portfoliohandlers "github.com/idea2index/engine/internal/modules/portfolio/handlers"
	"github.com/idea2index/engine/internal/modules/rebalancing"
	rebalancinghandlers "github.com/idea2index/engine/internal/modules/rebalancing/handlers"
	"github.com/idea2index/engine/internal/modules/scoring"
)

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	systemHandlers *SystemHandlers
	startedAt      time.Time
}

// New creates a new HTTP server and wires up all module services
func New(cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       log.With().Str("component", "server").Logger(),
		cfg:       cfg,
		startedAt: time.Now(),
	}
	s.systemHandlers = NewSystemHandlers(log, s.startedAt)

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// System monitoring
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
		})

		// Benchmark selection and synthetic performance pipeline
		benchmarkService := benchmark.NewService(s.log)
		scoringService := scoring.NewService(s.log)
		performanceService := performance.NewService(benchmarkService, s.cfg.RiskFreeRate, s.log)
		performanceHandler := performancehandlers.NewHandler(performanceService, scoringService, s.cfg.SyntheticData, s.log)
		performanceHandler.RegisterRoutes(r)

		// Portfolio module: holdings validation and weight normalization
		portfolioService := portfolio.NewService(s.cfg.MaxHoldings, s.log)
		portfolioHandler := portfoliohandlers.NewHandler(portfolioService, benchmarkService, s.log)
		portfolioHandler.RegisterRoutes(r)

		// Rebalancing sessions are in-process state for interactive edits
		rebalancingService := rebalancing.NewService(s.log)
		rebalancingHandler := rebalancinghandlers.NewHandler(rebalancingService, s.log)
		rebalancingHandler.RegisterRoutes(r)
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"status":    "healthy",
		"uptime_s":  int(time.Since(s.startedAt).Seconds()),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode health response")
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
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
