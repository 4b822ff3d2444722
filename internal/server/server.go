package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/suyash242004/decentralfund-dao/internal/modules/governance"
	"github.com/suyash242004/decentralfund-dao/internal/modules/insights"
	"github.com/suyash242004/decentralfund-dao/internal/modules/optimization"
	"github.com/suyash242004/decentralfund-dao/internal/modules/reports"
	"github.com/suyash242004/decentralfund-dao/internal/modules/sentiment"
)

// Config holds server configuration
type Config struct {
	Port         int
	Log          zerolog.Logger
	Optimization *optimization.Service
	Insights     *insights.Service
	Sentiment    *sentiment.Analyzer
	Governance   *governance.Predictor
	Reports      *reports.Service
	DevMode      bool
}

// Server represents the HTTP server
type Server struct {
	router       *chi.Mux
	server       *http.Server
	log          zerolog.Logger
	optimization *optimization.Service
	insights     *insights.Service
	sentiment    *sentiment.Analyzer
	governance   *governance.Predictor
	reports      *reports.Service
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		log:          cfg.Log.With().Str("component", "server").Logger(),
		optimization: cfg.Optimization,
		insights:     cfg.Insights,
		sentiment:    cfg.Sentiment,
		governance:   cfg.Governance,
		reports:      cfg.Reports,
	}

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
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/optimize", s.handleOptimizePortfolio)
		})
		r.Route("/insights", func(r chi.Router) {
			r.Get("/market", s.handleMarketInsights)
		})
		r.Route("/sentiment", func(r chi.Router) {
			r.Post("/analyze", s.handleAnalyzeSentiment)
		})
		r.Route("/governance", func(r chi.Router) {
			r.Post("/predict", s.handlePredictProposal)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Post("/investment", s.handleInvestmentReport)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
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
