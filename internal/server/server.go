// Package server exposes the payoff simulator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"optionsim/internal/config"
	"optionsim/internal/store"
)

// Server wraps the HTTP API around the payoff engine. Every payoff
// request is computed from scratch; the server holds no scenario state.
type Server struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  store.ContractStore

	httpServer *http.Server
}

// New creates a server from config. The contract store may be nil, in
// which case symbol lookups return 503 and everything else still works.
func New(cfg *config.Config, logger zerolog.Logger, st store.ContractStore) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  st,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      s.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Router builds the route table. Exposed separately so tests can drive
// the handlers through httptest without binding a socket.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestIDMiddleware)
	router.Use(s.loggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/payoff/bull-call-spread", s.handleBullCallSpread).Methods(http.MethodPost)
	api.HandleFunc("/payoff/iron-condor", s.handleIronCondor).Methods(http.MethodPost)
	api.HandleFunc("/strategies", s.handleListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/contracts", s.handleListContracts).Methods(http.MethodGet)
	api.HandleFunc("/contracts/{symbol}", s.handleGetContract).Methods(http.MethodGet)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return router
}

// Addr returns the listen address the server is configured with.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
