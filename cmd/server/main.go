// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package main is the entry point for the Tactus server.
//
// Tactus is a backend for a tactile pattern library: named artifacts
// ("tactons") bundle a payload with a set of motor positions and carry
// many-to-many tag and body-tag associations. All persistence goes through
// an auto-generated REST data layer in front of the relational store.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config.yaml, and
//     environment variables (Koanf v2)
//  2. Data layer client: REST client for the external data API, or the
//     in-memory store when DATA_API_MOCK=true
//  3. Authentication: JWT session tokens, or no-auth mode for development
//  4. Services: reference resolver, tacton aggregate service, user accounts
//  5. HTTP server: chi router with CORS, rate limiting, and Prometheus
//     metrics on /metrics
//
// # Configuration
//
// Common settings (see internal/config for the full list):
//
//	export DATA_API_BASE_URL=http://localhost:3000
//	export SECURITY_JWT_SECRET=$(openssl rand -base64 32)
//	export SECURITY_AUTH_MODE=none  # development only
//	export DATA_API_MOCK=true       # in-memory store, no data layer needed
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections and waits for in-flight requests up to the
// configured shutdown timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/tactus/internal/api"
	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/config"
	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/resolver"
	"github.com/tomtom215/tactus/internal/store"
	"github.com/tomtom215/tactus/internal/tacton"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("data_api_mock", cfg.DataAPI.Mock).
		Msg("Starting Tactus")

	st, err := newStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize data layer client")
	}

	res := resolver.New(st)
	tactons := tacton.NewService(st, res)

	var jwtMgr *auth.JWTManager
	var users *auth.UserService
	if cfg.Security.AuthMode == "jwt" {
		jwtMgr, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize token manager")
		}
		users = auth.NewUserService(st, jwtMgr, &cfg.Security)
	} else {
		logging.Warn().Msg("Authentication disabled; every request acts as a shared admin")
	}

	handler := api.NewHandler(st, users, tactons, res, cfg)
	router := api.NewRouter(handler, auth.NewMiddleware(jwtMgr, cfg.Security.AuthMode), api.NewChiMiddleware(&cfg.Security))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Shutdown complete")
}

// newStore selects the data-layer client: the in-memory store for
// development and CI, or the REST client against the configured data API.
func newStore(cfg *config.Config) (store.Client, error) {
	if cfg.DataAPI.Mock {
		logging.Warn().Msg("Using in-memory store; data is not persisted")
		return store.NewMemory(), nil
	}
	return store.NewREST(cfg.DataAPI.BaseURL, cfg.DataAPI.Timeout)
}
