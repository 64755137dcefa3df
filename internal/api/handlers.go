// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package api provides the HTTP surface: handlers, routing, and the
// response envelope shared by every endpoint.
//
// Handler methods are split across files by resource:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared response/decoding helpers
//   - handlers_auth.go: registration, login, current user
//   - handlers_tactons.go: tacton CRUD
//   - handlers_links.go: tag/body-tag link add and remove
//   - handlers_refs.go: position sets, tags, body-tags
//   - handlers_health.go: liveness and readiness
package api

import (
	"time"

	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/config"
	"github.com/tomtom215/tactus/internal/resolver"
	"github.com/tomtom215/tactus/internal/store"
	"github.com/tomtom215/tactus/internal/tacton"
)

// Handler carries the service dependencies for all API endpoints.
type Handler struct {
	store     store.Client
	users     *auth.UserService
	tactons   *tacton.Service
	resolver  *resolver.Resolver
	config    *config.Config
	startTime time.Time
}

// NewHandler creates the API handler. users may be nil when auth is
// disabled; the auth endpoints then respond with a dependency error.
func NewHandler(st store.Client, users *auth.UserService, tactons *tacton.Service, res *resolver.Resolver, cfg *config.Config) *Handler {
	return &Handler{
		store:     st,
		users:     users,
		tactons:   tactons,
		resolver:  res,
		config:    cfg,
		startTime: time.Now(),
	}
}
