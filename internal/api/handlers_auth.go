// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/models"
)

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireUsers(w) {
		return
	}

	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, user, start)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireUsers(w) {
		return
	}

	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, resp, start)
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		respondError(w, http.StatusUnauthorized, "PERMISSION_ERROR", "not authenticated", nil)
		return
	}

	if h.users == nil {
		// Auth disabled: there is no user row behind the synthetic actor.
		respondSuccess(w, http.StatusOK, models.User{
			ID:       actor.ID,
			Username: actor.Username,
			Admin:    actor.Admin,
		}, start)
		return
	}

	user, err := h.users.Get(r.Context(), actor.ID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, user, start)
}

// requireUsers guards the account endpoints when auth is disabled.
func (h *Handler) requireUsers(w http.ResponseWriter) bool {
	if h.users == nil {
		respondError(w, http.StatusServiceUnavailable, "DEPENDENCY_ERROR", "authentication is disabled", nil)
		return false
	}
	return true
}
