// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tactus/internal/models"
)

// AddTactonLinks handles POST /api/v1/tactons/{id}/tags. Missing labels are
// created; refs already linked are idempotent no-ops.
func (h *Handler) AddTactonLinks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ModifyLinksRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.tactons.AddLinks(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, nil, start)
}

// RemoveTactonLinks handles DELETE /api/v1/tactons/{id}/tags. Unknown names
// and absent links are silently skipped.
func (h *Handler) RemoveTactonLinks(w http.ResponseWriter, r *http.Request) {
	var req models.ModifyLinksRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.tactons.RemoveLinks(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
