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

// CreateTacton handles POST /api/v1/tactons.
func (h *Handler) CreateTacton(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateTactonRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	detail, err := h.tactons.Create(r.Context(), &req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, detail, start)
}

// GetTacton handles GET /api/v1/tactons/{id}.
func (h *Handler) GetTacton(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	detail, err := h.tactons.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, detail, start)
}

// ListTactons handles GET /api/v1/tactons.
func (h *Handler) ListTactons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, offset := h.pageParams(r)
	rows, err := h.tactons.List(r.Context(), limit, offset)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, rows, start)
}

// UpdateTacton handles PATCH /api/v1/tactons/{id}.
func (h *Handler) UpdateTacton(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateTactonRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	detail, err := h.tactons.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, detail, start)
}

// DeleteTacton handles DELETE /api/v1/tactons/{id}. Deleting an absent
// tacton still returns 204.
func (h *Handler) DeleteTacton(w http.ResponseWriter, r *http.Request) {
	if err := h.tactons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
