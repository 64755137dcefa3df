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
	"github.com/tomtom215/tactus/internal/positions"
	"github.com/tomtom215/tactus/internal/resolver"
	"github.com/tomtom215/tactus/internal/store"
)

// ResolvePositionSet handles POST /api/v1/position-sets: resolve-or-create
// a position set from either coordinate representation.
func (h *Handler) ResolvePositionSet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PositionSetInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	cols, err := positions.Normalize(req)
	if err != nil {
		respondAppError(w, err)
		return
	}
	set, err := h.resolver.ResolvePositions(r.Context(), cols)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, models.PositionSetResponse{
		ID:        set.ID,
		Positions: positions.Rows(positions.FromSet(*set)),
	}, start)
}

// GetPositionSet handles GET /api/v1/position-sets/{id}.
func (h *Handler) GetPositionSet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var set models.PositionSet
	if err := h.store.FindOne(r.Context(), store.CollectionPositionSets, store.Filter{"id": chi.URLParam(r, "id")}, &set); err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.PositionSetResponse{
		ID:        set.ID,
		Positions: positions.Rows(positions.FromSet(set)),
	}, start)
}

// ResolveTag handles POST /api/v1/tags.
func (h *Handler) ResolveTag(w http.ResponseWriter, r *http.Request) {
	h.resolveLabel(w, r, resolver.Tag)
}

// ResolveBodyTag handles POST /api/v1/body-tags.
func (h *Handler) ResolveBodyTag(w http.ResponseWriter, r *http.Request) {
	h.resolveLabel(w, r, resolver.BodyTag)
}

func (h *Handler) resolveLabel(w http.ResponseWriter, r *http.Request, kind resolver.Kind) {
	start := time.Now()

	var req models.CreateLabelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	label, err := h.resolver.ResolveName(r.Context(), kind, req.Name)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, label, start)
}

// ListTags handles GET /api/v1/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	h.listLabels(w, r, resolver.Tag)
}

// ListBodyTags handles GET /api/v1/body-tags.
func (h *Handler) ListBodyTags(w http.ResponseWriter, r *http.Request) {
	h.listLabels(w, r, resolver.BodyTag)
}

func (h *Handler) listLabels(w http.ResponseWriter, r *http.Request, kind resolver.Kind) {
	start := time.Now()

	labels, err := h.resolver.ListLabels(r.Context(), kind)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, labels, start)
}

// DeleteTag handles DELETE /api/v1/tags/{id}.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	h.deleteLabel(w, r, resolver.Tag)
}

// DeleteBodyTag handles DELETE /api/v1/body-tags/{id}.
func (h *Handler) DeleteBodyTag(w http.ResponseWriter, r *http.Request) {
	h.deleteLabel(w, r, resolver.BodyTag)
}

func (h *Handler) deleteLabel(w http.ResponseWriter, r *http.Request, kind resolver.Kind) {
	if err := h.resolver.DeleteLabel(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
