// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/store"
)

// healthStatus is the payload of the health endpoints.
type healthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	DataLayer     string  `json:"data_layer,omitempty"`
}

// HealthLive handles GET /api/v1/health/live. Always 200 while the process
// can serve requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, healthStatus{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready: 200 when the data layer
// answers a probe read, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var probe []models.Label
	if err := h.store.Find(r.Context(), store.CollectionTags, store.Filter{}, &probe); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data: healthStatus{
				Status:        "not_ready",
				UptimeSeconds: time.Since(h.startTime).Seconds(),
				DataLayer:     "unreachable",
			},
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    &models.APIError{Code: "DEPENDENCY_ERROR", Message: "data layer unreachable"},
		})
		return
	}

	respondSuccess(w, http.StatusOK, healthStatus{
		Status:        "ready",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		DataLayer:     "ok",
	}, start)
}
