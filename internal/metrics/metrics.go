// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the Tactus backend:
//   - API endpoint latency and throughput
//   - Data-layer round-trips (the only shared resource, so the only place
//     latency can hide)
//   - Resolver dedup effectiveness (hit = reused existing row)
//   - Link reconciliation activity

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Data Layer Metrics
	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_request_duration_seconds",
			Help:    "Duration of data-layer round-trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"}, // operation: "find", "insert", "patch", "delete"
	)

	StoreRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_request_errors_total",
			Help: "Total number of data-layer request failures",
		},
		[]string{"operation", "collection", "error_type"},
	)

	// Resolver Metrics
	ResolverLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_lookups_total",
			Help: "Total lookup-or-create resolutions by outcome",
		},
		[]string{"kind", "outcome"}, // kind: "tag", "body_tag", "position_set"; outcome: "hit", "created"
	)

	// Link Reconciliation Metrics
	LinksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "links_created_total",
			Help: "Total link rows created by the reconciler",
		},
		[]string{"kind"},
	)

	LinksDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "links_deleted_total",
			Help: "Total link rows deleted by the reconciler",
		},
		[]string{"kind"},
	)

	LinksSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "links_skipped_total",
			Help: "Total link operations skipped as idempotent no-ops",
		},
		[]string{"kind", "reason"}, // reason: "already_linked", "unknown_name", "no_link"
	)

	// Auth Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "throttled"
	)
)

// ObserveStoreRequest records one data-layer round-trip.
func ObserveStoreRequest(operation, collection string, start time.Time, err error) {
	StoreRequestDuration.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreRequestErrors.WithLabelValues(operation, collection, "request").Inc()
	}
}
