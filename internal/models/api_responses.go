// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses, with metadata for observability.
//
// Status is "success" or "error"; Error is populated only when Status is
// "error".
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"id": "...", "title": "Demo"},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z", "query_time_ms": 12}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "title must be 2-128 characters"},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability. QueryTimeMS is the
// cumulative time spent in data-layer round-trips for the request.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details in the response envelope.
//
// Codes mirror the apperr taxonomy: VALIDATION_ERROR, CONFLICT_ERROR,
// PERMISSION_ERROR, NOT_FOUND, DEPENDENCY_ERROR, plus transport-level codes
// such as METHOD_NOT_ALLOWED and RATE_LIMIT_EXCEEDED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
