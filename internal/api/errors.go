// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package api

import (
	"net/http"

	"github.com/tomtom215/tactus/internal/apperr"
)

// respondAppError maps the error taxonomy onto HTTP statuses. Validation,
// conflict, and not-found failures all surface as 400: the API deliberately
// does not distinguish "no such row" from "bad reference" so existence of
// other users' data cannot be probed. Only the caller-safe message is sent;
// wrapped causes stay in the logs.
func respondAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperr.Validation, apperr.Conflict, apperr.NotFound:
		status = http.StatusBadRequest
	case apperr.Permission:
		status = http.StatusUnauthorized
	case apperr.Dependency:
		status = http.StatusInternalServerError
	}

	respondError(w, status, kind.String(), apperr.MessageOf(err), err)
}
