// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package auth

import (
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/models"
)

// Middleware authenticates requests and places the resulting Actor in the
// request context. In mode "none" every request acts as a shared admin
// user, so ownership checks pass and labels stay creatable without login.
type Middleware struct {
	jwt      *JWTManager
	authMode string
}

// NewMiddleware creates the authentication middleware. jwt may be nil when
// mode is "none".
func NewMiddleware(jwt *JWTManager, mode string) *Middleware {
	return &Middleware{jwt: jwt, authMode: mode}
}

// Authenticate requires a valid bearer token unless auth is disabled.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == "none" {
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), anonymousAdmin())))
			return
		}

		token := bearerToken(r)
		if token == "" {
			unauthorized(w, r, "missing bearer token")
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			unauthorized(w, r, "invalid or expired token")
			return
		}

		ctx := WithActor(r.Context(), claims.Actor())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional attaches an Actor when a valid token is present but lets
// anonymous requests through. Read-only endpoints use this so creator
// attribution works without forcing login.
func (m *Middleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == "none" {
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), anonymousAdmin())))
			return
		}
		if token := bearerToken(r); token != "" {
			if claims, err := m.jwt.ValidateToken(token); err == nil {
				r = r.WithContext(WithActor(r.Context(), claims.Actor()))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// anonymousAdmin is the acting user substituted for every request when
// authentication is disabled.
func anonymousAdmin() *Actor {
	return &Actor{ID: "anonymous", Username: "anonymous", Admin: true}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "PERMISSION_ERROR",
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode auth error response")
	}
}
