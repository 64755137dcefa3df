// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package auth provides the acting-user model, JWT session tokens, password
// hashing, the authentication middleware, and the user account service.
//
// The core packages (resolver, tacton) consume only the Actor type: once a
// request passes the middleware, the actor is trusted input. How the token
// was issued and verified stays behind this package.
package auth

import "context"

// Actor is the acting user attached to an authenticated request. A nil
// *Actor means no acting user (anonymous request in auth_mode none).
type Actor struct {
	ID       string
	Username string
	Admin    bool
}

// CanModify reports whether the actor may mutate a resource owned by
// ownerID (which is nil for orphaned resources). Admins may modify
// anything; owners may modify their own rows; everyone else may not.
func (a *Actor) CanModify(ownerID *string) bool {
	if a == nil {
		return false
	}
	if a.Admin {
		return true
	}
	return ownerID != nil && *ownerID == a.ID
}

// actorContextKey is the private context key for the request actor.
type actorContextKey struct{}

// WithActor returns a context carrying the acting user.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext retrieves the acting user, or nil when the request is
// anonymous.
func ActorFromContext(ctx context.Context) *Actor {
	if actor, ok := ctx.Value(actorContextKey{}).(*Actor); ok {
		return actor
	}
	return nil
}
