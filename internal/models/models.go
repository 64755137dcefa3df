// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package models defines the domain entities stored in the external data
// layer and the request/response shapes of the HTTP API.
//
// Entities mirror the collections of the relational datastore behind the
// auto-generated REST data layer: tactons, position_sets, tags, body_tags,
// tacton_tag_links, tacton_body_tag_links, users. JSON field names match the
// data layer's column names so rows round-trip through the store client
// without a mapping layer.
package models

import "time"

// Tacton is a stored, user-authored artifact bundling a title, description,
// binary payload, and a reference to a shared position set.
//
// OwnerID is a pointer because the data layer nulls it when the owning user
// is deleted (cascade policy lives in the storage layer, not here).
type Tacton struct {
	ID            string    `json:"id"`
	OwnerID       *string   `json:"owner_id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Payload       string    `json:"payload_blob"`
	PositionSetID string    `json:"position_set_id"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// PositionSet is an ordered collection of 3D motor coordinates stored in
// column-oriented form. It is value-like: looked up or created, never updated
// in place, and potentially shared by many tactons.
//
// Invariant: len(Xs) == len(Ys) == len(Zs). The normalizer in
// internal/positions is the only producer of these arrays.
type PositionSet struct {
	ID string    `json:"id"`
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`
	Zs []float64 `json:"zs"`
}

// Label is a free-text tag row. Tags and body-tags share this shape but live
// in independently-namespaced collections; internal/resolver dispatches on
// the collection, not on a flag inside the row.
type Label struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CreatorID *string `json:"creator_id,omitempty"`
}

// Link is a many-to-many association row between a tacton and a tag or
// body-tag. RefID holds the tag_id or body_tag_id depending on the
// collection the row lives in.
//
// After reconciliation at most one link exists per (tacton, ref) pair; the
// in-memory store additionally enforces that as a uniqueness constraint.
type Link struct {
	ID       string `json:"id"`
	TactonID string `json:"tacton_id"`
	RefID    string `json:"ref_id"`
}

// User is an account row. PasswordHash never leaves the server; the json tag
// keeps it out of every API response.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRow is the storage shape of User, including the password hash column.
// The store client marshals rows with encoding/json semantics, and User
// deliberately hides PasswordHash from marshaling, so the auth service uses
// this type when talking to the users collection.
type UserRow struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"password_hash"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUser converts a storage row to the API-safe User.
func (r UserRow) ToUser() User {
	return User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Admin:        r.Admin,
		CreatedAt:    r.CreatedAt,
	}
}
