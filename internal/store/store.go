// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package store provides the generic data-access client for the external
// auto-generated REST data layer.
//
// The relational datastore itself is outside this system; everything goes
// through a narrow interface of filtered reads, inserts, patches, and
// deletes against named collections. Filters are field-equality
// conjunctions only; the data layer owns any richer query dialect.
//
// Two implementations exist:
//
//   - REST: HTTP client for the data layer (PostgREST-style dialect)
//   - Memory: in-process store used by tests and --mock-data development
//     mode, with the same uniqueness and cascade behavior the production
//     schema declares
//
// Rows cross this interface as JSON-shaped values: callers pass structs (or
// maps) whose json tags match the collection's column names.
package store

import "context"

// Collection names of the tactus schema in the external data layer.
const (
	CollectionTactons      = "tactons"
	CollectionPositionSets = "position_sets"
	CollectionTags         = "tags"
	CollectionBodyTags     = "body_tags"
	CollectionTagLinks     = "tacton_tag_links"
	CollectionBodyTagLinks = "tacton_body_tag_links"
	CollectionUsers        = "users"
)

// Filter is a field-equality conjunction predicate: every key must equal the
// given value. A nil value matches SQL NULL. Slice values compare
// element-wise (used for position-set array columns).
type Filter map[string]interface{}

// Client is the generic data-access interface. All operations take a
// context because every call is a data-layer round-trip.
//
// Implementations classify failures with the apperr taxonomy: transport and
// shape failures are Dependency errors, uniqueness rejections are Conflict
// errors, and FindOne reports NotFound when the filter does not resolve to
// exactly one row (zero and many are indistinguishable to callers).
type Client interface {
	// Find retrieves all rows matching the filter into out, which must be a
	// pointer to a slice. A nil filter matches everything.
	Find(ctx context.Context, collection string, filter Filter, out interface{}) error

	// FindOne retrieves the single row matching the filter into out, which
	// must be a pointer to a struct. Zero or multiple matches yield
	// apperr.NotFound.
	FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error

	// Insert creates a new row. The data layer assigns the id; when out is
	// non-nil the persisted row (including its id) is decoded into it.
	Insert(ctx context.Context, collection string, row, out interface{}) error

	// Patch applies the non-zero fields of changes (a struct or map) to
	// every row matching the filter.
	Patch(ctx context.Context, collection string, filter Filter, changes interface{}) error

	// Delete removes all rows matching the filter and returns how many were
	// removed. Deleting nothing is not an error.
	Delete(ctx context.Context, collection string, filter Filter) (int, error)
}
