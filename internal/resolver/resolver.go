// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package resolver implements deduplicating lookup-or-create for the
// reference entities of the schema: tags, body-tags, and position sets.
//
// Resolution is idempotent: resolving the same normalized value twice
// returns the same row. Tags and body-tags are structurally identical but
// live in separate collections; Kind selects the collection so the two
// namespaces can never cross.
package resolver

import (
	"context"
	"strings"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/metrics"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/positions"
	"github.com/tomtom215/tactus/internal/store"
	"github.com/tomtom215/tactus/internal/validation"
)

// Kind selects which label namespace a resolution targets.
type Kind int

const (
	Tag Kind = iota
	BodyTag
)

// String returns the metric/log label for the kind.
func (k Kind) String() string {
	if k == BodyTag {
		return "body_tag"
	}
	return "tag"
}

// Collection returns the label collection for the kind.
func (k Kind) Collection() string {
	if k == BodyTag {
		return store.CollectionBodyTags
	}
	return store.CollectionTags
}

// LinkCollection returns the link collection joining tactons to this kind.
func (k Kind) LinkCollection() string {
	if k == BodyTag {
		return store.CollectionBodyTagLinks
	}
	return store.CollectionTagLinks
}

// Resolver performs lookup-or-create against the data layer.
type Resolver struct {
	store store.Client
}

// New creates a resolver over the given store client.
func New(st store.Client) *Resolver {
	return &Resolver{store: st}
}

// NormalizeName applies the name contract for the kind: whitespace is
// trimmed, and tag names (not body-tag names) are case-folded so "Fun" and
// "fun" resolve to one row. Returns a Conflict error when the result does
// not satisfy the reference-name charset and length rules.
func NormalizeName(kind Kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if kind == Tag {
		name = strings.ToLower(name)
	}
	if !validation.ValidName(name) {
		return "", apperr.Newf(apperr.Conflict, "invalid %s name %q", kind, name)
	}
	return name, nil
}

// ResolveName returns the label row for name, creating it when absent. The
// created row records the acting user as creator; anonymous requests may
// resolve existing names but not mint new ones.
func (r *Resolver) ResolveName(ctx context.Context, kind Kind, name string) (*models.Label, error) {
	normalized, err := NormalizeName(kind, name)
	if err != nil {
		return nil, err
	}

	var found []models.Label
	if err := r.store.Find(ctx, kind.Collection(), store.Filter{"name": normalized}, &found); err != nil {
		return nil, err
	}
	if len(found) > 0 {
		metrics.ResolverLookups.WithLabelValues(kind.String(), "hit").Inc()
		return &found[0], nil
	}

	actor := auth.ActorFromContext(ctx)
	if actor == nil {
		return nil, apperr.Newf(apperr.Permission, "creating %s %q requires an acting user", kind, normalized)
	}

	row := models.Label{Name: normalized, CreatorID: &actor.ID}
	var created models.Label
	if err := r.store.Insert(ctx, kind.Collection(), row, &created); err != nil {
		// A concurrent resolver may have created the same name between our
		// lookup and insert; re-read instead of failing.
		if apperr.IsKind(err, apperr.Conflict) {
			var existing models.Label
			if ferr := r.store.FindOne(ctx, kind.Collection(), store.Filter{"name": normalized}, &existing); ferr == nil {
				metrics.ResolverLookups.WithLabelValues(kind.String(), "hit").Inc()
				return &existing, nil
			}
		}
		return nil, err
	}

	metrics.ResolverLookups.WithLabelValues(kind.String(), "created").Inc()
	logging.Ctx(ctx).Debug().Str("kind", kind.String()).Str("name", normalized).Msg("Created label")
	return &created, nil
}

// LookupName returns the label row for name without creating it. A missing
// name returns (nil, nil); callers on the remove path treat that as a
// silent skip. Invalid names are likewise reported as absent, since a name
// that cannot exist cannot be linked.
func (r *Resolver) LookupName(ctx context.Context, kind Kind, name string) (*models.Label, error) {
	normalized, err := NormalizeName(kind, name)
	if err != nil {
		return nil, nil
	}

	var found []models.Label
	if err := r.store.Find(ctx, kind.Collection(), store.Filter{"name": normalized}, &found); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// ResolvePositions returns a position-set row whose columns equal cols,
// creating one when no match exists. Lookup matches on all three coordinate
// arrays; the first match wins when duplicates exist.
//
// The lookup-and-insert pair is not atomic, so two concurrent resolutions
// of the same columns can each insert a row. Both rows are valid and every
// tacton keeps a consistent reference, so the duplicate is tolerated rather
// than fenced with a storage constraint.
func (r *Resolver) ResolvePositions(ctx context.Context, cols positions.Columns) (*models.PositionSet, error) {
	filter := store.Filter{"xs": cols.Xs, "ys": cols.Ys, "zs": cols.Zs}

	var found []models.PositionSet
	if err := r.store.Find(ctx, store.CollectionPositionSets, filter, &found); err != nil {
		return nil, err
	}
	if len(found) > 0 {
		metrics.ResolverLookups.WithLabelValues("position_set", "hit").Inc()
		return &found[0], nil
	}

	row := models.PositionSet{Xs: cols.Xs, Ys: cols.Ys, Zs: cols.Zs}
	var created models.PositionSet
	if err := r.store.Insert(ctx, store.CollectionPositionSets, row, &created); err != nil {
		return nil, err
	}

	metrics.ResolverLookups.WithLabelValues("position_set", "created").Inc()
	logging.Ctx(ctx).Debug().Int("positions", cols.Len()).Str("id", created.ID).Msg("Created position set")
	return &created, nil
}
