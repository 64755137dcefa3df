// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package resolver

import (
	"context"
	"sort"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/store"
)

// ListLabels returns every label of the kind, sorted by name.
func (r *Resolver) ListLabels(ctx context.Context, kind Kind) ([]models.Label, error) {
	var labels []models.Label
	if err := r.store.Find(ctx, kind.Collection(), store.Filter{}, &labels); err != nil {
		return nil, err
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
	return labels, nil
}

// DeleteLabel removes a label and its link rows. Only the creator or an
// admin may delete; labels with a null creator need admin.
func (r *Resolver) DeleteLabel(ctx context.Context, kind Kind, id string) error {
	var label models.Label
	if err := r.store.FindOne(ctx, kind.Collection(), store.Filter{"id": id}, &label); err != nil {
		return err
	}
	if !auth.ActorFromContext(ctx).CanModify(label.CreatorID) {
		return apperr.Newf(apperr.Permission, "not the creator of this %s", kind)
	}

	// Links first so no row ever references a deleted label.
	if _, err := r.store.Delete(ctx, kind.LinkCollection(), store.Filter{"ref_id": id}); err != nil {
		return err
	}
	if _, err := r.store.Delete(ctx, kind.Collection(), store.Filter{"id": id}); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Str("kind", kind.String()).Str("name", label.Name).Msg("Deleted label")
	return nil
}
