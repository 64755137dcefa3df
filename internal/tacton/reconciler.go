// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package tacton

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/metrics"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/resolver"
	"github.com/tomtom215/tactus/internal/store"
)

// addLinks links the resolved labels to the tacton. Refs already linked are
// skipped, so re-adding is an idempotent no-op; the remaining link rows are
// inserted concurrently with fail-fast join semantics. Inserts that lose a
// concurrent race to the store's link uniqueness constraint are counted as
// already linked, not failed.
func (s *Service) addLinks(ctx context.Context, tactonID string, kind resolver.Kind, labels []*models.Label) error {
	if len(labels) == 0 {
		return nil
	}

	var existing []models.Link
	if err := s.store.Find(ctx, kind.LinkCollection(), store.Filter{"tacton_id": tactonID}, &existing); err != nil {
		return err
	}
	linked := make(map[string]bool, len(existing))
	for _, link := range existing {
		linked[link.RefID] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label.ID] {
			continue
		}
		seen[label.ID] = true

		if linked[label.ID] {
			metrics.LinksSkipped.WithLabelValues(kind.String(), "already_linked").Inc()
			continue
		}

		g.Go(func() error {
			row := models.Link{TactonID: tactonID, RefID: label.ID}
			var created models.Link
			err := s.store.Insert(gctx, kind.LinkCollection(), row, &created)
			if apperr.IsKind(err, apperr.Conflict) {
				metrics.LinksSkipped.WithLabelValues(kind.String(), "already_linked").Inc()
				return nil
			}
			if err != nil {
				return err
			}
			metrics.LinksCreated.WithLabelValues(kind.String()).Inc()
			return nil
		})
	}
	return g.Wait()
}

// removeLinks unlinks the named labels from the tacton. Names that resolve
// to nothing, and resolved labels without exactly one link row, are silently
// skipped; removal is an idempotent no-op.
func (s *Service) removeLinks(ctx context.Context, tactonID string, kind resolver.Kind, refs []models.LabelRef) error {
	for _, ref := range refs {
		label, err := s.resolver.LookupName(ctx, kind, ref.Name)
		if err != nil {
			return err
		}
		if label == nil {
			metrics.LinksSkipped.WithLabelValues(kind.String(), "unknown_name").Inc()
			continue
		}

		var link models.Link
		err = s.store.FindOne(ctx, kind.LinkCollection(), store.Filter{
			"tacton_id": tactonID,
			"ref_id":    label.ID,
		}, &link)
		if apperr.IsKind(err, apperr.NotFound) {
			metrics.LinksSkipped.WithLabelValues(kind.String(), "no_link").Inc()
			continue
		}
		if err != nil {
			return err
		}

		if _, err := s.store.Delete(ctx, kind.LinkCollection(), store.Filter{"id": link.ID}); err != nil {
			return err
		}
		metrics.LinksDeleted.WithLabelValues(kind.String()).Inc()
		logging.Ctx(ctx).Debug().
			Str("tacton_id", tactonID).
			Str("kind", kind.String()).
			Str("name", label.Name).
			Msg("Removed link")
	}
	return nil
}
