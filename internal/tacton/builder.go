// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package tacton implements the aggregate operations over tacton rows:
// create, read, list, partial update, delete, and tag-link reconciliation.
//
// Aggregate create is a multi-step workflow over independent store calls
// with no transaction coverage: a failure partway through can leave behind
// resolved tag or position-set rows but never a half-written tacton. Those
// orphans are harmless because resolution is idempotent; retrying the whole
// request converges on the same rows.
package tacton

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/positions"
	"github.com/tomtom215/tactus/internal/resolver"
	"github.com/tomtom215/tactus/internal/store"
)

// Service orchestrates tacton aggregates over the store and the reference
// resolver.
type Service struct {
	store    store.Client
	resolver *resolver.Resolver
}

// NewService creates the tacton service.
func NewService(st store.Client, res *resolver.Resolver) *Service {
	return &Service{store: st, resolver: res}
}

// Create builds a tacton aggregate: the position set is resolved first
// (nothing is written if it fails), tags and body-tags resolve concurrently,
// then the tacton row is inserted and links are established.
func (s *Service) Create(ctx context.Context, req *models.CreateTactonRequest) (*models.TactonDetail, error) {
	cols, err := positions.Normalize(req.PositionSetInput)
	if err != nil {
		return nil, err
	}
	set, err := s.resolver.ResolvePositions(ctx, cols)
	if err != nil {
		return nil, err
	}

	var tags, bodyTags []*models.Label
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tags, err = s.resolveRefs(gctx, resolver.Tag, req.Tags)
		return err
	})
	g.Go(func() error {
		var err error
		bodyTags, err = s.resolveRefs(gctx, resolver.BodyTag, req.BodyTags)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	row := models.Tacton{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Payload:       req.Payload,
		PositionSetID: set.ID,
		LastUpdatedAt: time.Now().UTC(),
	}
	if actor := auth.ActorFromContext(ctx); actor != nil {
		row.OwnerID = &actor.ID
	}

	var created models.Tacton
	if err := s.store.Insert(ctx, store.CollectionTactons, row, &created); err != nil {
		return nil, err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.addLinks(gctx, created.ID, resolver.Tag, tags) })
	g.Go(func() error { return s.addLinks(gctx, created.ID, resolver.BodyTag, bodyTags) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("tacton_id", created.ID).
		Str("title", created.Title).
		Int("positions", cols.Len()).
		Int("tags", len(tags)).
		Int("body_tags", len(bodyTags)).
		Msg("Created tacton")

	return &models.TactonDetail{
		Tacton:    created,
		Positions: positions.Rows(cols),
		Tags:      deref(tags),
		BodyTags:  deref(bodyTags),
	}, nil
}

// Get composes the full aggregate view: the tacton row, its positions in
// row form, and the resolved tag and body-tag rows. The component reads run
// concurrently once the tacton row is loaded.
func (s *Service) Get(ctx context.Context, id string) (*models.TactonDetail, error) {
	var row models.Tacton
	if err := s.store.FindOne(ctx, store.CollectionTactons, store.Filter{"id": id}, &row); err != nil {
		return nil, err
	}

	detail := &models.TactonDetail{Tacton: row}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var set models.PositionSet
		if err := s.store.FindOne(gctx, store.CollectionPositionSets, store.Filter{"id": row.PositionSetID}, &set); err != nil {
			return err
		}
		detail.Positions = positions.Rows(positions.FromSet(set))
		return nil
	})
	g.Go(func() error {
		labels, err := s.linkedLabels(gctx, row.ID, resolver.Tag)
		detail.Tags = labels
		return err
	})
	g.Go(func() error {
		labels, err := s.linkedLabels(gctx, row.ID, resolver.BodyTag)
		detail.BodyTags = labels
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// List returns a page of tacton rows ordered by last update, newest first.
// Paging is applied after the read because the data layer's generic filter
// surface has no ordering parameter.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Tacton, error) {
	var rows []models.Tacton
	if err := s.store.Find(ctx, store.CollectionTactons, store.Filter{}, &rows); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LastUpdatedAt.Equal(rows[j].LastUpdatedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].LastUpdatedAt.After(rows[j].LastUpdatedAt)
	})

	if offset >= len(rows) {
		return []models.Tacton{}, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// Update applies a partial update. Fields absent from the request keep
// their stored values; a positions field re-points the tacton at a
// resolved-or-created set without deleting the old one, since other tactons
// may share it. last_updated_at refreshes even when no field changed.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateTactonRequest) (*models.TactonDetail, error) {
	var row models.Tacton
	if err := s.store.FindOne(ctx, store.CollectionTactons, store.Filter{"id": id}, &row); err != nil {
		return nil, err
	}
	if !auth.ActorFromContext(ctx).CanModify(row.OwnerID) {
		return nil, apperr.New(apperr.Permission, "not the owner of this tacton")
	}

	changes := map[string]interface{}{}
	if req.Title != nil {
		changes["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Payload != nil {
		if *req.Payload == "" {
			return nil, apperr.New(apperr.Validation, "payload_blob must not be empty")
		}
		changes["payload_blob"] = *req.Payload
	}
	if req.Positions != nil {
		cols, err := positions.Normalize(*req.Positions)
		if err != nil {
			return nil, err
		}
		set, err := s.resolver.ResolvePositions(ctx, cols)
		if err != nil {
			return nil, err
		}
		changes["position_set_id"] = set.ID
	}
	changes["last_updated_at"] = time.Now().UTC()

	if err := s.store.Patch(ctx, store.CollectionTactons, store.Filter{"id": id}, changes); err != nil {
		return nil, err
	}

	if req.Empty() {
		logging.Ctx(ctx).Debug().Str("tacton_id", id).Msg("Empty update, refreshed last_updated_at only")
	} else {
		logging.Ctx(ctx).Info().Str("tacton_id", id).Int("fields", len(changes)-1).Msg("Updated tacton")
	}
	return s.Get(ctx, id)
}

// Delete removes a tacton. The storage layer's cascade policy removes its
// link rows; the shared position set stays. Deleting an absent tacton
// succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	var row models.Tacton
	err := s.store.FindOne(ctx, store.CollectionTactons, store.Filter{"id": id}, &row)
	if apperr.IsKind(err, apperr.NotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !auth.ActorFromContext(ctx).CanModify(row.OwnerID) {
		return apperr.New(apperr.Permission, "not the owner of this tacton")
	}

	if _, err := s.store.Delete(ctx, store.CollectionTactons, store.Filter{"id": id}); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Str("tacton_id", id).Msg("Deleted tacton")
	return nil
}

// AddLinks resolves the requested names (creating missing labels) and links
// them to the tacton. Requires ownership or admin, and refreshes the
// tacton's last_updated_at.
func (s *Service) AddLinks(ctx context.Context, id string, req *models.ModifyLinksRequest) error {
	if req.Empty() {
		return apperr.New(apperr.Validation, "at least one of tags or bodyTags is required")
	}
	if err := s.requireOwnership(ctx, id); err != nil {
		return err
	}

	var tags, bodyTags []*models.Label
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tags, err = s.resolveRefs(gctx, resolver.Tag, req.Tags)
		return err
	})
	g.Go(func() error {
		var err error
		bodyTags, err = s.resolveRefs(gctx, resolver.BodyTag, req.BodyTags)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.addLinks(gctx, id, resolver.Tag, tags) })
	g.Go(func() error { return s.addLinks(gctx, id, resolver.BodyTag, bodyTags) })
	if err := g.Wait(); err != nil {
		return err
	}
	return s.touch(ctx, id)
}

// RemoveLinks unlinks the requested names from the tacton. Unknown names
// and absent links are silent no-ops; the operation still requires
// ownership and refreshes last_updated_at.
func (s *Service) RemoveLinks(ctx context.Context, id string, req *models.ModifyLinksRequest) error {
	if err := s.requireOwnership(ctx, id); err != nil {
		return err
	}
	if err := s.removeLinks(ctx, id, resolver.Tag, req.Tags); err != nil {
		return err
	}
	if err := s.removeLinks(ctx, id, resolver.BodyTag, req.BodyTags); err != nil {
		return err
	}
	return s.touch(ctx, id)
}

// resolveRefs resolves every referenced name concurrently, failing fast on
// the first error. Results keep the request order.
func (s *Service) resolveRefs(ctx context.Context, kind resolver.Kind, refs []models.LabelRef) ([]*models.Label, error) {
	labels := make([]*models.Label, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			label, err := s.resolver.ResolveName(gctx, kind, ref.Name)
			if err != nil {
				return err
			}
			labels[i] = label
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}

// linkedLabels loads the label rows linked to a tacton for one kind.
func (s *Service) linkedLabels(ctx context.Context, tactonID string, kind resolver.Kind) ([]models.Label, error) {
	var links []models.Link
	if err := s.store.Find(ctx, kind.LinkCollection(), store.Filter{"tacton_id": tactonID}, &links); err != nil {
		return nil, err
	}

	labels := make([]models.Label, 0, len(links))
	for _, link := range links {
		var label models.Label
		if err := s.store.FindOne(ctx, kind.Collection(), store.Filter{"id": link.RefID}, &label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
	return labels, nil
}

// requireOwnership loads the tacton and checks the acting user may modify
// it.
func (s *Service) requireOwnership(ctx context.Context, id string) error {
	var row models.Tacton
	if err := s.store.FindOne(ctx, store.CollectionTactons, store.Filter{"id": id}, &row); err != nil {
		return err
	}
	if !auth.ActorFromContext(ctx).CanModify(row.OwnerID) {
		return apperr.New(apperr.Permission, "not the owner of this tacton")
	}
	return nil
}

// touch refreshes a tacton's last_updated_at after a link change.
func (s *Service) touch(ctx context.Context, id string) error {
	return s.store.Patch(ctx, store.CollectionTactons, store.Filter{"id": id},
		map[string]interface{}{"last_updated_at": time.Now().UTC()})
}

func deref(labels []*models.Label) []models.Label {
	out := make([]models.Label, 0, len(labels))
	for _, l := range labels {
		if l != nil {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
