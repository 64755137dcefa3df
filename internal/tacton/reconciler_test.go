// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package tacton

import (
	"testing"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/resolver"
	"github.com/tomtom215/tactus/internal/store"
)

func TestAddLinksIdempotent(t *testing.T) {
	svc, st := newTestService()
	ctx := ctxAs("u-1", false)

	created, err := svc.Create(ctx, demoRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := &models.ModifyLinksRequest{Tags: []models.LabelRef{{Name: "fun"}, {Name: "new-tag"}}}
	if err := svc.AddLinks(ctx, created.ID, req); err != nil {
		t.Fatalf("first AddLinks: %v", err)
	}
	if err := svc.AddLinks(ctx, created.ID, req); err != nil {
		t.Fatalf("second AddLinks: %v", err)
	}

	var links []models.Link
	if err := st.Find(ctx, store.CollectionTagLinks, store.Filter{"tacton_id": created.ID}, &links); err != nil {
		t.Fatalf("Find links: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("links = %d, want exactly 2 (fun, new-tag)", len(links))
	}
}

func TestAddLinksDuplicateNamesInOneRequest(t *testing.T) {
	svc, st := newTestService()
	ctx := ctxAs("u-1", false)

	created, err := svc.Create(ctx, demoRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// "Calm" and "calm" resolve to the same tag; only one link may result.
	err = svc.AddLinks(ctx, created.ID, &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "Calm"}, {Name: "calm"}},
	})
	if err != nil {
		t.Fatalf("AddLinks: %v", err)
	}

	var links []models.Link
	if err := st.Find(ctx, store.CollectionTagLinks, store.Filter{"tacton_id": created.ID}, &links); err != nil {
		t.Fatalf("Find links: %v", err)
	}
	if len(links) != 2 { // fun from create + calm
		t.Errorf("links = %d, want 2", len(links))
	}
}

func TestAddLinksValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxAs("u-1", false)

	created, err := svc.Create(ctx, demoRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.AddLinks(ctx, created.ID, &models.ModifyLinksRequest{}); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("empty request = %v, want Validation", err)
	}
	if err := svc.AddLinks(ctx, "no-such-id", &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "fun"}},
	}); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("unknown tacton = %v, want NotFound", err)
	}
	if err := svc.AddLinks(ctxAs("u-2", false), created.ID, &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "fun"}},
	}); !apperr.IsKind(err, apperr.Permission) {
		t.Errorf("non-owner = %v, want Permission", err)
	}
	if err := svc.AddLinks(ctx, created.ID, &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "!!bad!!"}},
	}); !apperr.IsKind(err, apperr.Conflict) {
		t.Errorf("invalid name = %v, want Conflict", err)
	}
}

func TestRemoveLinks(t *testing.T) {
	svc, st := newTestService()
	ctx := ctxAs("u-1", false)

	created, err := svc.Create(ctx, demoRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.RemoveLinks(ctx, created.ID, &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "FUN"}},
	}); err != nil {
		t.Fatalf("RemoveLinks: %v", err)
	}

	var links []models.Link
	if err := st.Find(ctx, store.CollectionTagLinks, store.Filter{"tacton_id": created.ID}, &links); err != nil {
		t.Fatalf("Find links: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links after remove = %d, want 0", len(links))
	}

	// The tag row itself survives unlinking.
	var tag models.Label
	if err := st.FindOne(ctx, store.CollectionTags, store.Filter{"name": "fun"}, &tag); err != nil {
		t.Errorf("tag row was deleted with its link: %v", err)
	}
}

func TestRemoveLinksSilentSkips(t *testing.T) {
	svc, st := newTestService()
	ctx := ctxAs("u-1", false)

	created, err := svc.Create(ctx, demoRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// "calm" exists but is not linked to this tacton.
	if _, err := svc.resolver.ResolveName(ctx, resolver.Tag, "calm"); err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	// Unknown, invalid, and unlinked names are all silent no-ops.
	if err := svc.RemoveLinks(ctx, created.ID, &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "never-created"}, {Name: "!!"}, {Name: "calm"}},
	}); err != nil {
		t.Fatalf("RemoveLinks with unknown names: %v", err)
	}

	var links []models.Link
	if err := st.Find(ctx, store.CollectionTagLinks, store.Filter{"tacton_id": created.ID}, &links); err != nil {
		t.Fatalf("Find links: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("links = %d, original fun link must survive", len(links))
	}
}

func TestLinkOpsRefreshTimestamp(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxAs("u-1", false)

	created, err := svc.Create(ctx, demoRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.AddLinks(ctx, created.ID, &models.ModifyLinksRequest{
		Tags: []models.LabelRef{{Name: "extra"}},
	}); err != nil {
		t.Fatalf("AddLinks: %v", err)
	}

	detail, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.LastUpdatedAt.Before(created.LastUpdatedAt) {
		t.Error("link change must refresh last_updated_at")
	}
}
