// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package resolver

import (
	"context"
	"testing"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/positions"
	"github.com/tomtom215/tactus/internal/store"
)

func actorCtx() context.Context {
	return auth.WithActor(context.Background(), &auth.Actor{ID: "u-1", Username: "alice"})
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		in      string
		want    string
		wantErr bool
	}{
		{"tag case folded", Tag, "  Fun  ", "fun", false},
		{"body tag keeps case", BodyTag, " Left Arm ", "Left Arm", false},
		{"too short", Tag, "x", "", true},
		{"bad charset", Tag, "fun!", "", true},
		{"leading hyphen", Tag, "-fun", "", true},
		{"hyphenated ok", Tag, "slow-pulse", "slow-pulse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.kind, tt.in)
			if tt.wantErr {
				if !apperr.IsKind(err, apperr.Conflict) {
					t.Fatalf("NormalizeName(%q) error = %v, want Conflict", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveNameIdempotent(t *testing.T) {
	r := New(store.NewMemory())
	ctx := actorCtx()

	first, err := r.ResolveName(ctx, Tag, "Fun")
	if err != nil {
		t.Fatalf("first ResolveName: %v", err)
	}
	if first.Name != "fun" {
		t.Errorf("stored name = %q, want case-folded %q", first.Name, "fun")
	}
	if first.CreatorID == nil || *first.CreatorID != "u-1" {
		t.Errorf("creator_id = %v, want u-1", first.CreatorID)
	}

	second, err := r.ResolveName(ctx, Tag, "  FUN ")
	if err != nil {
		t.Fatalf("second ResolveName: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("resolved ids differ: %q vs %q", second.ID, first.ID)
	}
}

func TestResolveNameKindsAreIndependent(t *testing.T) {
	r := New(store.NewMemory())
	ctx := actorCtx()

	tag, err := r.ResolveName(ctx, Tag, "chest")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	bodyTag, err := r.ResolveName(ctx, BodyTag, "chest")
	if err != nil {
		t.Fatalf("body tag: %v", err)
	}
	if tag.ID == bodyTag.ID {
		t.Error("tag and body-tag namespaces must not share rows")
	}
}

func TestResolveNameRequiresActorForCreation(t *testing.T) {
	r := New(store.NewMemory())

	_, err := r.ResolveName(context.Background(), Tag, "fun")
	if !apperr.IsKind(err, apperr.Permission) {
		t.Fatalf("anonymous create error = %v, want Permission", err)
	}

	// Once the row exists, anonymous lookup succeeds.
	if _, err := r.ResolveName(actorCtx(), Tag, "fun"); err != nil {
		t.Fatalf("authenticated create: %v", err)
	}
	if _, err := r.ResolveName(context.Background(), Tag, "fun"); err != nil {
		t.Errorf("anonymous lookup of existing tag: %v", err)
	}
}

func TestLookupName(t *testing.T) {
	r := New(store.NewMemory())
	ctx := actorCtx()

	if _, err := r.ResolveName(ctx, Tag, "fun"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := r.LookupName(ctx, Tag, "FUN")
	if err != nil {
		t.Fatalf("LookupName: %v", err)
	}
	if got == nil || got.Name != "fun" {
		t.Errorf("LookupName = %+v, want the fun tag", got)
	}

	missing, err := r.LookupName(ctx, Tag, "absent")
	if err != nil || missing != nil {
		t.Errorf("LookupName(absent) = %+v, %v, want nil, nil", missing, err)
	}

	// An invalid name cannot exist, so lookup treats it as absent instead
	// of failing.
	invalid, err := r.LookupName(ctx, Tag, "!!")
	if err != nil || invalid != nil {
		t.Errorf("LookupName(invalid) = %+v, %v, want nil, nil", invalid, err)
	}
}

func TestResolvePositionsIdempotent(t *testing.T) {
	r := New(store.NewMemory())
	ctx := context.Background()

	cols := positions.Columns{
		Xs: []float64{1, 4.5},
		Ys: []float64{2, 5.5},
		Zs: []float64{3, 6.5},
	}

	first, err := r.ResolvePositions(ctx, cols)
	if err != nil {
		t.Fatalf("first ResolvePositions: %v", err)
	}
	second, err := r.ResolvePositions(ctx, cols)
	if err != nil {
		t.Fatalf("second ResolvePositions: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("identical columns resolved to different rows: %q vs %q", first.ID, second.ID)
	}

	other, err := r.ResolvePositions(ctx, positions.Columns{
		Xs: []float64{9}, Ys: []float64{9}, Zs: []float64{9},
	})
	if err != nil {
		t.Fatalf("other ResolvePositions: %v", err)
	}
	if other.ID == first.ID {
		t.Error("different columns must resolve to different rows")
	}
}

func TestResolvePositionsEmptySet(t *testing.T) {
	r := New(store.NewMemory())

	set, err := r.ResolvePositions(context.Background(), positions.Columns{
		Xs: []float64{}, Ys: []float64{}, Zs: []float64{},
	})
	if err != nil {
		t.Fatalf("ResolvePositions: %v", err)
	}
	if set.ID == "" {
		t.Error("empty set should still be persisted with an id")
	}
}

func TestKindMappings(t *testing.T) {
	if Tag.Collection() != store.CollectionTags || Tag.LinkCollection() != store.CollectionTagLinks {
		t.Error("Tag collections wrong")
	}
	if BodyTag.Collection() != store.CollectionBodyTags || BodyTag.LinkCollection() != store.CollectionBodyTagLinks {
		t.Error("BodyTag collections wrong")
	}
	if Tag.String() != "tag" || BodyTag.String() != "body_tag" {
		t.Error("kind labels wrong")
	}
}
