// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/models"
)

func TestMemoryInsertAssignsID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var created models.Label
	err := m.Insert(ctx, CollectionTags, models.Label{Name: "fun"}, &created)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Insert() did not assign an id")
	}
	if created.Name != "fun" {
		t.Errorf("Insert() name = %q, want fun", created.Name)
	}
}

func TestMemoryUniqueNameConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Insert(ctx, CollectionTags, models.Label{Name: "fun"}, nil); err != nil {
		t.Fatalf("first Insert() error = %v", err)
	}
	err := m.Insert(ctx, CollectionTags, models.Label{Name: "fun"}, nil)
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("duplicate Insert() error kind = %v, want Conflict", apperr.KindOf(err))
	}

	// Same name in the other namespace is fine.
	if err := m.Insert(ctx, CollectionBodyTags, models.Label{Name: "fun"}, nil); err != nil {
		t.Errorf("body-tag Insert() with same name error = %v", err)
	}
}

func TestMemoryFindByArrayEquality(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	set := models.PositionSet{Xs: []float64{1, 4}, Ys: []float64{2, 5}, Zs: []float64{3, 6}}
	var created models.PositionSet
	if err := m.Insert(ctx, CollectionPositionSets, set, &created); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	var found []models.PositionSet
	filter := Filter{"xs": []float64{1, 4}, "ys": []float64{2, 5}, "zs": []float64{3, 6}}
	if err := m.Find(ctx, CollectionPositionSets, filter, &found); err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Errorf("Find() = %+v, want the inserted set", found)
	}

	// Different coordinates must not match.
	var none []models.PositionSet
	miss := Filter{"xs": []float64{9}, "ys": []float64{9}, "zs": []float64{9}}
	if err := m.Find(ctx, CollectionPositionSets, miss, &none); err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Find() with non-matching arrays = %+v, want empty", none)
	}
}

func TestMemoryFindOneNotExactlyOne(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var tacton models.Tacton
	err := m.FindOne(ctx, CollectionTactons, Filter{"id": "missing"}, &tacton)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("FindOne() on empty collection kind = %v, want NotFound", apperr.KindOf(err))
	}

	// Two rows matching yields the same NotFound, not a distinct error.
	for i := 0; i < 2; i++ {
		if err := m.Insert(ctx, CollectionTactons, map[string]interface{}{"title": "dup"}, nil); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	err = m.FindOne(ctx, CollectionTactons, Filter{"title": "dup"}, &tacton)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("FindOne() with two matches kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestMemoryPatch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var created models.Label
	if err := m.Insert(ctx, CollectionTags, models.Label{Name: "fun"}, &created); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	patch := map[string]interface{}{"name": "funny"}
	if err := m.Patch(ctx, CollectionTags, Filter{"id": created.ID}, patch); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	var got models.Label
	if err := m.FindOne(ctx, CollectionTags, Filter{"id": created.ID}, &got); err != nil {
		t.Fatalf("FindOne() error = %v", err)
	}
	if got.Name != "funny" {
		t.Errorf("patched name = %q, want funny", got.Name)
	}
}

func TestMemoryDeleteCascadesLinks(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var tacton models.Tacton
	if err := m.Insert(ctx, CollectionTactons, models.Tacton{Title: "Demo"}, &tacton); err != nil {
		t.Fatalf("Insert() tacton error = %v", err)
	}
	link := models.Link{TactonID: tacton.ID, RefID: "tag-1"}
	if err := m.Insert(ctx, CollectionTagLinks, link, nil); err != nil {
		t.Fatalf("Insert() link error = %v", err)
	}

	n, err := m.Delete(ctx, CollectionTactons, Filter{"id": tacton.ID})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Delete() = %d, want 1", n)
	}

	var links []models.Link
	if err := m.Find(ctx, CollectionTagLinks, Filter{"tacton_id": tacton.ID}, &links); err != nil {
		t.Fatalf("Find() links error = %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links after cascade = %d, want 0", len(links))
	}
}

func TestMemoryDeleteNothingIsNoError(t *testing.T) {
	m := NewMemory()

	n, err := m.Delete(context.Background(), CollectionTactons, Filter{"id": "absent"})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Delete() = %d, want 0", n)
	}
}

func TestMemoryLinkPairUniqueness(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	link := models.Link{TactonID: "t1", RefID: "r1"}
	if err := m.Insert(ctx, CollectionTagLinks, link, nil); err != nil {
		t.Fatalf("first link Insert() error = %v", err)
	}
	err := m.Insert(ctx, CollectionTagLinks, link, nil)
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("duplicate link Insert() kind = %v, want Conflict", apperr.KindOf(err))
	}
}

// Exercised under -race: readers must not decode the shared document maps
// after releasing the lock while writers mutate them.
func TestMemoryConcurrentFindAndPatch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var tacton models.Tacton
	if err := m.Insert(ctx, CollectionTactons, models.Tacton{Title: "Demo"}, &tacton); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				var rows []models.Tacton
				if err := m.Find(ctx, CollectionTactons, Filter{"id": tacton.ID}, &rows); err != nil {
					t.Errorf("Find() error = %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				var row models.Tacton
				if err := m.FindOne(ctx, CollectionTactons, Filter{"id": tacton.ID}, &row); err != nil {
					t.Errorf("FindOne() error = %v", err)
					return
				}
			}
		}()
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				patch := map[string]interface{}{"title": fmt.Sprintf("Demo %d-%d", n, j)}
				if err := m.Patch(ctx, CollectionTactons, Filter{"id": tacton.ID}, patch); err != nil {
					t.Errorf("Patch() error = %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
