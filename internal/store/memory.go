// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package store

import (
	"context"
	"reflect"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/tactus/internal/apperr"
)

// document is a row in its JSON-normalized form: every value is what
// encoding/json produces when unmarshaling into interface{} (float64 for
// numbers, []interface{} for arrays). Normalizing both rows and filter
// values this way makes equality checks uniform.
type document map[string]interface{}

// uniqueKey declares a uniqueness constraint over one or more fields of a
// collection.
type uniqueKey struct {
	collection string
	fields     []string
}

// cascade declares that deleting a row from parent removes every child row
// whose field references the parent id.
type cascade struct {
	parent string
	child  string
	field  string
}

// Memory is an in-process Client used by tests and DATA_API_MOCK
// development mode. It mirrors the production schema's constraints: unique tag and
// body-tag names, unique usernames, at most one link per (tacton, ref)
// pair, and cascading deletion of link rows with their tacton.
//
// Position sets deliberately carry no uniqueness constraint across their
// array columns; the lookup-or-create race can produce duplicate rows here
// exactly as it can in production.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]document
	uniques     []uniqueKey
	cascades    []cascade
}

// NewMemory creates an empty in-memory store preconfigured with the tactus
// schema constraints.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]document),
		uniques: []uniqueKey{
			{collection: CollectionTags, fields: []string{"name"}},
			{collection: CollectionBodyTags, fields: []string{"name"}},
			{collection: CollectionUsers, fields: []string{"username"}},
			{collection: CollectionTagLinks, fields: []string{"tacton_id", "ref_id"}},
			{collection: CollectionBodyTagLinks, fields: []string{"tacton_id", "ref_id"}},
		},
		cascades: []cascade{
			{parent: CollectionTactons, child: CollectionTagLinks, field: "tacton_id"},
			{parent: CollectionTactons, child: CollectionBodyTagLinks, field: "tacton_id"},
		},
	}
}

// Find implements Client.
func (m *Memory) Find(ctx context.Context, collection string, filter Filter, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.Dependency, "request canceled", err)
	}

	normalized, err := normalizeFilter(filter)
	if err != nil {
		return err
	}

	// Decode while still holding the read lock: matched documents are the
	// live maps that Patch mutates under the write lock.
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeDocs(m.match(collection, normalized), out)
}

// FindOne implements Client.
func (m *Memory) FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.Dependency, "request canceled", err)
	}

	normalized, err := normalizeFilter(filter)
	if err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := m.match(collection, normalized)

	// Zero and many are deliberately the same error.
	if len(matched) != 1 {
		return apperr.New(apperr.NotFound, collection+": not found")
	}
	return decodeDoc(matched[0], out)
}

// Insert implements Client.
func (m *Memory) Insert(ctx context.Context, collection string, row, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.Dependency, "request canceled", err)
	}

	doc, err := toDocument(row)
	if err != nil {
		return err
	}
	if id, ok := doc["id"].(string); !ok || id == "" {
		doc["id"] = uuid.New().String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, uk := range m.uniques {
		if uk.collection != collection {
			continue
		}
		probe := Filter{}
		for _, f := range uk.fields {
			probe[f] = doc[f]
		}
		if len(m.match(collection, probe)) > 0 {
			return apperr.Newf(apperr.Conflict, "%s: row already exists", collection)
		}
	}

	m.collections[collection] = append(m.collections[collection], doc)

	if out != nil {
		return decodeDoc(doc, out)
	}
	return nil
}

// Patch implements Client.
func (m *Memory) Patch(ctx context.Context, collection string, filter Filter, changes interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.Dependency, "request canceled", err)
	}

	normalized, err := normalizeFilter(filter)
	if err != nil {
		return err
	}
	patch, err := toDocument(changes)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.match(collection, normalized) {
		for k, v := range patch {
			doc[k] = v
		}
	}
	return nil
}

// Delete implements Client.
func (m *Memory) Delete(ctx context.Context, collection string, filter Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperr.Wrap(apperr.Dependency, "request canceled", err)
	}

	normalized, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteLocked(collection, normalized), nil
}

// deleteLocked removes matching rows and applies cascade rules. Caller must
// hold mu.
func (m *Memory) deleteLocked(collection string, filter Filter) int {
	var kept []document
	var removed []document
	for _, doc := range m.collections[collection] {
		if matchesDoc(doc, filter) {
			removed = append(removed, doc)
		} else {
			kept = append(kept, doc)
		}
	}
	m.collections[collection] = kept

	for _, doc := range removed {
		id, _ := doc["id"].(string)
		for _, c := range m.cascades {
			if c.parent == collection && id != "" {
				m.deleteLocked(c.child, Filter{c.field: id})
			}
		}
	}
	return len(removed)
}

// match returns the documents in collection matching the normalized filter.
// Caller must hold mu (read or write).
func (m *Memory) match(collection string, filter Filter) []document {
	var matched []document
	for _, doc := range m.collections[collection] {
		if matchesDoc(doc, filter) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// matchesDoc reports whether every filter field equals the document's value.
func matchesDoc(doc document, filter Filter) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// toDocument converts a struct or map into its JSON-normalized form.
func toDocument(row interface{}) (document, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "row is not serializable", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "row is not an object", err)
	}
	return doc, nil
}

// normalizeFilter passes each filter value through JSON so slices and
// numbers compare equal to stored document values.
func normalizeFilter(filter Filter) (Filter, error) {
	if filter == nil {
		return nil, nil
	}
	normalized := make(Filter, len(filter))
	for k, v := range filter {
		if v == nil {
			normalized[k] = nil
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, apperr.Wrap(apperr.Dependency, "filter value is not serializable", err)
		}
		var nv interface{}
		if err := json.Unmarshal(data, &nv); err != nil {
			return nil, apperr.Wrap(apperr.Dependency, "filter value is not serializable", err)
		}
		normalized[k] = nv
	}
	return normalized, nil
}

// decodeDocs copies matched documents into the caller's slice.
func decodeDocs(docs []document, out interface{}) error {
	if out == nil {
		return nil
	}
	if docs == nil {
		docs = []document{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "rows are not serializable", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Wrap(apperr.Dependency, "rows do not match the requested shape", err)
	}
	return nil
}

// decodeDoc copies one document into the caller's struct.
func decodeDoc(doc document, out interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "row is not serializable", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Wrap(apperr.Dependency, "row does not match the requested shape", err)
	}
	return nil
}
