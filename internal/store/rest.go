// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/metrics"
)

// singularRowMediaType asks the data layer for exactly one row. The data
// layer answers 406 when the filter matches zero or multiple rows, which is
// exactly FindOne's "not exactly one" failure condition.
const singularRowMediaType = "application/vnd.pgrst.object+json"

// REST is the HTTP client for the external REST data layer. It speaks the
// PostgREST dialect: equality filters as `?column=eq.value` query
// parameters, `Prefer: return=representation` to get persisted rows back.
type REST struct {
	base   *url.URL
	client *http.Client
}

// NewREST creates a data-layer client for the given base URL. The timeout
// applies per round-trip; there is no retry and no circuit breaking, so a
// failed call surfaces to the caller as a Dependency error.
func NewREST(baseURL string, timeout time.Duration) (*REST, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid data layer URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("data layer URL %q must be http or https", baseURL)
	}

	return &REST{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Find implements Client.
func (r *REST) Find(ctx context.Context, collection string, filter Filter, out interface{}) error {
	start := time.Now()
	err := r.do(ctx, http.MethodGet, collection, filter, nil, nil, out)
	metrics.ObserveStoreRequest("find", collection, start, err)
	return err
}

// FindOne implements Client.
func (r *REST) FindOne(ctx context.Context, collection string, filter Filter, out interface{}) error {
	start := time.Now()
	headers := map[string]string{"Accept": singularRowMediaType}
	err := r.do(ctx, http.MethodGet, collection, filter, headers, nil, out)
	metrics.ObserveStoreRequest("find", collection, start, err)
	return err
}

// Insert implements Client.
func (r *REST) Insert(ctx context.Context, collection string, row, out interface{}) error {
	start := time.Now()

	headers := map[string]string{"Prefer": "return=representation"}
	var created []json.RawMessage
	err := r.do(ctx, http.MethodPost, collection, nil, headers, row, &created)
	metrics.ObserveStoreRequest("insert", collection, start, err)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(created) != 1 {
		return apperr.Newf(apperr.Dependency, "data layer returned %d rows for insert into %s", len(created), collection)
	}
	if err := json.Unmarshal(created[0], out); err != nil {
		return apperr.Wrap(apperr.Dependency, "data layer returned an unexpected row shape", err)
	}
	return nil
}

// Patch implements Client.
func (r *REST) Patch(ctx context.Context, collection string, filter Filter, changes interface{}) error {
	start := time.Now()
	headers := map[string]string{"Prefer": "return=minimal"}
	err := r.do(ctx, http.MethodPatch, collection, filter, headers, changes, nil)
	metrics.ObserveStoreRequest("patch", collection, start, err)
	return err
}

// Delete implements Client.
func (r *REST) Delete(ctx context.Context, collection string, filter Filter) (int, error) {
	start := time.Now()
	headers := map[string]string{"Prefer": "return=representation"}
	var deleted []json.RawMessage
	err := r.do(ctx, http.MethodDelete, collection, filter, headers, nil, &deleted)
	metrics.ObserveStoreRequest("delete", collection, start, err)
	if err != nil {
		return 0, err
	}
	return len(deleted), nil
}

// do performs one data-layer round-trip: encode the filter as query
// parameters, serialize the body if any, classify the response status, and
// decode the response body into out if requested.
func (r *REST) do(ctx context.Context, method, collection string, filter Filter, headers map[string]string, in, out interface{}) error {
	u := *r.base
	u.Path, _ = url.JoinPath(u.Path, collection)
	u.RawQuery = encodeFilter(filter)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s request body: %w", collection, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", collection, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "data layer unreachable", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-side close

	if err := classifyStatus(resp, collection); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperr.Wrap(apperr.Dependency, "data layer returned an unexpected shape", err)
		}
	}
	return nil
}

// classifyStatus maps data-layer HTTP statuses onto the error taxonomy.
func classifyStatus(resp *http.Response, collection string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// The storage layer's uniqueness constraint is the last line of
		// defense against concurrent duplicate creation.
		return apperr.Newf(apperr.Conflict, "%s: row already exists", collection)
	case resp.StatusCode == http.StatusNotAcceptable:
		// Singular-row request matched zero or multiple rows.
		return apperr.Newf(apperr.NotFound, "%s: not found", collection)
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return apperr.Wrap(apperr.Dependency,
			"data layer error",
			fmt.Errorf("%s: status %d: %s", collection, resp.StatusCode, snippet))
	}
}

// encodeFilter renders a Filter as PostgREST query parameters in stable key
// order. Scalars become `key=eq.value`, nils `key=is.null`, and slices the
// array literal `key=eq.{v1,v2,...}` for element-wise comparison.
func encodeFilter(filter Filter) string {
	if len(filter) == 0 {
		return ""
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		v := filter[k]
		if v == nil {
			q.Set(k, "is.null")
			continue
		}
		q.Set(k, "eq."+encodeValue(v))
	}
	return q.Encode()
}

// encodeValue renders a filter value in the data layer's literal syntax.
func encodeValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []float64:
		return encodeArray(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// encodeArray renders a float slice as a storage array literal, e.g.
// {1,2.5,3}.
func encodeArray(vals []float64) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.String()
}
