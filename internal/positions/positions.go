// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package positions normalizes motor-position coordinate sets between the
// two accepted representations: row-oriented (a list of {x,y,z} triples,
// the form clients usually send) and column-oriented (three parallel
// arrays, the canonical storage form).
//
// The normalized Columns value is passed explicitly between pipeline stages;
// there is no shared per-request state bag.
package positions

import (
	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/models"
)

// Columns is the canonical column-oriented form of a position set.
// Invariant: the three arrays always have equal length. Zero-length sets
// are valid.
type Columns struct {
	Xs []float64
	Ys []float64
	Zs []float64
}

// Len returns the number of positions in the set.
func (c Columns) Len() int {
	return len(c.Xs)
}

// Normalize converts either input representation into the canonical column
// form.
//
// When the row-oriented form is present it takes precedence, and entries
// missing any of x, y, or z are silently dropped from all three output
// arrays. The column form must have three equal-length arrays. Supplying
// neither form is a validation error.
func Normalize(in models.PositionSetInput) (Columns, error) {
	if in.Empty() {
		return Columns{}, apperr.New(apperr.Validation, "positions or xs/ys/zs arrays are required")
	}
	if in.Positions != nil {
		return fromRows(in.Positions), nil
	}

	if len(in.Xs) != len(in.Ys) || len(in.Ys) != len(in.Zs) {
		return Columns{}, apperr.Newf(apperr.Validation,
			"coordinate arrays must have equal lengths (got xs=%d ys=%d zs=%d)",
			len(in.Xs), len(in.Ys), len(in.Zs))
	}

	// Non-nil even when empty so both input forms serialize identically and
	// an empty set deduplicates regardless of which form created it.
	return Columns{
		Xs: append(make([]float64, 0, len(in.Xs)), in.Xs...),
		Ys: append(make([]float64, 0, len(in.Ys)), in.Ys...),
		Zs: append(make([]float64, 0, len(in.Zs)), in.Zs...),
	}, nil
}

// fromRows projects row-oriented entries onto the three columns, dropping
// incomplete entries.
func fromRows(rows []models.Coordinate) Columns {
	c := Columns{
		Xs: make([]float64, 0, len(rows)),
		Ys: make([]float64, 0, len(rows)),
		Zs: make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		if row.X == nil || row.Y == nil || row.Z == nil {
			continue
		}
		c.Xs = append(c.Xs, *row.X)
		c.Ys = append(c.Ys, *row.Y)
		c.Zs = append(c.Zs, *row.Z)
	}
	return c
}

// Rows is the inverse transform: zip the three columns index-wise back into
// row-oriented coordinates for API responses.
func Rows(c Columns) []models.Coordinate {
	rows := make([]models.Coordinate, c.Len())
	for i := range rows {
		rows[i] = models.NewCoordinate(c.Xs[i], c.Ys[i], c.Zs[i])
	}
	return rows
}

// FromSet extracts the columns of a stored position set row.
func FromSet(set models.PositionSet) Columns {
	return Columns{Xs: set.Xs, Ys: set.Ys, Zs: set.Zs}
}
