// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package models

// Coordinate is the row-oriented form of one motor position. Pointer fields
// distinguish "absent" from zero: a row-form entry missing any of x/y/z is
// silently dropped by the normalizer rather than treated as an error.
type Coordinate struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`
}

// NewCoordinate builds a fully-populated Coordinate. Used when converting
// the canonical column form back to rows for API responses.
func NewCoordinate(x, y, z float64) Coordinate {
	return Coordinate{X: &x, Y: &y, Z: &z}
}

// PositionSetInput carries either representation of a motor-position set.
// When Positions is present it takes precedence over the column arrays.
type PositionSetInput struct {
	Xs        []float64    `json:"xs,omitempty"`
	Ys        []float64    `json:"ys,omitempty"`
	Zs        []float64    `json:"zs,omitempty"`
	Positions []Coordinate `json:"positions,omitempty"`
}

// Empty reports whether neither representation was supplied.
func (in PositionSetInput) Empty() bool {
	return in.Positions == nil && in.Xs == nil && in.Ys == nil && in.Zs == nil
}

// LabelRef references a tag or body-tag by name in create and link requests.
type LabelRef struct {
	Name string `json:"name" validate:"required"`
}

// CreateTactonRequest is the aggregate-create payload: the tacton fields, a
// position set in either form, and optional tag / body-tag references.
type CreateTactonRequest struct {
	Title       string     `json:"title" validate:"required,title"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=2048"`
	Payload     string     `json:"payload_blob" validate:"required"`
	Tags        []LabelRef `json:"tags,omitempty" validate:"dive"`
	BodyTags    []LabelRef `json:"bodyTags,omitempty" validate:"dive"`

	PositionSetInput
}

// UpdateTactonRequest is the partial-update payload. Every field is a
// pointer so three-valued logic holds: present-and-valid updates the field,
// present-and-invalid fails the request, absent leaves the stored value
// unchanged. A non-nil Positions input re-points the tacton at a
// resolved-or-created position set; the old set is never deleted.
type UpdateTactonRequest struct {
	Title       *string           `json:"title,omitempty" validate:"omitempty,title"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=2048"`
	Payload     *string           `json:"payload_blob,omitempty"`
	Positions   *PositionSetInput `json:"positions,omitempty"`
}

// Empty reports whether the partial update carries no fields at all. An
// empty update still refreshes last_updated_at.
func (r UpdateTactonRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Payload == nil && r.Positions == nil
}

// ModifyLinksRequest adds or removes tag / body-tag associations on a
// tacton. At least one list must be present on the add path.
type ModifyLinksRequest struct {
	Tags     []LabelRef `json:"tags,omitempty" validate:"dive"`
	BodyTags []LabelRef `json:"bodyTags,omitempty" validate:"dive"`
}

// Empty reports whether neither list was supplied.
func (r ModifyLinksRequest) Empty() bool {
	return r.Tags == nil && r.BodyTags == nil
}

// CreateLabelRequest resolves or creates a tag / body-tag by name.
type CreateLabelRequest struct {
	Name string `json:"name" validate:"required"`
}

// TactonDetail is the aggregate read response: the tacton row composed with
// its row-oriented positions and resolved tag / body-tag rows.
type TactonDetail struct {
	Tacton
	Positions []Coordinate `json:"positions"`
	Tags      []Label      `json:"tags"`
	BodyTags  []Label      `json:"bodyTags"`
}

// PositionSetResponse is returned by the resolve-or-create position set
// endpoint: the canonical row id plus the row-oriented coordinates.
type PositionSetResponse struct {
	ID        string       `json:"id"`
	Positions []Coordinate `json:"positions"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64,refname"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
