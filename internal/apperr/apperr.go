// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package apperr defines the application error taxonomy shared by the core
// services and the HTTP layer.
//
// Every operational failure in the tacton workflow falls into one of five
// kinds:
//
//   - Validation: malformed or missing input (lengths, charsets, array-shape
//     mismatches). Never retried.
//   - Conflict: a uniqueness violation, detected either pre-emptively (a
//     lookup found an existing row) or reactively (the datastore rejected an
//     insert).
//   - Permission: the acting user is neither the resource owner nor an
//     admin, or no acting user is present at all.
//   - NotFound: a referenced id did not resolve to exactly one row. The zero
//     and many cases are deliberately indistinguishable to avoid leaking
//     existence information.
//   - Dependency: the external data layer is unreachable or returned an
//     unexpected shape.
//
// The HTTP layer maps kinds to status codes in internal/api; core packages
// only ever raise and inspect kinds via errors.As.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// Unknown is the zero Kind; errors without an apperr in their chain
	// report it.
	Unknown Kind = iota

	// Validation indicates malformed or missing caller input.
	Validation

	// Conflict indicates a uniqueness violation.
	Conflict

	// Permission indicates a missing or insufficient acting user.
	Permission

	// NotFound indicates a reference that did not resolve to exactly one row.
	NotFound

	// Dependency indicates a datastore transport or shape failure.
	Dependency
)

// String returns the kind's stable machine-readable name, used as the error
// code in API responses and metric labels.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "VALIDATION_ERROR"
	case Conflict:
		return "CONFLICT_ERROR"
	case Permission:
		return "PERMISSION_ERROR"
	case NotFound:
		return "NOT_FOUND"
	case Dependency:
		return "DEPENDENCY_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is a classified application error. Message is safe to surface to API
// callers; the wrapped cause (if any) is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a classified error with a caller-safe message.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns a classified error with a formatted caller-safe message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. The message is surfaced to callers;
// the cause stays available for logging via errors.Unwrap.
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain, or Unknown if the chain
// carries no apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// MessageOf returns the caller-safe message from an error chain, or a generic
// fallback when the chain carries no apperr.Error. This keeps datastore
// internals out of API responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
