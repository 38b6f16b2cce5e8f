// Package apperr defines the error taxonomy shared by the workflow
// services and the HTTP handlers. Each error carries a Kind that the
// handler layer translates into an HTTP status code, plus enough
// detail (entity name, offending field, violated rule) to build a
// user-facing message. Errors of this package are never swallowed:
// a workflow either succeeds or returns exactly one of these.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure.
type Kind int

const (
	// KindNotFound means a referenced row is absent (missing employee,
	// menu item, table, order, reservation, ...).
	KindNotFound Kind = iota + 1
	// KindInvalidArgument means malformed or out-of-range input: bad
	// payment method, non-positive quantity, mismatched possession code.
	KindInvalidArgument
	// KindConflict means a uniqueness invariant would be violated:
	// a second bill for an order, a second reservation for a table.
	KindConflict
	// KindInvalidState means the operation is not permitted given the
	// current state: deleting a billed order, billing an empty order.
	KindInvalidState
	// KindTimeout means the storage layer did not answer within the
	// transaction deadline. Callers may retry after re-validating
	// preconditions.
	KindTimeout
	// KindInternal covers storage and transport failures.
	KindInternal
)

// Error is the concrete error type returned by every workflow entry
// point. Detail fields are optional and depend on the Kind.
type Error struct {
	Kind   Kind
	Entity string // for KindNotFound: which entity was missing
	ID     uint64 // for KindNotFound: the id that was looked up
	Field  string // for KindInvalidArgument: which input field
	Rule   string // for KindConflict / KindInvalidState: violated rule
	Msg    string
	Err    error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	case KindInvalidArgument:
		return fmt.Sprintf("invalid %s", e.Field)
	case KindConflict:
		return fmt.Sprintf("conflict: %s", e.Rule)
	case KindInvalidState:
		return fmt.Sprintf("invalid state: %s", e.Rule)
	case KindTimeout:
		return "storage timeout"
	default:
		return "internal error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports an absent row of the named entity.
func NotFound(entity string, id uint64) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

// InvalidArgument reports a malformed input field with a human message.
func InvalidArgument(field, msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Field: field, Msg: msg}
}

// Conflict reports a violated uniqueness rule.
func Conflict(rule, msg string) *Error {
	return &Error{Kind: KindConflict, Rule: rule, Msg: msg}
}

// InvalidState reports an operation forbidden by current state.
func InvalidState(rule, msg string) *Error {
	return &Error{Kind: KindInvalidState, Rule: rule, Msg: msg}
}

// Timeout reports an expired transaction deadline. The caller may retry.
func Timeout(err error) *Error {
	return &Error{Kind: KindTimeout, Err: err}
}

// Internal wraps an unexpected storage or transport failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err, Msg: "internal error"}
}

// KindOf extracts the Kind from err, or KindInternal when err is not
// an *Error from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }
