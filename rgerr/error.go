package rgerr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Error is the concrete error type returned by every package in this
// module. Construct it with [New] or [Wrap]; the zero value is not a
// valid error (Kind() reports GraphError and Error() returns
// "GraphError: " with no message), so always go through the constructors.
type Error struct {
	kind    Kind
	msg     string
	details []Detail
	wrapped error
}

// New builds an Error of the given kind with a message and optional
// structured details.
func New(kind Kind, msg string, details ...Detail) *Error {
	return &Error{kind: kind, msg: msg, details: slices.Clone(details)}
}

// Wrap builds an Error of the given kind around an underlying cause,
// preserving it for errors.Unwrap/errors.Is chains.
func Wrap(kind Kind, cause error, msg string, details ...Detail) *Error {
	return &Error{kind: kind, msg: msg, details: slices.Clone(details), wrapped: cause}
}

// Kind returns the error's category.
func (e *Error) Kind() Kind {
	if e == nil {
		return GraphError
	}
	return e.kind
}

// Details returns a copy of the structured key/value context attached to
// the error (offending nodes, edges, attribute keys, and so on).
func (e *Error) Details() []Detail {
	if e == nil {
		return nil
	}
	return slices.Clone(e.details)
}

// WithDetail returns a copy of e with an additional detail appended.
func (e *Error) WithDetail(key, value string) *Error {
	return &Error{
		kind:    e.kind,
		msg:     e.msg,
		details: append(slices.Clone(e.details), Detail{Key: key, Value: value}),
		wrapped: e.wrapped,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.msg)
	for _, d := range e.details {
		fmt.Fprintf(&sb, " [%s=%s]", d.Key, d.Value)
	}
	if e.wrapped != nil {
		fmt.Fprintf(&sb, ": %s", e.wrapped.Error())
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.wrapped
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == kind
	}
	return false
}
