package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the core can return. The HTTP layer
// translates kinds to status codes; the core never recovers from them.
type ErrorKind int

const (
	// KindInvalidArgument means caller-supplied data failed a structural or
	// business-rule check (bad limit, missing fields, duplicate movie).
	KindInvalidArgument ErrorKind = iota + 1

	// KindNotFound means a referenced entity (group, movie, page) does not exist.
	KindNotFound

	// KindInvalidUser means the resolved caller does not own the targeted resource.
	KindInvalidUser

	// KindUserNotFound means the supplied token resolves to no user.
	KindUserNotFound

	// KindUnavailable means an external dependency timed out or was unreachable.
	// Retryable by the caller; the core never retries internally.
	KindUnavailable

	// KindInternal covers storage and infrastructure failures that must not be
	// misreported as business-rule violations.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindInvalidUser:
		return "invalid user"
	case KindUserNotFound:
		return "user not found"
	case KindUnavailable:
		return "unavailable"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by every core operation.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error // wrapped cause, set for Internal and Unavailable
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two *Error values by kind and detail, so sentinel
// comparisons in tests behave as expected.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && (t.Detail == "" || t.Detail == e.Detail)
}

func NewInvalidArgument(detail string) *Error {
	return &Error{Kind: KindInvalidArgument, Detail: detail}
}

func NewArgumentNotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func NewInvalidUser(detail string) *Error {
	return &Error{Kind: KindInvalidUser, Detail: detail}
}

func NewUserNotFound(detail string) *Error {
	return &Error{Kind: KindUserNotFound, Detail: detail}
}

func NewUnavailable(detail string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Detail: detail, Err: cause}
}

func NewInternal(detail string, cause error) *Error {
	return &Error{Kind: KindInternal, Detail: detail, Err: cause}
}

// KindOf reports the kind of err. Unclassified errors report KindInternal so
// infrastructure failures never masquerade as business-rule violations.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
