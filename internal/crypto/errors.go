package crypto

import "errors"

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind rather than matching error strings.
type Kind string

const (
	KindLength Kind = "Length"
	KindHex    Kind = "Hex"
	KindIO     Kind = "IO"
	KindParse  Kind = "Parse"
	KindConfig Kind = "Config"
)

// Error is the structured error returned at every decode boundary.
//
// Field names the input that failed (e.g. "seed", "hash", "pk.bin").
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured error without a cause.
func NewError(kind Kind, field, msg string) error {
	return &Error{Kind: kind, Field: field, Message: msg}
}

// WrapError returns a structured error wrapping cause.
func WrapError(kind Kind, field, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, field, msg)
	}
	return &Error{Kind: kind, Field: field, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
