// Package errors provides the structured error taxonomy shared by every
// engine package.
//
// Every error the engine reports carries a machine-readable Code. Codes
// belong to exactly one Kind so callers can tell "wrong kind of participant"
// apart from "does not exist" without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// Kind groups codes into the categories callers branch on.
type Kind string

const (
	KindUnknown       Kind = "UNKNOWN"
	KindConfiguration Kind = "CONFIGURATION"
	KindLookup        Kind = "LOOKUP"
	KindCapability    Kind = "CAPABILITY"
	KindState         Kind = "STATE"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrConfiguration = &kindSentinel{kind: KindConfiguration}
	ErrLookup        = &kindSentinel{kind: KindLookup}
	ErrCapability    = &kindSentinel{kind: KindCapability}
	ErrState         = &kindSentinel{kind: KindState}
)

type kindSentinel struct {
	kind Kind
}

func (s *kindSentinel) Error() string {
	return "deckforge: " + string(s.kind) + " error"
}

// Error is a domain error with a code, a message and optional metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// New creates a domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error around an underlying cause.
func Wrap(code Code, cause error, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *Error) WithMetadata(key, value string) *Error {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches kind sentinels and other domain errors with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case *kindSentinel:
		return e.Code.Kind() == t.kind
	case *Error:
		return e.Code == t.Code
	}
	return false
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// GetMetadata extracts metadata from an error if present.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}
