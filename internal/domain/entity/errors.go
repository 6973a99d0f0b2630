package entity

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInvalidInput: malformed or missing request field, reported as 400.
	KindInvalidInput
	// KindUpstreamFailure: fetching the file or calling an upstream failed, reported as 500.
	KindUpstreamFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindUpstreamFailure:
		return "UpstreamFailure"
	default:
		return "Unknown"
	}
}

// Error carries a kind and a caller-safe message. Cause is for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewInvalidInput(message string, cause error) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Cause: cause}
}

func NewUpstreamFailure(message string, cause error) *Error {
	return &Error{Kind: KindUpstreamFailure, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// PublicMessage returns the message safe to show a caller, or fallback when err carries none.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
