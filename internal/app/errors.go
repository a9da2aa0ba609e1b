package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Kind classifies a failure so callers can decide on recovery policy
type Kind string

const (
	KindSheetsAPI          Kind = "sheets_api"
	KindNoCredentials      Kind = "no_credentials"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidRange       Kind = "invalid_range"
)

// Error is the error type returned across package boundaries.
// Detail carries the human-readable reason (e.g. the provider's reason string).
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

// NewError creates an Error of the given kind wrapping err.
// Detail defaults to err's message when not supplied.
func NewError(kind Kind, detail string, err error) *Error {
	if detail == "" && err != nil {
		detail = err.Error()
	}
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// DetailOf returns the Detail of the first *Error in err's chain, falling back to err.Error()
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// ErrorSink is the process's error-reporting policy. It receives a kind and an optional detail.
type ErrorSink interface {
	Handle(kind Kind, detail string)
}

// ErrorSinkFunc adapts a plain function to ErrorSink
type ErrorSinkFunc func(kind Kind, detail string)

func (f ErrorSinkFunc) Handle(kind Kind, detail string) {
	f(kind, detail)
}

// LogSink reports errors through the global zerolog logger
type LogSink struct{}

func (LogSink) Handle(kind Kind, detail string) {
	event := log.Error().Str("kind", string(kind))
	if detail != "" {
		event = event.Str("detail", detail)
	}
	event.Msg(describe(kind))
}

// Report hands err to sink, classifying untyped errors as sheets_api
func Report(sink ErrorSink, err error) {
	if err == nil {
		return
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindSheetsAPI
	}
	sink.Handle(kind, DetailOf(err))
}

func describe(kind Kind) string {
	switch kind {
	case KindSheetsAPI:
		return "Google Sheets API request failed"
	case KindNoCredentials:
		return "Credentials file not found"
	case KindInvalidCredentials:
		return "Credentials file is neither an OAuth client nor a service account key"
	case KindInvalidRange:
		return "Invalid A1 range"
	default:
		return "Unexpected error"
	}
}
