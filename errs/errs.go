// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errs defines the structured error taxonomy surfaced by the
// protection engine. No other error kinds escape the core packages.
package errs

import "fmt"

// Code identifies the class of failure.
type Code string

const (
	FieldMismatch    Code = "field_mismatch"
	MissingField     Code = "missing_field"
	UnknownCompany   Code = "unknown_company"
	UnknownGroup     Code = "unknown_group"
	NoAccess         Code = "no_access"
	DecryptAuth      Code = "decrypt_auth"
	InvalidDocument  Code = "invalid_document"
	PrimitiveFailure Code = "primitive_failure"
)

// Error is the structured error type returned by engine and share
// operations. Detail carries a human-readable elaboration; Err, when
// present, is the underlying cause and is reachable via Unwrap.
type Error struct {
	Code   Code
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error with no wrapped cause.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Wrap builds an *Error around an underlying cause.
func Wrap(code Code, detail string, err error) *Error {
	return &Error{Code: code, Detail: detail, Err: err}
}

// Is reports whether err carries the given code, looking through any
// wrapped *Error chain.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Code == code {
				return true
			}
			err = e.Err
			continue
		}
		return false
	}
	return false
}
