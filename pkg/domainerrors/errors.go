// Package domainerrors defines the coded errors surfaced by the proof engine.
// Every validation or authorization failure carries a stable machine-readable
// code plus a human-readable detail, so callers and transports can branch on
// the code without parsing messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a failure kind. Codes are part of the public contract and
// must stay stable across releases.
type Code string

const (
	CodeUnauthorized             Code = "unauthorized"
	CodeUnsupportedPlatform      Code = "unsupported_platform"
	CodeInvalidSkillLevel        Code = "invalid_skill_level"
	CodeInvalidEndorsementWeight Code = "invalid_endorsement_weight"
	CodeSelfEndorsement          Code = "self_endorsement"
	CodeInsufficientReputation   Code = "insufficient_reputation"
	CodeInvalidProofHash         Code = "invalid_proof_hash"
	CodeEmptyUsername            Code = "empty_username"
	CodeInvalidSkillData         Code = "invalid_skill_data"
	CodeUserNotFound             Code = "user_not_found"
	CodeInvalidAddress           Code = "invalid_address"
	CodeNotFound                 Code = "not_found"
	CodeBadRequest               Code = "bad_request"
	CodeInternal                 Code = "internal"
)

// Error is a coded domain error. It wraps an optional cause for errors.Is/As
// chains while keeping the code as the source of truth.
type Error struct {
	Code   Code
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and detail.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Newf builds a domain error with a formatted detail.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and detail to an underlying cause.
func Wrap(code Code, detail string, cause error) *Error {
	return &Error{Code: code, Detail: detail, cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status used by the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeUserNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeUnsupportedPlatform, CodeInvalidSkillLevel, CodeInvalidEndorsementWeight,
		CodeSelfEndorsement, CodeInvalidProofHash, CodeEmptyUsername,
		CodeInvalidSkillData, CodeInvalidAddress, CodeBadRequest:
		return http.StatusBadRequest
	case CodeInsufficientReputation:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
