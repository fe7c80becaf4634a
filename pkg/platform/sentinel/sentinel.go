package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The key-value stores return these
// (optionally wrapped) so the engine can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: key does not exist in the store
// - ErrConflict: record already exists where creation was expected
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domainerrors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
