// Package services implements the core operations of the publishing
// backend: the article store, engagement ledger, social graph,
// preference model, moderation and notification fan-out.
package services

import "errors"

// Error taxonomy surfaced to callers. Handlers translate these to HTTP
// statuses; everything here is per-request and recoverable.
var (
	// ErrNotFound means a referenced entity is absent (or invisible to
	// the caller, which is indistinguishable by design).
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the actor lacks rights over a mutation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation means malformed or rejected request fields, such as
	// an inactive topic reference or an invalid status target.
	ErrValidation = errors.New("validation error")

	// ErrAlreadyExists is the idempotency conflict for creation-type
	// resources (favorites, pins) where a duplicate is rejected rather
	// than toggled.
	ErrAlreadyExists = errors.New("already exists")

	// ErrAlreadyReported means this user already reported this article.
	ErrAlreadyReported = errors.New("already reported")
)
