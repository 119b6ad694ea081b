package main

import "errors"

// Error kinds surfaced by the core. Handlers map these onto HTTP statuses;
// store adapters wrap driver failures in errStoreUnavailable so callers can
// tell a missing row from a broken backend.
var (
	errNotFound         = errors.New("not_found")
	errInvalidInput     = errors.New("invalid_input")
	errDuplicateProfile = errors.New("duplicate_profile")
	errStoreUnavailable = errors.New("store_unavailable")
)
