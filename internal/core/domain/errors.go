package domain

import "errors"

var (
	// ErrNotFound is returned when a listing, user or favorite does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyProcessed is returned when a moderation decision is attempted
	// on a listing that already left the pending state.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrNotPermitted is returned when the acting user is neither the owner
	// nor an administrator.
	ErrNotPermitted = errors.New("not permitted")

	// ErrUnavailable is returned when an action targets a listing that is no
	// longer approved and active.
	ErrUnavailable = errors.New("listing no longer available")
)
