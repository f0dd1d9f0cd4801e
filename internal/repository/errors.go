// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: an unknown
// activity id is a validation problem, while a full activity or a second
// reservation attempt is a conflict with existing state. Every decline
// leaves the store unchanged.
package repository

import "errors"

// ErrActivityNotFound is returned when the referenced activity id does not
// exist in the catalog. Handlers should translate this into an HTTP 404.
var ErrActivityNotFound = errors.New("activity not found")

// ErrActivityFull is returned when the activity has no free slots left at
// commit time. Handlers should translate this into an HTTP 409.
var ErrActivityFull = errors.New("activity is full")

// ErrAlreadyReserved is returned when the user already holds a
// reservation; a user claims at most one slot, ever. Handlers should
// translate this into an HTTP 409 distinguishable from ErrActivityFull.
var ErrAlreadyReserved = errors.New("user already has a reservation")

// ErrUserNotRegistered is returned when a reservation is attempted by a
// user with no registration record. Handlers should translate this into an
// HTTP 403 prompting the client to register first.
var ErrUserNotRegistered = errors.New("user is not registered")
