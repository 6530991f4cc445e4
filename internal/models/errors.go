package models

import "errors"

// Domain errors. Handlers map these to HTTP statuses; everything else is an
// infrastructure failure.
var (
	// ErrNotFound reports a lookup miss on any of the stores.
	ErrNotFound = errors.New("record not found")
	// ErrUnknownField reports an update request naming a field the
	// dispatcher does not route.
	ErrUnknownField = errors.New("unknown update field")
	// ErrProtectedID reports an update aimed at a reserved administrator id.
	ErrProtectedID = errors.New("id is in the reserved administrator range")
	// ErrInvalidValue reports an update value of the wrong type for its field.
	ErrInvalidValue = errors.New("invalid value for update field")
	// ErrAllocatorUninitialized reports an id allocation attempted before the
	// counter record was seeded.
	ErrAllocatorUninitialized = errors.New("sequence counter not initialized")
)
