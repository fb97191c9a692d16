package facility

import "errors"

// The store surfaces exactly these kinds; handlers match them with
// errors.Is to pick a status code. Nothing is collapsed into a generic
// failure.
var (
	// ErrNotFound: the identity (rfid, location id, event id) is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateIdentity: create collided with an existing identity.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrInvalidReference: an event names a resident or location that
	// does not exist. The event is never appended.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidRange: range query with start after end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNoHistory: the resident exists but has never been scanned, so
	// no current location can be derived.
	ErrNoHistory = errors.New("no movement history")

	// ErrReferentialConflict: delete refused because ledger events still
	// reference the resident or location.
	ErrReferentialConflict = errors.New("referenced by movement events")
)
