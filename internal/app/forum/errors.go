package forum

import "errors"

var (
	// ErrNotFound is returned when a referenced user, room or message does not exist.
	ErrNotFound = errors.New("forum: not found")

	// ErrNotAllowed is returned when the acting user does not own the resource
	// being changed. Mutations also return it for missing resources so that a
	// caller cannot probe for existence.
	ErrNotAllowed = errors.New("forum: not allowed")

	// ErrEmailTaken is returned when registering or changing to an email that
	// another user already has.
	ErrEmailTaken = errors.New("forum: email already registered")
)
