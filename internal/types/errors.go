package types

import "errors"

// Business-rule errors. Services return these; the single responder in
// utils maps each one to its HTTP status so no handler invents its own
// translation.
var (
	ErrUnauthorized         = errors.New("Unauthorized")
	ErrNotFound             = errors.New("Not found")
	ErrUserNotFound         = errors.New("User not found.")
	ErrAlreadyMember        = errors.New("User is already a member of this project.")
	ErrOwnerCannotBeRemoved = errors.New("The project owner cannot be removed.")
)
