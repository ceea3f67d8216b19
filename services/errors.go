// services/errors.go - Domain error kinds shared by all services
package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Services
// wrap these with fmt.Errorf("%w: ...") when a more specific reason helps.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrEditingDisabled   = errors.New("editing is currently disabled")
	ErrParticipantLocked = errors.New("participant is locked")
)
