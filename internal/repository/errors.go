package repository

import "errors"

// Booking failure modes surfaced to callers. Anything else coming out of the
// repositories is a storage error wrapped with context.
var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotUnavailable = errors.New("slot already booked")
	ErrClientNotFound  = errors.New("client not found")
)
