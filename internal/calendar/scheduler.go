package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrNoCredential means the therapist never granted offline calendar access,
// so no event can be created on their behalf.
var ErrNoCredential = errors.New("no google refresh token for user")

// Event is the external reference of a created calendar event.
type Event struct {
	EventID  string
	MeetLink string
}

// EventRequest describes the session to put on the therapist's calendar.
type EventRequest struct {
	TherapistID int64
	ClientName  string
	ClientEmail string
	StartTime   time.Time
	EndTime     time.Time
}

// Scheduler creates and cancels meeting events for confirmed bookings. Both
// operations are best-effort from the booking core's point of view: callers
// log failures and keep their local state.
type Scheduler interface {
	CreateEvent(ctx context.Context, req EventRequest) (*Event, error)
	CancelEvent(ctx context.Context, therapistID int64, eventID string) error
}
