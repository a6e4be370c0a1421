package model

import (
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	ID            int64         `json:"id"`
	SlotID        int64         `json:"slot_id"`
	TherapistID   int64         `json:"therapist_id"`
	ClientID      int64         `json:"client_id"`
	Status        BookingStatus `json:"status"`
	GoogleEventID *string       `json:"google_event_id"`
	MeetLink      *string       `json:"meet_link"`
	CreatedAt     time.Time     `json:"created_at"`
}

// BookingClaim is the result of the atomic slot claim: the new booking plus
// the locked slot and the display fields of both parties, so the caller can
// build the calendar event without going back to the database.
type BookingClaim struct {
	Booking        *Booking
	Slot           *Slot
	TherapistName  string
	TherapistEmail string
	ClientName     string
	ClientEmail    string
}

// ClientBooking is a booking enriched for the client's "my bookings" view.
type ClientBooking struct {
	ID             int64         `json:"id"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	MeetLink       *string       `json:"meet_link"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	TherapistID    int64         `json:"therapist_id"`
	TherapistName  string        `json:"therapist_name"`
	TherapistEmail string        `json:"therapist_email"`
}

// TherapistSession is a booking enriched for the therapist's upcoming view.
type TherapistSession struct {
	ID          int64         `json:"id"`
	SlotID      int64         `json:"slot_id"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	ClientName  string        `json:"client_name"`
	ClientEmail string        `json:"client_email"`
}

// AdminBooking is the master-list row joining clients and therapists.
type AdminBooking struct {
	ID             int64         `json:"id"`
	Status         BookingStatus `json:"status"`
	MeetLink       *string       `json:"meet_link"`
	CreatedAt      time.Time     `json:"created_at"`
	ClientID       int64         `json:"client_id"`
	ClientName     string        `json:"client_name"`
	ClientEmail    string        `json:"client_email"`
	TherapistName  string        `json:"therapist_name"`
	TherapistEmail string        `json:"therapist_email"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
}

// AdminUser is a user row with its booking count for the admin console.
type AdminUser struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         Role    `json:"role"`
	Picture      *string `json:"picture"`
	PhotoURL     *string `json:"photo_url"`
	BookingCount int64   `json:"booking_count"`
}

// AdminTherapist is a therapist with its slots aggregated as JSON.
type AdminTherapist struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     Role            `json:"role"`
	Picture  *string         `json:"picture"`
	PhotoURL *string         `json:"photo_url"`
	Slots    json.RawMessage `json:"slots"`
}
