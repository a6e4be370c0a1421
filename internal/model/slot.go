package model

import "time"

// SessionDuration is the fixed length of a therapy session. Slot end times are
// derived from it on creation, the schema does not enforce it.
const SessionDuration = 75 * time.Minute

type Slot struct {
	ID          int64     `json:"id"`
	TherapistID int64     `json:"therapist_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsBooked    bool      `json:"is_booked"`
	CreatedAt   time.Time `json:"created_at"`
}
