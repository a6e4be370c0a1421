package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleTherapist Role = "therapist"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTherapist, RoleAdmin:
		return true
	}
	return false
}

// OneOf reports whether the role is in the allowed set.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

type User struct {
	ID         int64     `json:"id"`
	GoogleID   string    `json:"-"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Picture    *string   `json:"picture"`
	Role       Role      `json:"role"`
	PhotoURL   *string   `json:"photo_url"`
	Headline   *string   `json:"headline"`
	ProfileBio *string   `json:"profile_bio"`
	CreatedAt  time.Time `json:"created_at"`
}

// GoogleProfile carries the identity fields read from Google during login.
type GoogleProfile struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// TherapistProfile is the public display subset of a therapist's user row.
type TherapistProfile struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	PhotoURL   *string `json:"photo_url"`
	Headline   *string `json:"headline"`
	ProfileBio *string `json:"profile_bio"`
}

// TherapistProfileUpdate is the writable part of a therapist profile.
type TherapistProfileUpdate struct {
	PhotoURL   *string `json:"photo_url"`
	Headline   *string `json:"headline"`
	ProfileBio *string `json:"profile_bio"`
}
