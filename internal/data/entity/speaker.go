package entity

import "github.com/google/uuid"

// SpeakerProfile extends a User with the speaker-specific marketplace fields.
// One profile per user with UserType == UserTypeSpeaker.
type SpeakerProfile struct {
	Base
	UserID          uuid.UUID `db:"user_id"`
	Expertise       []string  `db:"expertise"` // ordered as entered
	PricePerSession float64   `db:"price_per_session"`
	Bio             string    `db:"bio"`
	ProfileImage    *string   `db:"profile_image"`
}

// Speaker is the joined view of a speaker user and its profile.
type Speaker struct {
	User
	Profile SpeakerProfile
}
