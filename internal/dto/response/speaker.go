package response

import (
	"time"

	"speaker-booking/internal/data/entity"
)

type SpeakerResponse struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Expertise       []string  `json:"expertise"`
	PricePerSession float64   `json:"price_per_session"`
	Bio             string    `json:"bio"`
	ProfileImage    *string   `json:"profile_image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SlotResponse struct {
	ID        string `json:"id"`
	SpeakerID string `json:"speaker_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
}

// AvailabilityResponse is the speaker-detail availability view: the
// requested date plus the open slots on it.
type AvailabilityResponse struct {
	SpeakerID string         `json:"speaker_id"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// Helper converters
func SpeakerToResponse(speaker *entity.Speaker) SpeakerResponse {
	return SpeakerResponse{
		ID:              speaker.ID.String(),
		FirstName:       speaker.FirstName,
		LastName:        speaker.LastName,
		Email:           speaker.Email,
		Expertise:       speaker.Profile.Expertise,
		PricePerSession: speaker.Profile.PricePerSession,
		Bio:             speaker.Profile.Bio,
		ProfileImage:    speaker.Profile.ProfileImage,
		CreatedAt:       speaker.CreatedAt,
	}
}

func SlotToResponse(slot *entity.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:        slot.ID.String(),
		SpeakerID: slot.SpeakerID.String(),
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		IsBooked:  slot.IsBooked,
	}
}
