package response

import (
	"time"

	"speaker-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	Reference   string               `json:"reference"`
	UserID      string               `json:"user_id"`
	SpeakerID   string               `json:"speaker_id"`
	SpeakerName string               `json:"speaker_name,omitempty"`
	SlotID      string               `json:"slot_id"`
	Date        string               `json:"date"`
	StartTime   string               `json:"start_time"`
	EndTime     string               `json:"end_time"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// BookingListResponse is the bookings-page view-model: the user's filtered
// bookings split into upcoming and past relative to today.
type BookingListResponse struct {
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
}

func BookingToResponse(booking *entity.Booking, speakerName string) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		Reference:   booking.Reference,
		UserID:      booking.UserID.String(),
		SpeakerID:   booking.SpeakerID.String(),
		SpeakerName: speakerName,
		SlotID:      booking.SlotID.String(),
		Date:        booking.Date,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	}
}
