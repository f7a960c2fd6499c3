package entity

import "github.com/google/uuid"

// Date and time formats used on TimeSlot and Booking.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeSlot is a bookable one-hour interval belonging to one speaker on one
// date. Slots are created in bulk for a rolling window and mutated in place
// when booked; they are never deleted or regenerated.
type TimeSlot struct {
	BaseSimple
	SpeakerID uuid.UUID  `db:"speaker_id"`
	Date      string     `db:"date"`       // DateLayout
	StartTime string     `db:"start_time"` // TimeLayout, 24-hour
	EndTime   string     `db:"end_time"`   // TimeLayout, 24-hour
	IsBooked  bool       `db:"is_booked"`
	BookingID *uuid.UUID `db:"booking_id"`
}
