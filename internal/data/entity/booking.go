package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking reserves exactly one TimeSlot for one user. The slot's is_booked
// flag and booking_id are flipped together with the pending -> confirmed
// transition, never independently.
type Booking struct {
	Base
	Reference string        `db:"reference"`
	UserID    uuid.UUID     `db:"user_id"`
	SpeakerID uuid.UUID     `db:"speaker_id"`
	SlotID    uuid.UUID     `db:"slot_id"`
	Date      string        `db:"date"`
	StartTime string        `db:"start_time"`
	EndTime   string        `db:"end_time"`
	Status    BookingStatus `db:"status"`
}
