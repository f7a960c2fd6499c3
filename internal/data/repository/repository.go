package repository

import (
	"speaker-booking/pkg/database"

	"go.uber.org/zap"
)

// Repository groups the per-entity repositories. NewRepository builds the
// Postgres-backed set; the memory package provides the seeded in-memory set
// behind the same interfaces.
type Repository struct {
	User    UserRepository
	Speaker SpeakerRepository
	Slot    SlotRepository
	Booking BookingRepository
	Session SessionRepository
	OTP     OTPRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Speaker: NewSpeakerRepository(db, log),
		Slot:    NewSlotRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Session: NewSessionRepository(db, log),
		OTP:     NewOTPRepository(db, log),
	}
}
