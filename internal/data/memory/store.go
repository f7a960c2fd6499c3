// Package memory implements the repository interfaces over seeded in-memory
// collections. It is the default store: the marketplace dataset is a demo
// fixture, not durable state.
package memory

import (
	"sync"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns all collections behind one lock. The original dataset was
// single-session client state; an HTTP server is not, so every repository
// method takes the lock and cross-entity mutations (confirm, cancel) happen
// under a single write section.
type Store struct {
	mu  sync.RWMutex
	log *zap.Logger

	users     map[uuid.UUID]*entity.User
	userOrder []uuid.UUID
	profiles  map[uuid.UUID]*entity.SpeakerProfile // keyed by user ID

	slots     map[uuid.UUID]*entity.TimeSlot
	slotOrder []uuid.UUID // generation order, chronological per speaker

	bookings     map[uuid.UUID]*entity.Booking
	bookingOrder []uuid.UUID

	sessions map[string]*entity.Session // keyed by token
	otps     []*entity.OTP
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		log:      log.With(zap.String("store", "memory")),
		users:    make(map[uuid.UUID]*entity.User),
		profiles: make(map[uuid.UUID]*entity.SpeakerProfile),
		slots:    make(map[uuid.UUID]*entity.TimeSlot),
		bookings: make(map[uuid.UUID]*entity.Booking),
		sessions: make(map[string]*entity.Session),
	}
}

// NewRepository wraps the store in the shared repository interfaces.
func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s},
		Speaker: &speakerRepo{s},
		Slot:    &slotRepo{s},
		Booking: &bookingRepo{s},
		Session: &sessionRepo{s},
		OTP:     &otpRepo{s},
	}
}

// Repositories hand out copies so callers never alias store-owned records.

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyProfile(p *entity.SpeakerProfile) *entity.SpeakerProfile {
	c := *p
	c.Expertise = append([]string(nil), p.Expertise...)
	return &c
}

func copySpeaker(u *entity.User, p *entity.SpeakerProfile) *entity.Speaker {
	return &entity.Speaker{User: *copyUser(u), Profile: *copyProfile(p)}
}

func copySlot(s *entity.TimeSlot) *entity.TimeSlot {
	c := *s
	if s.BookingID != nil {
		id := *s.BookingID
		c.BookingID = &id
	}
	return &c
}

func copyBooking(b *entity.Booking) *entity.Booking {
	c := *b
	return &c
}
