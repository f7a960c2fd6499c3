package memory

import (
	"context"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/repository"
	"speaker-booking/internal/data/slots"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Demo dataset IDs are fixed so the API surface is stable across restarts.
var (
	SpeakerAlexID    = uuid.MustParse("5f8b7c1e-0a01-4b5e-9e01-000000000001")
	SpeakerSarahID   = uuid.MustParse("5f8b7c1e-0a01-4b5e-9e01-000000000002")
	SpeakerMichaelID = uuid.MustParse("5f8b7c1e-0a01-4b5e-9e01-000000000003")
	SpeakerJessicaID = uuid.MustParse("5f8b7c1e-0a01-4b5e-9e01-000000000004")
	SpeakerDavidID   = uuid.MustParse("5f8b7c1e-0a01-4b5e-9e01-000000000005")
	DemoUserID       = uuid.MustParse("5f8b7c1e-0a01-4b5e-9e01-000000000101")
)

type seedSpeaker struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     string
	createdAt string
	expertise []string
	price     float64
	bio       string
	image     string
}

var seedSpeakers = []seedSpeaker{
	{
		id: SpeakerAlexID, firstName: "Alex", lastName: "Johnson", email: "alex@example.com",
		createdAt: "2023-05-10T08:00:00Z",
		expertise: []string{"Artificial Intelligence", "Machine Learning", "Data Science"},
		price:     150,
		bio:       "Alex is a renowned AI researcher with over 10 years of experience in the field.",
		image:     "https://i.pravatar.cc/300?img=1",
	},
	{
		id: SpeakerSarahID, firstName: "Sarah", lastName: "Williams", email: "sarah@example.com",
		createdAt: "2023-05-15T08:00:00Z",
		expertise: []string{"Leadership", "Business Strategy", "Entrepreneurship"},
		price:     200,
		bio:       "Sarah is a business strategist who has helped numerous startups scale successfully.",
		image:     "https://i.pravatar.cc/300?img=5",
	},
	{
		id: SpeakerMichaelID, firstName: "Michael", lastName: "Chen", email: "michael@example.com",
		createdAt: "2023-05-20T08:00:00Z",
		expertise: []string{"Digital Marketing", "SEO", "Content Strategy"},
		price:     120,
		bio:       "Michael specializes in digital marketing strategies that drive measurable results.",
		image:     "https://i.pravatar.cc/300?img=3",
	},
	{
		id: SpeakerJessicaID, firstName: "Jessica", lastName: "Rodriguez", email: "jessica@example.com",
		createdAt: "2023-05-25T08:00:00Z",
		expertise: []string{"UX Design", "Product Management", "Innovation"},
		price:     180,
		bio:       "Jessica is a product design expert who helps companies create user-centered products.",
		image:     "https://i.pravatar.cc/300?img=25",
	},
	{
		id: SpeakerDavidID, firstName: "David", lastName: "Kim", email: "david@example.com",
		createdAt: "2023-06-01T08:00:00Z",
		expertise: []string{"Blockchain", "Cryptocurrency", "Web3"},
		price:     250,
		bio:       "David is a blockchain expert who has been involved in the space since 2013.",
		image:     "https://i.pravatar.cc/300?img=12",
	},
}

// Seed loads the demo marketplace: five speakers with a rolling availability
// window each, one demo user, and a few historical bookings for the bookings
// page. Demo bookings carry fixed dates (some already past), mirroring the
// sample dataset this service ships with.
//
// The fixture intentionally relaxes the slot/booking cross-reference the
// workflow maintains: pre-booked slots have no Booking rows, and the demo
// bookings point at slot coordinates that usually fall outside the current
// window. Only bookings created through the API uphold the invariant.
func Seed(ctx context.Context, repo *repository.Repository, cfg utils.SlotConfig, log *zap.Logger) error {
	today := time.Now()

	for _, s := range seedSpeakers {
		hash, err := utils.HashPassword("password123")
		if err != nil {
			return err
		}
		createdAt, _ := time.Parse(time.RFC3339, s.createdAt)
		image := s.image

		user := &entity.User{
			Base: entity.Base{
				ID:        s.id,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			FirstName:     s.firstName,
			LastName:      s.lastName,
			Email:         s.email,
			PasswordHash:  hash,
			UserType:      entity.UserTypeSpeaker,
			EmailVerified: true,
			IsActive:      true,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			return err
		}

		profile := &entity.SpeakerProfile{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			UserID:          s.id,
			Expertise:       s.expertise,
			PricePerSession: s.price,
			Bio:             s.bio,
			ProfileImage:    &image,
		}
		if err := repo.Speaker.CreateProfile(ctx, profile); err != nil {
			return err
		}

		if err := repo.Slot.CreateBatch(ctx, slots.Generate(s.id, today, cfg)); err != nil {
			return err
		}
	}

	hash, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}
	userCreated, _ := time.Parse(time.RFC3339, "2023-04-15T08:00:00Z")
	demoUser := &entity.User{
		Base: entity.Base{
			ID:        DemoUserID,
			CreatedAt: userCreated,
			UpdatedAt: userCreated,
		},
		FirstName:     "Sam",
		LastName:      "User",
		Email:         "sam@example.com",
		PasswordHash:  hash,
		UserType:      entity.UserTypeUser,
		EmailVerified: true,
		IsActive:      true,
	}
	if err := repo.User.Create(ctx, demoUser); err != nil {
		return err
	}

	if err := seedBookings(ctx, repo); err != nil {
		return err
	}

	log.Info("Memory store seeded",
		zap.Int("speakers", len(seedSpeakers)),
		zap.Int("slots_per_speaker", cfg.WindowDays*(cfg.EndHour-cfg.StartHour)),
	)

	return nil
}

func seedBookings(ctx context.Context, repo *repository.Repository) error {
	demo := []struct {
		speakerID uuid.UUID
		date      string
		start     string
		end       string
		status    entity.BookingStatus
		createdAt string
	}{
		{SpeakerAlexID, "2025-05-10", "10:00", "11:00", entity.BookingStatusConfirmed, "2023-05-01T10:30:00Z"},
		{SpeakerSarahID, "2025-05-12", "14:00", "15:00", entity.BookingStatusConfirmed, "2023-05-02T15:45:00Z"},
		{SpeakerMichaelID, "2023-04-10", "09:00", "10:00", entity.BookingStatusCompleted, "2023-03-20T09:15:00Z"},
	}

	for _, d := range demo {
		createdAt, _ := time.Parse(time.RFC3339, d.createdAt)
		booking := &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			Reference: utils.GenerateBookingReference(),
			UserID:    DemoUserID,
			SpeakerID: d.speakerID,
			SlotID:    utils.SlotID(d.speakerID, d.date, d.start),
			Date:      d.date,
			StartTime: d.start,
			EndTime:   d.end,
			Status:    d.status,
		}
		if err := repo.Booking.Create(ctx, booking); err != nil {
			return err
		}
	}

	return nil
}
