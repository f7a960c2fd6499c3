package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/repository"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var seedCfg = utils.SlotConfig{
	WindowDays:  7,
	StartHour:   9,
	EndHour:     16,
	BookedRatio: 0.3,
}

func newSeededRepo(t *testing.T) *repository.Repository {
	t.Helper()

	repo := NewRepository(NewStore(zap.NewNop()))
	if err := Seed(context.Background(), repo, seedCfg, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestSeedLoadsDemoDataset(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	count, err := repo.Speaker.CountSpeakers(ctx, "")
	if err != nil {
		t.Fatalf("count speakers: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 seeded speakers, got %d", count)
	}

	window, err := repo.Slot.FindBySpeakerID(ctx, SpeakerAlexID)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(window) != 49 {
		t.Errorf("expected 49 slots in Alex's window, got %d", len(window))
	}

	bookings, err := repo.Booking.FindByUserID(ctx, DemoUserID)
	if err != nil {
		t.Fatalf("find bookings: %v", err)
	}
	if len(bookings) != 3 {
		t.Errorf("expected 3 seeded bookings, got %d", len(bookings))
	}
}

func TestListSpeakersSearch(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"by first name", "Sarah", 1},
		{"by last name case-insensitive", "chen", 1},
		{"by expertise", "Blockchain", 1},
		{"no match", "quantum basket weaving", 0},
		{"empty matches all", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speakers, err := repo.Speaker.ListSpeakers(ctx, tt.search, 10, 0)
			if err != nil {
				t.Fatalf("list speakers: %v", err)
			}
			if len(speakers) != tt.want {
				t.Errorf("search %q: got %d speakers, want %d", tt.search, len(speakers), tt.want)
			}
		})
	}
}

func TestListSpeakersPagination(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	first, err := repo.Speaker.ListSpeakers(ctx, "", 2, 0)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	second, err := repo.Speaker.ListSpeakers(ctx, "", 2, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 speakers per page, got %d and %d", len(first), len(second))
	}
	if first[0].ID == second[0].ID {
		t.Error("pages overlap")
	}
}

func TestFindAvailableExcludesBookedSlots(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	date := time.Now().Format(entity.DateLayout)

	available, err := repo.Slot.FindAvailable(ctx, SpeakerAlexID, date)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}

	for _, slot := range available {
		if slot.IsBooked {
			t.Errorf("slot %s %s is booked but listed as available", slot.Date, slot.StartTime)
		}
		if slot.Date != date {
			t.Errorf("slot date %s leaked into %s query", slot.Date, date)
		}
	}

	// Chronological within the day.
	for i := 1; i < len(available); i++ {
		if available[i].StartTime <= available[i-1].StartTime {
			t.Errorf("slots out of order: %s after %s", available[i].StartTime, available[i-1].StartTime)
		}
	}
}

func TestCreateBatchKeepsExistingBookedState(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	date := time.Now().Format(entity.DateLayout)
	available, err := repo.Slot.FindAvailable(ctx, SpeakerAlexID, date)
	if err != nil || len(available) == 0 {
		t.Fatalf("no open slot to work with: %v", err)
	}
	target := available[0]

	if err := repo.Slot.MarkBooked(ctx, target.ID, uuid.New()); err != nil {
		t.Fatalf("mark booked: %v", err)
	}

	// Re-submitting the same window must not reset the booked flag.
	regen := []*entity.TimeSlot{{
		BaseSimple: entity.BaseSimple{ID: target.ID, CreatedAt: time.Now()},
		SpeakerID:  target.SpeakerID,
		Date:       target.Date,
		StartTime:  target.StartTime,
		EndTime:    target.EndTime,
		IsBooked:   false,
	}}
	if err := repo.Slot.CreateBatch(ctx, regen); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	got, err := repo.Slot.FindByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("find slot: %v", err)
	}
	if !got.IsBooked {
		t.Error("regenerating the window reset the booked state")
	}
}

func TestConfirmFlipsSlotAndBookingTogether(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	date := time.Now().Format(entity.DateLayout)
	available, err := repo.Slot.FindAvailable(ctx, SpeakerAlexID, date)
	if err != nil || len(available) == 0 {
		t.Fatalf("no open slot to work with: %v", err)
	}
	slot := available[0]

	booking := &entity.Booking{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference: "BOOK-TEST-0001",
		UserID:    DemoUserID,
		SpeakerID: SpeakerAlexID,
		SlotID:    slot.ID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    entity.BookingStatusPending,
	}
	if err := repo.Booking.Create(ctx, booking); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if err := repo.Booking.Confirm(ctx, booking.ID, slot.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	gotBooking, _ := repo.Booking.FindByID(ctx, booking.ID)
	if gotBooking.Status != entity.BookingStatusConfirmed {
		t.Errorf("booking status = %s, want confirmed", gotBooking.Status)
	}

	gotSlot, _ := repo.Slot.FindByID(ctx, slot.ID)
	if !gotSlot.IsBooked {
		t.Error("slot not marked booked after confirm")
	}
	if gotSlot.BookingID == nil || *gotSlot.BookingID != booking.ID {
		t.Error("slot does not back-reference the booking")
	}
}

func TestConfirmLosesRaceCleanly(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	date := time.Now().Format(entity.DateLayout)
	available, err := repo.Slot.FindAvailable(ctx, SpeakerAlexID, date)
	if err != nil || len(available) == 0 {
		t.Fatalf("no open slot to work with: %v", err)
	}
	slot := available[0]

	mkBooking := func() *entity.Booking {
		b := &entity.Booking{
			Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
			Reference: "BOOK-TEST-RACE",
			UserID:    DemoUserID,
			SpeakerID: SpeakerAlexID,
			SlotID:    slot.ID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Status:    entity.BookingStatusPending,
		}
		if err := repo.Booking.Create(ctx, b); err != nil {
			t.Fatalf("create booking: %v", err)
		}
		return b
	}

	winner := mkBooking()
	loser := mkBooking()

	if err := repo.Booking.Confirm(ctx, winner.ID, slot.ID); err != nil {
		t.Fatalf("winner confirm: %v", err)
	}

	err = repo.Booking.Confirm(ctx, loser.ID, slot.ID)
	if err == nil {
		t.Fatal("second confirm on the same slot succeeded")
	}
	if !strings.Contains(err.Error(), "already booked") {
		t.Errorf("unexpected error: %v", err)
	}

	// The losing booking must be untouched.
	gotLoser, _ := repo.Booking.FindByID(ctx, loser.ID)
	if gotLoser.Status != entity.BookingStatusPending {
		t.Errorf("loser status = %s, want pending", gotLoser.Status)
	}
}

func TestCancelReleasesOwnedSlotOnly(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	date := time.Now().Format(entity.DateLayout)
	available, err := repo.Slot.FindAvailable(ctx, SpeakerAlexID, date)
	if err != nil || len(available) == 0 {
		t.Fatalf("no open slot to work with: %v", err)
	}
	slot := available[0]

	booking := &entity.Booking{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference: "BOOK-TEST-0002",
		UserID:    DemoUserID,
		SpeakerID: SpeakerAlexID,
		SlotID:    slot.ID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    entity.BookingStatusPending,
	}
	if err := repo.Booking.Create(ctx, booking); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := repo.Booking.Confirm(ctx, booking.ID, slot.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := repo.Booking.Cancel(ctx, booking.ID, slot.ID, true); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	gotBooking, _ := repo.Booking.FindByID(ctx, booking.ID)
	if gotBooking.Status != entity.BookingStatusCancelled {
		t.Errorf("booking status = %s, want cancelled", gotBooking.Status)
	}

	gotSlot, _ := repo.Slot.FindByID(ctx, slot.ID)
	if gotSlot.IsBooked {
		t.Error("slot still booked after cancel")
	}
	if gotSlot.BookingID != nil {
		t.Error("slot still references the cancelled booking")
	}
}

func TestSessionLifecycle(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     DemoUserID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	if err := repo.Session.Create(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := repo.Session.FindValidSession(ctx, session.Token.String())
	if err != nil {
		t.Fatalf("find session: %v", err)
	}
	if got == nil || got.UserID != DemoUserID {
		t.Fatal("valid session not found")
	}

	if err := repo.Session.Revoke(ctx, session.Token.String()); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	got, err = repo.Session.FindValidSession(ctx, session.Token.String())
	if err != nil {
		t.Fatalf("find after revoke: %v", err)
	}
	if got != nil {
		t.Error("revoked session still resolves")
	}
}

func TestFindValidOTPRules(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	mkOTP := func(code string, expiresAt time.Time, used bool) *entity.OTP {
		return &entity.OTP{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			UserID:     DemoUserID,
			Email:      "sam@example.com",
			OTPCode:    code,
			OTPType:    entity.OTPTypeEmailVerification,
			ExpiresAt:  expiresAt,
			IsUsed:     used,
		}
	}

	if err := repo.OTP.Create(ctx, mkOTP("111111", time.Now().Add(-time.Minute), false)); err != nil {
		t.Fatalf("create expired OTP: %v", err)
	}
	if err := repo.OTP.Create(ctx, mkOTP("222222", time.Now().Add(10*time.Minute), true)); err != nil {
		t.Fatalf("create used OTP: %v", err)
	}
	fresh := mkOTP("333333", time.Now().Add(10*time.Minute), false)
	if err := repo.OTP.Create(ctx, fresh); err != nil {
		t.Fatalf("create fresh OTP: %v", err)
	}

	if got, _ := repo.OTP.FindValidOTP(ctx, "sam@example.com", "111111", entity.OTPTypeEmailVerification); got != nil {
		t.Error("expired OTP accepted")
	}
	if got, _ := repo.OTP.FindValidOTP(ctx, "sam@example.com", "222222", entity.OTPTypeEmailVerification); got != nil {
		t.Error("used OTP accepted")
	}
	got, _ := repo.OTP.FindValidOTP(ctx, "sam@example.com", "333333", entity.OTPTypeEmailVerification)
	if got == nil || got.ID != fresh.ID {
		t.Error("fresh OTP not found")
	}
}
