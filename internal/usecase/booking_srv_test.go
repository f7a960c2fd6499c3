package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/memory"
	"speaker-booking/internal/data/repository"
	"speaker-booking/internal/dto/request"
	"speaker-booking/internal/dto/response"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var bookingTestCfg = utils.SlotConfig{
	WindowDays:  7,
	StartHour:   9,
	EndHour:     16,
	BookedRatio: 0.3,
}

// fixedToday pins the upcoming/past boundary between the seeded demo
// bookings: two on 2025-05-10/12, one on 2023-04-10.
var fixedToday = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newBookingService(t *testing.T) (*bookingService, *repository.Repository) {
	t.Helper()

	repo := memory.NewRepository(memory.NewStore(zap.NewNop()))
	if err := memory.Seed(context.Background(), repo, bookingTestCfg, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := &bookingService{
		repo: repo,
		log:  zap.NewNop(),
		now:  func() time.Time { return fixedToday },
	}
	return svc, repo
}

func openSlot(t *testing.T, repo *repository.Repository, speakerID uuid.UUID) *entity.TimeSlot {
	t.Helper()

	date := time.Now().Format(entity.DateLayout)
	available, err := repo.Slot.FindAvailable(context.Background(), speakerID, date)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if len(available) == 0 {
		t.Fatal("no open slot in seeded window")
	}
	return available[0]
}

func TestListUserBookingsPartition(t *testing.T) {
	svc, _ := newBookingService(t)

	got, err := svc.ListUserBookings(context.Background(), memory.DemoUserID.String(), &request.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}

	if len(got.Upcoming) != 2 {
		t.Errorf("upcoming = %d, want 2", len(got.Upcoming))
	}
	if len(got.Past) != 1 {
		t.Errorf("past = %d, want 1", len(got.Past))
	}

	for _, b := range got.Upcoming {
		if b.Date < fixedToday.Format(entity.DateLayout) {
			t.Errorf("booking on %s listed as upcoming", b.Date)
		}
	}
	for _, b := range got.Past {
		if b.Date >= fixedToday.Format(entity.DateLayout) {
			t.Errorf("booking on %s listed as past", b.Date)
		}
	}
}

func TestListUserBookingsTodayCountsAsUpcoming(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	today := fixedToday.Format(entity.DateLayout)
	booking := &entity.Booking{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference: "BOOK-TEST-TODAY",
		UserID:    memory.DemoUserID,
		SpeakerID: memory.SpeakerAlexID,
		SlotID:    uuid.New(),
		Date:      today,
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    entity.BookingStatusConfirmed,
	}
	if err := repo.Booking.Create(ctx, booking); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	got, err := svc.ListUserBookings(ctx, memory.DemoUserID.String(), &request.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}

	found := false
	for _, b := range got.Upcoming {
		if b.Date == today {
			found = true
		}
	}
	if !found {
		t.Error("a booking dated today should be upcoming")
	}
}

func TestListUserBookingsCompletedIsAlwaysPast(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	// Completed but dated after today: history, not upcoming.
	booking := &entity.Booking{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Reference: "BOOK-TEST-DONE",
		UserID:    memory.DemoUserID,
		SpeakerID: memory.SpeakerAlexID,
		SlotID:    uuid.New(),
		Date:      "2025-06-01",
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    entity.BookingStatusCompleted,
	}
	if err := repo.Booking.Create(ctx, booking); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	got, err := svc.ListUserBookings(ctx, memory.DemoUserID.String(), &request.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}

	for _, b := range got.Upcoming {
		if b.ID == booking.ID.String() {
			t.Error("completed booking listed as upcoming")
		}
	}
	found := false
	for _, b := range got.Past {
		if b.ID == booking.ID.String() {
			found = true
		}
	}
	if !found {
		t.Error("completed booking missing from past")
	}
}

func TestListUserBookingsCancelledFutureInNeitherPartition(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	mk := func(date string, status entity.BookingStatus) uuid.UUID {
		booking := &entity.Booking{
			Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
			Reference: "BOOK-TEST-PART",
			UserID:    memory.DemoUserID,
			SpeakerID: memory.SpeakerAlexID,
			SlotID:    uuid.New(),
			Date:      date,
			StartTime: "09:00",
			EndTime:   "10:00",
			Status:    status,
		}
		if err := repo.Booking.Create(ctx, booking); err != nil {
			t.Fatalf("create booking: %v", err)
		}
		return booking.ID
	}

	cancelledFuture := mk("2025-05-20", entity.BookingStatusCancelled)
	cancelledPast := mk("2023-01-15", entity.BookingStatusCancelled)
	pendingFuture := mk("2025-05-21", entity.BookingStatusPending)

	got, err := svc.ListUserBookings(ctx, memory.DemoUserID.String(), &request.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}

	contains := func(list []response.BookingResponse, id uuid.UUID) bool {
		for _, b := range list {
			if b.ID == id.String() {
				return true
			}
		}
		return false
	}

	// A cancelled booking on a future date shows on neither side.
	if contains(got.Upcoming, cancelledFuture) {
		t.Error("cancelled future booking listed as upcoming")
	}
	if contains(got.Past, cancelledFuture) {
		t.Error("cancelled future booking listed as past")
	}

	// Once its date has passed it is history like anything else.
	if !contains(got.Past, cancelledPast) {
		t.Error("cancelled past booking missing from past")
	}

	// A pending future booking stays visible in upcoming.
	if !contains(got.Upcoming, pendingFuture) {
		t.Error("pending future booking missing from upcoming")
	}
}

func TestListUserBookingsSearch(t *testing.T) {
	svc, _ := newBookingService(t)

	tests := []struct {
		name         string
		search       string
		wantUpcoming int
		wantPast     int
	}{
		{"speaker name", "Sarah", 1, 0},
		{"speaker name case-insensitive", "sarah williams", 1, 0},
		{"date substring", "2023-04", 0, 1},
		{"no match", "nobody", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListUserBookings(context.Background(), memory.DemoUserID.String(),
				&request.ListBookingsRequest{Search: tt.search})
			if err != nil {
				t.Fatalf("list bookings: %v", err)
			}
			if len(got.Upcoming) != tt.wantUpcoming {
				t.Errorf("upcoming = %d, want %d", len(got.Upcoming), tt.wantUpcoming)
			}
			if len(got.Past) != tt.wantPast {
				t.Errorf("past = %d, want %d", len(got.Past), tt.wantPast)
			}
		})
	}
}

func TestListUserBookingsStatusFilter(t *testing.T) {
	svc, _ := newBookingService(t)

	got, err := svc.ListUserBookings(context.Background(), memory.DemoUserID.String(),
		&request.ListBookingsRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}

	if len(got.Upcoming) != 0 {
		t.Errorf("upcoming = %d, want 0", len(got.Upcoming))
	}
	if len(got.Past) != 1 {
		t.Fatalf("past = %d, want 1", len(got.Past))
	}
	if got.Past[0].Status != entity.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", got.Past[0].Status)
	}

	// "all" behaves like no filter.
	all, err := svc.ListUserBookings(context.Background(), memory.DemoUserID.String(),
		&request.ListBookingsRequest{Status: "all"})
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if len(all.Upcoming)+len(all.Past) != 3 {
		t.Errorf("status=all returned %d bookings, want 3", len(all.Upcoming)+len(all.Past))
	}
}

func TestCreateBookingStartsPending(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	slot := openSlot(t, repo, memory.SpeakerAlexID)

	got, err := svc.CreateBooking(ctx, memory.DemoUserID.String(), &request.CreateBookingRequest{
		SpeakerID: memory.SpeakerAlexID.String(),
		SlotID:    slot.ID.String(),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if got.Status != entity.BookingStatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if got.SpeakerName != "Alex Johnson" {
		t.Errorf("speaker name = %q, want Alex Johnson", got.SpeakerName)
	}
	if !strings.HasPrefix(got.Reference, "BOOK-") {
		t.Errorf("reference %q missing BOOK- prefix", got.Reference)
	}

	// Selecting a slot must not take it yet.
	stored, _ := repo.Slot.FindByID(ctx, slot.ID)
	if stored.IsBooked {
		t.Error("slot flipped to booked before confirmation")
	}
}

func TestCreateBookingRejectsForeignSlot(t *testing.T) {
	svc, repo := newBookingService(t)

	slot := openSlot(t, repo, memory.SpeakerSarahID)

	_, err := svc.CreateBooking(context.Background(), memory.DemoUserID.String(), &request.CreateBookingRequest{
		SpeakerID: memory.SpeakerAlexID.String(),
		SlotID:    slot.ID.String(),
	})
	if err == nil {
		t.Fatal("booking a slot of another speaker succeeded")
	}
	if !strings.Contains(err.Error(), "does not belong") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfirmBookingTakesSlot(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	slot := openSlot(t, repo, memory.SpeakerAlexID)

	created, err := svc.CreateBooking(ctx, memory.DemoUserID.String(), &request.CreateBookingRequest{
		SpeakerID: memory.SpeakerAlexID.String(),
		SlotID:    slot.ID.String(),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	confirmed, err := svc.ConfirmBooking(ctx, memory.DemoUserID.String(), created.ID)
	if err != nil {
		t.Fatalf("confirm booking: %v", err)
	}
	if confirmed.Status != entity.BookingStatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	stored, _ := repo.Slot.FindByID(ctx, slot.ID)
	if !stored.IsBooked {
		t.Error("slot not booked after confirmation")
	}

	// Confirming again is an invalid transition.
	_, err = svc.ConfirmBooking(ctx, memory.DemoUserID.String(), created.ID)
	if err == nil {
		t.Fatal("double confirm succeeded")
	}
	if !strings.Contains(err.Error(), "cannot confirm") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfirmBookingLosesRace(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	slot := openSlot(t, repo, memory.SpeakerAlexID)

	mk := func() string {
		created, err := svc.CreateBooking(ctx, memory.DemoUserID.String(), &request.CreateBookingRequest{
			SpeakerID: memory.SpeakerAlexID.String(),
			SlotID:    slot.ID.String(),
		})
		if err != nil {
			t.Fatalf("create booking: %v", err)
		}
		return created.ID
	}

	winner := mk()
	loser := mk()

	if _, err := svc.ConfirmBooking(ctx, memory.DemoUserID.String(), winner); err != nil {
		t.Fatalf("winner confirm: %v", err)
	}

	_, err := svc.ConfirmBooking(ctx, memory.DemoUserID.String(), loser)
	if err == nil {
		t.Fatal("confirming an already taken slot succeeded")
	}
	if !strings.Contains(err.Error(), "already booked") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCancelConfirmedBookingReleasesSlot(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	slot := openSlot(t, repo, memory.SpeakerAlexID)

	created, err := svc.CreateBooking(ctx, memory.DemoUserID.String(), &request.CreateBookingRequest{
		SpeakerID: memory.SpeakerAlexID.String(),
		SlotID:    slot.ID.String(),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := svc.ConfirmBooking(ctx, memory.DemoUserID.String(), created.ID); err != nil {
		t.Fatalf("confirm booking: %v", err)
	}

	cancelled, err := svc.CancelBooking(ctx, memory.DemoUserID.String(), created.ID)
	if err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if cancelled.Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	stored, _ := repo.Slot.FindByID(ctx, slot.ID)
	if stored.IsBooked {
		t.Error("slot not released after cancelling a confirmed booking")
	}

	// cancelled is terminal
	_, err = svc.CancelBooking(ctx, memory.DemoUserID.String(), created.ID)
	if err == nil {
		t.Fatal("cancelling a cancelled booking succeeded")
	}
	if !strings.Contains(err.Error(), "cannot cancel") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCancelPendingBookingLeavesSlotOpen(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	slot := openSlot(t, repo, memory.SpeakerAlexID)

	created, err := svc.CreateBooking(ctx, memory.DemoUserID.String(), &request.CreateBookingRequest{
		SpeakerID: memory.SpeakerAlexID.String(),
		SlotID:    slot.ID.String(),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := svc.CancelBooking(ctx, memory.DemoUserID.String(), created.ID); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}

	stored, _ := repo.Slot.FindByID(ctx, slot.ID)
	if stored.IsBooked {
		t.Error("cancelling a pending booking touched the slot")
	}
}

func TestBookingOwnershipEnforced(t *testing.T) {
	svc, repo := newBookingService(t)
	ctx := context.Background()

	slot := openSlot(t, repo, memory.SpeakerAlexID)

	created, err := svc.CreateBooking(ctx, memory.DemoUserID.String(), &request.CreateBookingRequest{
		SpeakerID: memory.SpeakerAlexID.String(),
		SlotID:    slot.ID.String(),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	stranger := uuid.New().String()
	_, err = svc.GetBookingByID(ctx, stranger, created.ID)
	if err == nil {
		t.Fatal("another user read the booking")
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := svc.ConfirmBooking(ctx, stranger, created.ID); err == nil {
		t.Fatal("another user confirmed the booking")
	}
	if _, err := svc.CancelBooking(ctx, stranger, created.ID); err == nil {
		t.Fatal("another user cancelled the booking")
	}
}
