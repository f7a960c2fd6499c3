package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/repository"
	"speaker-booking/internal/dto/request"
	"speaker-booking/internal/dto/response"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking reserves a slot for the user: the booking starts out
	// pending and the slot stays open until ConfirmBooking.
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// ConfirmBooking moves a pending booking to confirmed and takes the
	// slot atomically.
	ConfirmBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)

	CancelBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)

	// ListUserBookings applies the search and status filters, then splits
	// the result into upcoming and past relative to today.
	ListUserBookings(ctx context.Context, userID string, req *request.ListBookingsRequest) (*response.BookingListResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger

	// now is swapped in tests to pin the upcoming/past boundary.
	now func() time.Time
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	speakerID := uuid.MustParse(req.SpeakerID)
	slotID := uuid.MustParse(req.SlotID)

	// 2. Speaker must exist
	speaker, err := s.repo.Speaker.FindSpeakerByID(ctx, speakerID)
	if err != nil {
		s.log.Error("Failed to find speaker", zap.Error(err), zap.String("speaker_id", req.SpeakerID))
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if speaker == nil {
		return nil, fmt.Errorf("speaker %s not found", req.SpeakerID)
	}

	// 3. Slot must exist, belong to the speaker, and be open
	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		s.log.Error("Failed to find slot", zap.Error(err), zap.String("slot_id", req.SlotID))
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %s not found", req.SlotID)
	}
	if slot.SpeakerID != speakerID {
		return nil, fmt.Errorf("invalid slot: slot %s does not belong to speaker %s", req.SlotID, req.SpeakerID)
	}
	if slot.IsBooked {
		return nil, fmt.Errorf("slot %s is already booked", req.SlotID)
	}

	// 4. Create pending booking, slot details denormalized for the list
	// view
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference: utils.GenerateBookingReference(),
		UserID:    uid,
		SpeakerID: speakerID,
		SlotID:    slotID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to create booking")
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("user_id", userID),
		zap.String("slot_id", req.SlotID))

	resp := response.BookingToResponse(booking, speaker.FullName())
	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("cannot confirm booking with status %s", booking.Status)
	}

	// Flips the slot and the booking status in one transaction; loses the
	// race cleanly when someone books the slot first.
	if err := s.repo.Booking.Confirm(ctx, booking.ID, booking.SlotID); err != nil {
		s.log.Warn("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("slot_id", booking.SlotID.String()))
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	booking.Status = entity.BookingStatusConfirmed

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("reference", booking.Reference),
		zap.String("user_id", userID))

	return s.withSpeakerName(ctx, booking)
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusPending && booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("cannot cancel booking with status %s", booking.Status)
	}

	// Only a confirmed booking holds the slot.
	releaseSlot := booking.Status == entity.BookingStatusConfirmed

	if err := s.repo.Booking.Cancel(ctx, booking.ID, booking.SlotID, releaseSlot); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.Bool("slot_released", releaseSlot))

	return s.withSpeakerName(ctx, booking)
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.withSpeakerName(ctx, booking)
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string, req *request.ListBookingsRequest) (*response.BookingListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List bookings validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, uid)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	today := s.now().Format(entity.DateLayout)
	search := strings.ToLower(strings.TrimSpace(req.Search))
	status := req.Status

	result := &response.BookingListResponse{
		Upcoming: []response.BookingResponse{},
		Past:     []response.BookingResponse{},
	}

	speakerNames := make(map[uuid.UUID]string)

	for _, booking := range bookings {
		if status != "" && status != "all" && string(booking.Status) != status {
			continue
		}

		name, ok := speakerNames[booking.SpeakerID]
		if !ok {
			name = s.speakerName(ctx, booking.SpeakerID)
			speakerNames[booking.SpeakerID] = name
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(name), search) &&
			!strings.Contains(booking.Date, search) {
			continue
		}

		item := response.BookingToResponse(booking, name)

		// Completed bookings are history regardless of date; a cancelled
		// booking on a future date belongs to neither side. Dates are ISO
		// strings, so lexicographic order is date order.
		switch {
		case booking.Status == entity.BookingStatusCompleted || booking.Date < today:
			result.Past = append(result.Past, item)
		case booking.Status == entity.BookingStatusCancelled:
			// dropped from the page
		default:
			result.Upcoming = append(result.Upcoming, item)
		}
	}

	return result, nil
}

// ==================== HELPER METHODS ====================

// loadOwnedBooking loads the booking and rejects access by anyone but its
// owner.
func (s *bookingService) loadOwnedBooking(ctx context.Context, userID, bookingID string) (*entity.Booking, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bid, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bid)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if booking.UserID != uid {
		s.log.Warn("Booking access denied",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID))
		return nil, fmt.Errorf("unauthorized: booking belongs to another user")
	}

	return booking, nil
}

func (s *bookingService) speakerName(ctx context.Context, speakerID uuid.UUID) string {
	speaker, err := s.repo.Speaker.FindSpeakerByID(ctx, speakerID)
	if err != nil || speaker == nil {
		s.log.Warn("Failed to resolve speaker name",
			zap.Error(err),
			zap.String("speaker_id", speakerID.String()))
		return ""
	}
	return speaker.FullName()
}

func (s *bookingService) withSpeakerName(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	resp := response.BookingToResponse(booking, s.speakerName(ctx, booking.SpeakerID))
	return &resp, nil
}
