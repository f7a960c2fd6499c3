package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"speaker-booking/internal/data/entity"

	"github.com/google/uuid"
)

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.ID]; exists {
		return fmt.Errorf("user %s already exists", user.ID.String())
	}

	r.s.users[user.ID] = copyUser(user)
	r.s.userOrder = append(r.s.userOrder, user.ID)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok || !user.IsActive {
		return nil, nil
	}
	return copyUser(user), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.userOrder {
		if user := r.s.users[id]; strings.EqualFold(user.Email, email) {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (r *userRepo) SetEmailVerified(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.EmailVerified = true
	user.UpdatedAt = time.Now()
	return nil
}

// ==================== SPEAKERS ====================

type speakerRepo struct{ s *Store }

func (r *speakerRepo) CreateProfile(_ context.Context, profile *entity.SpeakerProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.profiles[profile.UserID]; exists {
		return fmt.Errorf("speaker profile for user %s already exists", profile.UserID.String())
	}

	r.s.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

func (r *speakerRepo) FindProfileByUserID(_ context.Context, userID uuid.UUID) (*entity.SpeakerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profile, ok := r.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return copyProfile(profile), nil
}

func (r *speakerRepo) FindSpeakerByID(_ context.Context, userID uuid.UUID) (*entity.Speaker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok || user.UserType != entity.UserTypeSpeaker || !user.IsActive {
		return nil, nil
	}
	profile, ok := r.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return copySpeaker(user, profile), nil
}

func matchesSpeaker(user *entity.User, profile *entity.SpeakerProfile, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(user.FullName()), q) {
		return true
	}
	for _, exp := range profile.Expertise {
		if strings.Contains(strings.ToLower(exp), q) {
			return true
		}
	}
	return false
}

func (r *speakerRepo) ListSpeakers(_ context.Context, search string, limit, offset int) ([]*entity.Speaker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var speakers []*entity.Speaker
	skipped := 0
	for _, id := range r.s.userOrder {
		user := r.s.users[id]
		if user.UserType != entity.UserTypeSpeaker || !user.IsActive {
			continue
		}
		profile, ok := r.s.profiles[id]
		if !ok || !matchesSpeaker(user, profile, search) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(speakers) >= limit {
			break
		}
		speakers = append(speakers, copySpeaker(user, profile))
	}

	return speakers, nil
}

func (r *speakerRepo) CountSpeakers(_ context.Context, search string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, id := range r.s.userOrder {
		user := r.s.users[id]
		if user.UserType != entity.UserTypeSpeaker || !user.IsActive {
			continue
		}
		if profile, ok := r.s.profiles[id]; ok && matchesSpeaker(user, profile, search) {
			count++
		}
	}
	return count, nil
}

// ==================== TIME SLOTS ====================

type slotRepo struct{ s *Store }

func (r *slotRepo) CreateBatch(_ context.Context, slots []*entity.TimeSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, slot := range slots {
		// Regenerating a window is a no-op for slots that already exist;
		// booked state is never reset.
		if _, exists := r.s.slots[slot.ID]; exists {
			continue
		}
		r.s.slots[slot.ID] = copySlot(slot)
		r.s.slotOrder = append(r.s.slotOrder, slot.ID)
	}
	return nil
}

func (r *slotRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	slot, ok := r.s.slots[id]
	if !ok {
		return nil, nil
	}
	return copySlot(slot), nil
}

func (r *slotRepo) FindBySpeakerID(_ context.Context, speakerID uuid.UUID) ([]*entity.TimeSlot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.TimeSlot
	for _, id := range r.s.slotOrder {
		if slot := r.s.slots[id]; slot.SpeakerID == speakerID {
			out = append(out, copySlot(slot))
		}
	}
	return out, nil
}

func (r *slotRepo) FindAvailable(_ context.Context, speakerID uuid.UUID, date string) ([]*entity.TimeSlot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Generation order is chronological, so filtering preserves it.
	var out []*entity.TimeSlot
	for _, id := range r.s.slotOrder {
		slot := r.s.slots[id]
		if slot.SpeakerID == speakerID && slot.Date == date && !slot.IsBooked {
			out = append(out, copySlot(slot))
		}
	}
	return out, nil
}

func (r *slotRepo) MarkBooked(_ context.Context, slotID, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.markBookedLocked(slotID, bookingID)
}

func (r *slotRepo) Release(_ context.Context, slotID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[slotID]
	if !ok {
		return fmt.Errorf("slot %s not found", slotID.String())
	}
	slot.IsBooked = false
	slot.BookingID = nil
	return nil
}

func (s *Store) markBookedLocked(slotID, bookingID uuid.UUID) error {
	slot, ok := s.slots[slotID]
	if !ok {
		return fmt.Errorf("slot %s not found", slotID.String())
	}
	if slot.IsBooked {
		return fmt.Errorf("slot %s is already booked", slotID.String())
	}
	slot.IsBooked = true
	id := bookingID
	slot.BookingID = &id
	return nil
}

// ==================== BOOKINGS ====================

type bookingRepo struct{ s *Store }

func (r *bookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.bookings[booking.ID]; exists {
		return fmt.Errorf("booking %s already exists", booking.ID.String())
	}

	r.s.bookings[booking.ID] = copyBooking(booking)
	r.s.bookingOrder = append(r.s.bookingOrder, booking.ID)
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(booking), nil
}

func (r *bookingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Booking
	for _, id := range r.s.bookingOrder {
		if booking := r.s.bookings[id]; booking.UserID == userID {
			out = append(out, copyBooking(booking))
		}
	}
	return out, nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

// Confirm validates both records before mutating either, all under one
// write section, so a failed confirm leaves no partial state.
func (r *bookingRepo) Confirm(_ context.Context, bookingID, slotID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	if booking.Status != entity.BookingStatusPending {
		return fmt.Errorf("booking %s is not pending", bookingID.String())
	}
	slot, ok := r.s.slots[slotID]
	if !ok {
		return fmt.Errorf("slot %s not found", slotID.String())
	}
	if slot.IsBooked {
		return fmt.Errorf("slot %s is already booked", slotID.String())
	}

	if err := r.s.markBookedLocked(slotID, bookingID); err != nil {
		return err
	}
	booking.Status = entity.BookingStatusConfirmed
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *bookingRepo) Cancel(_ context.Context, bookingID, slotID uuid.UUID, releaseSlot bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	if releaseSlot {
		if slot, ok := r.s.slots[slotID]; ok && slot.BookingID != nil && *slot.BookingID == bookingID {
			slot.IsBooked = false
			slot.BookingID = nil
		}
	}
	return nil
}

// ==================== SESSIONS ====================

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *session
	r.s.sessions[session.Token.String()] = &c
	return nil
}

func (r *sessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil || !session.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	c := *session
	return &c, nil
}

func (r *sessionRepo) Revoke(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (r *sessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for _, session := range r.s.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

// ==================== OTPS ====================

type otpRepo struct{ s *Store }

func (r *otpRepo) Create(_ context.Context, otp *entity.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *otp
	r.s.otps = append(r.s.otps, &c)
	return nil
}

func (r *otpRepo) FindValidOTP(_ context.Context, email, code string, otpType entity.OTPType) (*entity.OTP, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Newest first, matching the SQL variant.
	for i := len(r.s.otps) - 1; i >= 0; i-- {
		otp := r.s.otps[i]
		if strings.EqualFold(otp.Email, email) && otp.OTPCode == code && otp.OTPType == otpType &&
			!otp.IsUsed && otp.ExpiresAt.After(time.Now()) {
			c := *otp
			return &c, nil
		}
	}
	return nil, nil
}

func (r *otpRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, otp := range r.s.otps {
		if otp.ID == id {
			otp.IsUsed = true
			return nil
		}
	}
	return fmt.Errorf("OTP %s not found", id.String())
}
