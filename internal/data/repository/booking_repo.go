package repository

import (
	"context"
	"fmt"

	"speaker-booking/internal/data/entity"
	"speaker-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// Confirm moves a pending booking to confirmed and flips the slot's
	// is_booked flag in the same transaction. Fails without side effects
	// when the slot was booked in the meantime.
	Confirm(ctx context.Context, bookingID, slotID uuid.UUID) error

	// Cancel marks the booking cancelled and, when it held the slot,
	// releases it in the same transaction.
	Cancel(ctx context.Context, bookingID, slotID uuid.UUID, releaseSlot bool) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, user_id, speaker_id, slot_id, date, start_time, end_time, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.SpeakerID,
		&booking.SlotID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.SpeakerID,
		booking.SlotID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) Confirm(ctx context.Context, bookingID, slotID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin confirm transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The conditional update doubles as the conflict check: zero rows means
	// someone else took the slot first.
	result, err := tx.Exec(ctx,
		`UPDATE time_slots SET is_booked = true, booking_id = $2 WHERE id = $1 AND is_booked = false`,
		slotID, bookingID,
	)
	if err != nil {
		r.log.Error("Failed to mark slot booked",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return fmt.Errorf("mark slot %s booked: %w", slotID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s is already booked", slotID.String())
	}

	result, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
		bookingID, entity.BookingStatusConfirmed, entity.BookingStatusPending,
	)
	if err != nil {
		return fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s is not pending", bookingID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit confirm transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) Cancel(ctx context.Context, bookingID, slotID uuid.UUID, releaseSlot bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		bookingID, entity.BookingStatusCancelled,
	)
	if err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	if releaseSlot {
		_, err = tx.Exec(ctx,
			`UPDATE time_slots SET is_booked = false, booking_id = NULL WHERE id = $1 AND booking_id = $2`,
			slotID, bookingID,
		)
		if err != nil {
			return fmt.Errorf("release slot %s: %w", slotID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancel transaction: %w", err)
	}

	return nil
}
