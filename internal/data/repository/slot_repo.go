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

type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*entity.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)
	FindBySpeakerID(ctx context.Context, speakerID uuid.UUID) ([]*entity.TimeSlot, error)

	// FindAvailable returns the speaker's unbooked slots for one calendar
	// date, in chronological order.
	FindAvailable(ctx context.Context, speakerID uuid.UUID, date string) ([]*entity.TimeSlot, error)

	// MarkBooked flips is_booked false -> true and back-references the
	// booking. Fails when the slot is already booked.
	MarkBooked(ctx context.Context, slotID, bookingID uuid.UUID) error

	// Release clears is_booked and the booking back-reference.
	Release(ctx context.Context, slotID uuid.UUID) error
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

func (r *slotRepository) CreateBatch(ctx context.Context, slots []*entity.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, speaker_id, date, start_time, end_time, is_booked, booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	for _, slot := range slots {
		_, err := r.db.Exec(ctx, query,
			slot.ID,
			slot.SpeakerID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.IsBooked,
			slot.BookingID,
			slot.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create slot",
				zap.Error(err),
				zap.String("slot_id", slot.ID.String()),
				zap.String("speaker_id", slot.SpeakerID.String()),
			)
			return fmt.Errorf("create slot %s: %w", slot.ID.String(), err)
		}
	}

	return nil
}

const slotColumns = `id, speaker_id, date, start_time, end_time, is_booked, booking_id, created_at`

func scanSlot(row pgx.Row) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.SpeakerID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.BookingID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindBySpeakerID(ctx context.Context, speakerID uuid.UUID) ([]*entity.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE speaker_id = $1
		ORDER BY date, start_time
	`

	rows, err := r.db.Query(ctx, query, speakerID)
	if err != nil {
		r.log.Error("Failed to find slots by speaker ID",
			zap.Error(err),
			zap.String("speaker_id", speakerID.String()),
		)
		return nil, fmt.Errorf("find slots by speaker ID %s: %w", speakerID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) FindAvailable(ctx context.Context, speakerID uuid.UUID, date string) ([]*entity.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE speaker_id = $1 AND date = $2 AND is_booked = false
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, speakerID, date)
	if err != nil {
		r.log.Error("Failed to find available slots",
			zap.Error(err),
			zap.String("speaker_id", speakerID.String()),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find available slots for speaker %s on %s: %w", speakerID.String(), date, err)
	}
	defer rows.Close()

	var slots []*entity.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) MarkBooked(ctx context.Context, slotID, bookingID uuid.UUID) error {
	query := `
		UPDATE time_slots
		SET is_booked = true, booking_id = $2
		WHERE id = $1 AND is_booked = false
	`

	result, err := r.db.Exec(ctx, query, slotID, bookingID)
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

	return nil
}

func (r *slotRepository) Release(ctx context.Context, slotID uuid.UUID) error {
	query := `
		UPDATE time_slots
		SET is_booked = false, booking_id = NULL
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, slotID)
	if err != nil {
		r.log.Error("Failed to release slot",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return fmt.Errorf("release slot %s: %w", slotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slotID.String())
	}

	return nil
}
