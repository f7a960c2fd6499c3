package usecase

import (
	"context"
	"fmt"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/repository"
	"speaker-booking/internal/data/slots"
	"speaker-booking/internal/dto/response"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotService interface {
	// EnsureWindow provisions the speaker's rolling availability window.
	// Existing slots keep their booked state.
	EnsureWindow(ctx context.Context, speakerID uuid.UUID) error

	// GetAvailability returns the speaker's open slots for one calendar
	// date, chronological.
	GetAvailability(ctx context.Context, speakerID, date string) (*response.AvailabilityResponse, error)
}

type slotService struct {
	repo *repository.Repository
	cfg  utils.SlotConfig
	log  *zap.Logger
}

func NewSlotService(repo *repository.Repository, cfg utils.SlotConfig, log *zap.Logger) SlotService {
	return &slotService{
		repo: repo,
		cfg:  cfg,
		log:  log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) EnsureWindow(ctx context.Context, speakerID uuid.UUID) error {
	window := slots.Generate(speakerID, time.Now(), s.cfg)

	if err := s.repo.Slot.CreateBatch(ctx, window); err != nil {
		s.log.Error("Failed to provision slot window",
			zap.Error(err),
			zap.String("speaker_id", speakerID.String()),
		)
		return fmt.Errorf("provision slot window for speaker %s: %w", speakerID.String(), err)
	}

	s.log.Info("Slot window provisioned",
		zap.String("speaker_id", speakerID.String()),
		zap.Int("slots", len(window)),
	)

	return nil
}

func (s *slotService) GetAvailability(ctx context.Context, speakerID, date string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(speakerID)
	if err != nil {
		return nil, fmt.Errorf("invalid speaker ID format %s: %w", speakerID, err)
	}

	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %s, expected %s", date, entity.DateLayout)
	}

	speaker, err := s.repo.Speaker.FindSpeakerByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load speaker for availability",
			zap.Error(err),
			zap.String("speaker_id", speakerID),
		)
		return nil, fmt.Errorf("get availability: %w", err)
	}
	if speaker == nil {
		return nil, fmt.Errorf("speaker %s not found", speakerID)
	}

	available, err := s.repo.Slot.FindAvailable(ctx, id, date)
	if err != nil {
		s.log.Error("Failed to find available slots",
			zap.Error(err),
			zap.String("speaker_id", speakerID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("get availability: %w", err)
	}

	slotResponses := make([]response.SlotResponse, len(available))
	for i, slot := range available {
		slotResponses[i] = response.SlotToResponse(slot)
	}

	return &response.AvailabilityResponse{
		SpeakerID: speakerID,
		Date:      date,
		Slots:     slotResponses,
	}, nil
}
