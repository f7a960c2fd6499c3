package usecase

import (
	"context"
	"fmt"

	"speaker-booking/internal/data/repository"
	"speaker-booking/internal/dto/request"
	"speaker-booking/internal/dto/response"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SpeakerService interface {
	ListSpeakers(ctx context.Context, req *request.ListSpeakersRequest) (*response.PaginatedResponse[response.SpeakerResponse], error)
	GetSpeakerByID(ctx context.Context, speakerID string) (*response.SpeakerResponse, error)
}

type speakerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSpeakerService(repo *repository.Repository, log *zap.Logger) SpeakerService {
	return &speakerService{
		repo: repo,
		log:  log.With(zap.String("service", "speaker")),
	}
}

func (s *speakerService) ListSpeakers(ctx context.Context, req *request.ListSpeakersRequest) (*response.PaginatedResponse[response.SpeakerResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List speakers validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	speakers, err := s.repo.Speaker.ListSpeakers(ctx, req.Search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list speakers", zap.Error(err), zap.String("search", req.Search))
		return nil, fmt.Errorf("list speakers: %w", err)
	}

	total, err := s.repo.Speaker.CountSpeakers(ctx, req.Search)
	if err != nil {
		s.log.Error("Failed to count speakers", zap.Error(err), zap.String("search", req.Search))
		return nil, fmt.Errorf("count speakers: %w", err)
	}

	items := make([]response.SpeakerResponse, len(speakers))
	for i, speaker := range speakers {
		items[i] = response.SpeakerToResponse(speaker)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *speakerService) GetSpeakerByID(ctx context.Context, speakerID string) (*response.SpeakerResponse, error) {
	id, err := uuid.Parse(speakerID)
	if err != nil {
		return nil, fmt.Errorf("invalid speaker ID format %s: %w", speakerID, err)
	}

	speaker, err := s.repo.Speaker.FindSpeakerByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find speaker", zap.Error(err), zap.String("speaker_id", speakerID))
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	if speaker == nil {
		return nil, fmt.Errorf("speaker %s not found", speakerID)
	}

	resp := response.SpeakerToResponse(speaker)
	return &resp, nil
}
