package usecase

import (
	"speaker-booking/internal/data/repository"
	"speaker-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Speaker SpeakerService
	Slot    SlotService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Speaker: NewSpeakerService(repo, log),
		Slot:    NewSlotService(repo, config.Slots, log),
		Booking: NewBookingService(repo, log),
	}
}
