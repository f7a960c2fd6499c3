package adaptor

import (
	"speaker-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Speaker *SpeakerHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Speaker: NewSpeakerHandler(service.Speaker, service.Slot, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
