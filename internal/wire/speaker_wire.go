package wire

import (
	"speaker-booking/internal/adaptor"
	"speaker-booking/internal/data/repository"
	"speaker-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSpeaker(
	r chi.Router,
	speakerHandler *adaptor.SpeakerHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The speaker catalog and availability views are browsable without a
	// session.
	r.Route("/api/speakers", func(r chi.Router) {
		// GET /api/speakers?search=&page=&per_page= - Browse speakers
		r.Get("/", speakerHandler.ListSpeakers)

		// GET /api/speakers/{id} - Speaker detail
		r.Get("/{id}", speakerHandler.GetSpeakerByID)

		// GET /api/speakers/{id}/slots?date=YYYY-MM-DD - Open slots for a date
		r.Get("/{id}/slots", speakerHandler.GetAvailability)
	})
}
