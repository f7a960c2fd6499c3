package wire

import (
	"speaker-booking/internal/adaptor"
	"speaker-booking/internal/data/repository"
	"speaker-booking/pkg/middleware"
	"speaker-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Reserve a slot (pending)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking detail (owner only)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/confirm - Confirm and take the slot
		r.Put("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking)

		// PUT /api/bookings/{id}/cancel - Cancel and release the slot
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/user/bookings?search=&status= - Upcoming/past bookings
		r.Get("/api/user/bookings", bookingHandler.ListUserBookings)
	})
}
