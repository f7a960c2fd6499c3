package wire

import (
	"speaker-booking/internal/adaptor"
	"speaker-booking/internal/data/repository"
	"speaker-booking/pkg/middleware"
	"speaker-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/user/profile - Current user's profile
		r.Get("/api/user/profile", userHandler.GetProfile)
	})
}
